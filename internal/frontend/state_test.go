package frontend

import (
	"testing"

	"github.com/janpfeifer/GoMentalist/internal/config"
	"github.com/janpfeifer/GoMentalist/internal/trick"
)

func resetState(t *testing.T, settings *config.Trick) {
	t.Helper()
	State = nil
	InitStateWithSettings(settings)
	t.Cleanup(func() { State = nil })
}

func TestStateNavigation(t *testing.T) {
	resetState(t, &config.Default().Trick)
	if State.Session == nil {
		t.Fatalf("InitState failed: %s", State.Error)
	}
	notified := 0
	State.Listeners["test"] = func() { notified++ }

	State.NextStep()
	State.NextStep()
	if got := State.Session.Step(); got != trick.StepCompute {
		t.Errorf("Expected step %s, got %s", trick.StepCompute, got)
	}
	State.PrevStep()
	if got := State.Session.Step(); got != trick.StepChooseNumber {
		t.Errorf("Expected step %s, got %s", trick.StepChooseNumber, got)
	}
	State.GoToStep(42)
	if got := State.Session.Step(); got != trick.StepChooseNumber {
		t.Errorf("Invalid GoToStep should be ignored, got %s", got)
	}
	State.GoToStep(int(trick.StepReveal))
	magic := State.Session.MagicSymbol()
	State.Restart()
	if State.Session.Step() != trick.StepWelcome || State.Session.Epoch() != 1 {
		t.Errorf("Restart: expected Welcome at epoch 1, got %s at epoch %d", State.Session.Step(), State.Session.Epoch())
	}
	if notified != 6 {
		t.Errorf("Expected 6 notifications, got %d", notified)
	}
	t.Logf("magic symbol before restart %s, after %s", magic, State.Session.MagicSymbol())
}

func TestStateInvalidSettings(t *testing.T) {
	resetState(t, &config.Trick{Palette: []string{"only"}, Policy: trick.DefaultPolicy()})
	if State.Session != nil || State.Error == "" {
		t.Fatalf("Expected an error for an invalid palette")
	}
	// Navigation without a session is a no-op.
	State.NextStep()
	State.Restart()
	if ui := (&App{}).Render(); ui == nil {
		t.Errorf("Expected App to render an error page")
	}
}

func TestRenderSteps(t *testing.T) {
	resetState(t, &config.Default().Trick)
	for step := trick.StepWelcome; step <= trick.LastStep; step++ {
		State.GoToStep(int(step))
		if ui := (&App{}).Render(); ui == nil {
			t.Errorf("App rendered nothing at step %s", step)
		}
	}
	s := &SymbolTableStep{Epoch: State.Session.Epoch()}
	s.goToPage(4)
	if s.page != 4 {
		t.Errorf("Expected page 4, got %d", s.page)
	}
	s.goToPage(5)
	if s.page != 4 {
		t.Errorf("Page out of range should be ignored, got %d", s.page)
	}
	if ui := s.Render(); ui == nil {
		t.Errorf("SymbolTableStep rendered nothing")
	}
	State.Restart()
	s.Epoch = State.Session.Epoch()
	s.Render()
	if s.page != 0 {
		t.Errorf("Expected page reset to 0 on a new table, got %d", s.page)
	}
}

func TestStateErrorBanner(t *testing.T) {
	resetState(t, &config.Default().Trick)
	if errorBanner() != nil {
		t.Errorf("Expected no error banner for a healthy session")
	}
	State.Error = "Failed to prepare new symbols"
	if errorBanner() == nil {
		t.Errorf("Expected an error banner while a session is running")
	}
	if ui := (&App{}).Render(); ui == nil {
		t.Errorf("App rendered nothing with an error set")
	}
	State.Restart()
	if State.Error != "" {
		t.Errorf("Expected a successful Restart to clear the error, got %q", State.Error)
	}
}
