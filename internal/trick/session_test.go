package trick

import (
	"errors"
	"testing"
)

func newTestSession(t *testing.T, options ...Option) (*Session, *int) {
	t.Helper()
	scrolls := new(int)
	options = append([]Option{
		WithSourceFactory(SeededSourceFactory(42)),
		WithScrollTop(func() { *scrolls++ }),
	}, options...)
	s, err := NewSession(DefaultPalette, options...)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s, scrolls
}

func TestSessionNavigation(t *testing.T) {
	s, scrolls := newTestSession(t)
	if s.Step() != StepWelcome || s.Epoch() != 0 {
		t.Fatalf("Expected new session at %s epoch 0, got %s epoch %d", StepWelcome, s.Step(), s.Epoch())
	}
	if s.ID == "" {
		t.Errorf("Expected session to have an ID")
	}

	s.Retreat()
	if s.Step() != StepWelcome {
		t.Errorf("Retreat at first step: expected %s, got %s", StepWelcome, s.Step())
	}

	for want := StepChooseNumber; want <= LastStep; want++ {
		s.Advance()
		if s.Step() != want {
			t.Fatalf("Advance: expected %s, got %s", want, s.Step())
		}
	}
	s.Advance()
	if s.Step() != LastStep {
		t.Errorf("Advance at last step: expected %s, got %s", LastStep, s.Step())
	}
	if *scrolls != NumSteps {
		t.Errorf("Expected %d scroll requests (one per Advance), got %d", NumSteps, *scrolls)
	}

	s.Retreat()
	if s.Step() != StepLookupSymbol {
		t.Errorf("Retreat: expected %s, got %s", StepLookupSymbol, s.Step())
	}
	if *scrolls != NumSteps {
		t.Errorf("Retreat should not request a scroll")
	}
}

func TestSessionJumpTo(t *testing.T) {
	s, scrolls := newTestSession(t)
	s.JumpTo(3)
	if s.Step() != StepLookupSymbol {
		t.Errorf("JumpTo(3): expected %s, got %s", StepLookupSymbol, s.Step())
	}
	for _, n := range []int{-1, NumSteps, 100} {
		s.JumpTo(n)
		if s.Step() != StepLookupSymbol {
			t.Errorf("JumpTo(%d) should be ignored, got step %s", n, s.Step())
		}
	}
	s.JumpTo(int(LastStep))
	if s.Step() != LastStep {
		t.Errorf("JumpTo(%d): expected %s, got %s", LastStep, LastStep, s.Step())
	}
	s.JumpTo(0)
	if s.Step() != StepWelcome {
		t.Errorf("JumpTo(0): expected %s, got %s", StepWelcome, s.Step())
	}
	if *scrolls != 0 {
		t.Errorf("JumpTo should not request scrolls, got %d", *scrolls)
	}
}

func TestSessionRestart(t *testing.T) {
	s, scrolls := newTestSession(t)
	const restarts = 100
	changed := 0
	for i := range restarts {
		s.JumpTo(int(StepReveal))
		before := s.Table()
		if err := s.Restart(); err != nil {
			t.Fatalf("Restart failed: %v", err)
		}
		if s.Step() != StepWelcome {
			t.Fatalf("Restart: expected step %s, got %s", StepWelcome, s.Step())
		}
		if s.Epoch() != i+1 {
			t.Fatalf("Restart: expected epoch %d, got %d", i+1, s.Epoch())
		}
		if s.MagicSymbol() != s.Table().Magic() {
			t.Fatalf("MagicSymbol() %q differs from table's %q", s.MagicSymbol(), s.Table().Magic())
		}
		after := s.Table()
		if before == after {
			t.Fatalf("Restart kept the same table instance")
		}
		if before.Magic() != after.Magic() || before.Decoys()[0] != after.Decoys()[0] || before.entries != after.entries {
			changed++
		}
	}
	if changed < restarts-1 {
		t.Errorf("Only %d of %d restarts produced a different table", changed, restarts)
	}
	if *scrolls != restarts {
		t.Errorf("Expected %d scroll requests, got %d", restarts, *scrolls)
	}
}

func TestSessionReproducible(t *testing.T) {
	a, _ := newTestSession(t)
	b, _ := newTestSession(t)
	for range 5 {
		if a.MagicSymbol() != b.MagicSymbol() || a.Table().entries != b.Table().entries {
			t.Fatalf("Sessions with the same seed diverged at epoch %d", a.Epoch())
		}
		if err := a.Restart(); err != nil {
			t.Fatal(err)
		}
		if err := b.Restart(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSessionErrors(t *testing.T) {
	_, err := NewSession(Palette{"🌟"})
	var paletteErr *InvalidPaletteError
	if !errors.As(err, &paletteErr) {
		t.Errorf("Expected InvalidPaletteError, got %v", err)
	}

	_, err = NewSession(DefaultPalette, WithPolicy(Policy{Decoys: DecoyPolicy{Mode: DecoysFixed}}))
	var policyErr *InvalidPolicyError
	if !errors.As(err, &policyErr) {
		t.Errorf("Expected InvalidPolicyError, got %v", err)
	}
}

func TestSessionPolicy(t *testing.T) {
	policy := Policy{IncludeZero: false, Decoys: DecoyPolicy{Mode: DecoysFixed, Count: 1}}
	s, _ := newTestSession(t, WithPolicy(policy))
	if s.Policy() != policy {
		t.Errorf("Expected policy %+v, got %+v", policy, s.Policy())
	}
	if got := len(s.Table().Decoys()); got != 1 {
		t.Errorf("Expected 1 decoy, got %d", got)
	}
	if s.Table().IsMagicPosition(0) {
		t.Errorf("Expected 0 not to be a magic position")
	}
}

func TestStepNames(t *testing.T) {
	if StepLookupSymbol.String() != "LookupSymbol" {
		t.Errorf("Unexpected name %q", StepLookupSymbol.String())
	}
	if Step(7).String() != "Step(7)" || Step(7).Title() != "" {
		t.Errorf("Unexpected name for invalid step: %q / %q", Step(7).String(), Step(7).Title())
	}
	for s := StepWelcome; s <= LastStep; s++ {
		if s.Title() == "" {
			t.Errorf("Step %s has no title", s)
		}
	}
}

func TestSessionNilSourceFactory(t *testing.T) {
	s, err := NewSession(DefaultPalette, WithSourceFactory(nil))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if s.Table() == nil || s.Epoch() != 1 {
		t.Errorf("Expected a table at epoch 1, got epoch %d", s.Epoch())
	}
}
