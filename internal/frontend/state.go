package frontend

import (
	"fmt"
	"time"

	"github.com/janpfeifer/GoMentalist/internal/config"
	"github.com/janpfeifer/GoMentalist/internal/trick"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// ScrollDelay is how long after a step change the page scrolls back to the top.
const ScrollDelay = 100 * time.Millisecond

// GlobalClientState holds the trick session of this browser tab.
// It is only touched from the UI goroutine.
type GlobalClientState struct {
	Session *trick.Session
	Error   string

	// Listeners for state updates
	Listeners map[string]func()

	scrollTimer *time.Timer
}

var State *GlobalClientState

// InitState creates the global state from the settings the server handed to the page.
func InitState() {
	settings, err := config.DecodeTrick(app.Getenv(config.EnvTrick))
	if err != nil {
		klog.Errorf("InitState: invalid settings from server, using defaults: %v", err)
		settings = &config.Default().Trick
	}
	InitStateWithSettings(settings)
}

// InitStateWithSettings creates the global state, if not yet created.
func InitStateWithSettings(settings *config.Trick) {
	if State != nil {
		klog.V(1).Infof("InitState: state already exists")
		return
	}
	klog.V(1).Infof("InitState: creating new state (was nil)")
	State = &GlobalClientState{
		Listeners: make(map[string]func()),
	}
	session, err := trick.NewSession(settings.SymbolPalette(),
		trick.WithPolicy(settings.Policy),
		trick.WithScrollTop(State.scheduleScrollTop))
	if err != nil {
		klog.Errorf("InitState: failed to create session: %v", err)
		State.Error = fmt.Sprintf("Failed to prepare the symbols: %v", err)
		return
	}
	State.Session = session
	klog.Infof("InitState: session %s ready", session.ID)
}

func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

// NextStep advances the session.
func (s *GlobalClientState) NextStep() {
	if s.Session == nil {
		return
	}
	s.Session.Advance()
	s.Notify()
}

// PrevStep moves the session one step back.
func (s *GlobalClientState) PrevStep() {
	if s.Session == nil {
		return
	}
	s.Session.Retreat()
	s.Notify()
}

// GoToStep jumps to step n; invalid steps are ignored by the session.
func (s *GlobalClientState) GoToStep(n int) {
	if s.Session == nil {
		return
	}
	s.Session.JumpTo(n)
	s.Notify()
}

// Restart starts the trick over with a new symbol table.
func (s *GlobalClientState) Restart() {
	if s.Session == nil {
		return
	}
	if err := s.Session.Restart(); err != nil {
		klog.Errorf("Restart: %v", err)
		s.Error = fmt.Sprintf("Failed to prepare new symbols: %v", err)
	} else {
		s.Error = ""
	}
	s.Notify()
}

// scheduleScrollTop smoothly scrolls the window to the top after ScrollDelay.
// It doesn't block the step change.
func (s *GlobalClientState) scheduleScrollTop() {
	if app.IsServer {
		return
	}
	if s.scrollTimer != nil {
		s.scrollTimer.Stop()
	}
	s.scrollTimer = time.AfterFunc(ScrollDelay, func() {
		app.Window().Call("scrollTo", map[string]any{
			"top":      0,
			"behavior": "smooth",
		})
	})
}
