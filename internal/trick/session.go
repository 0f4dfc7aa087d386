package trick

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// SourceFactory returns a fresh RandomSource. It is called once per epoch.
type SourceFactory func() RandomSource

// NewRandomSource returns a PCG generator seeded from the runtime's random state.
func NewRandomSource() RandomSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// SeededSourceFactory returns a SourceFactory whose n-th source is seeded
// deterministically from seed and n. Useful for reproducible sessions.
func SeededSourceFactory(seed uint64) SourceFactory {
	var n uint64
	return func() RandomSource {
		src := rand.New(rand.NewPCG(seed, n))
		n++
		return src
	}
}

// Session is the state of one user going through the presentation:
// the current step, and the symbol table of the current epoch.
//
// A Session is owned by the UI and is not safe for concurrent use.
type Session struct {
	// ID identifies the session in the logs.
	ID string

	palette   Palette
	policy    Policy
	newSource SourceFactory
	onScroll  func()

	step  Step
	epoch int
	table *SymbolTable
}

// Option configures a Session.
type Option func(*Session)

// WithPolicy sets the table generation policy. Default is DefaultPolicy().
func WithPolicy(policy Policy) Option {
	return func(s *Session) { s.policy = policy }
}

// WithSourceFactory sets where the randomness of each epoch comes from.
// Default is NewRandomSource. A nil factory is ignored.
func WithSourceFactory(f SourceFactory) Option {
	return func(s *Session) {
		if f != nil {
			s.newSource = f
		}
	}
}

// WithScrollTop sets a hook called whenever the view should move to the top of the page,
// that is after Advance and Restart.
func WithScrollTop(fn func()) Option {
	return func(s *Session) { s.onScroll = fn }
}

// NewSession creates a session at the Welcome step with the table for epoch 0.
func NewSession(palette Palette, options ...Option) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		palette:   palette,
		policy:    DefaultPolicy(),
		newSource: NewRandomSource,
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.regenerate(); err != nil {
		return nil, err
	}
	klog.V(1).Infof("Session %s: created, magic symbol %s", s.ID, s.table.Magic())
	return s, nil
}

func (s *Session) regenerate() error {
	table, err := Generate(s.palette, s.newSource(), s.policy)
	if err != nil {
		return fmt.Errorf("failed to generate symbol table for epoch %d: %w", s.epoch, err)
	}
	s.table = table
	return nil
}

// Step returns the current step.
func (s *Session) Step() Step { return s.step }

// Epoch returns how many times the session was restarted.
func (s *Session) Epoch() int { return s.epoch }

// Table returns the symbol table of the current epoch. It must not be modified.
func (s *Session) Table() *SymbolTable { return s.table }

// MagicSymbol returns the magic symbol of the current epoch.
func (s *Session) MagicSymbol() Symbol { return s.table.Magic() }

// Policy returns the generation policy used by the session.
func (s *Session) Policy() Policy { return s.policy }

// Advance moves to the next step. At the last step it stays there.
// In both cases it requests a scroll to the top.
func (s *Session) Advance() {
	if s.step < LastStep {
		s.step++
	}
	klog.V(1).Infof("Session %s: advance to %s", s.ID, s.step)
	s.scrollTop()
}

// Retreat moves to the previous step, stopping at the first one.
func (s *Session) Retreat() {
	if s.step > StepWelcome {
		s.step--
	}
	klog.V(1).Infof("Session %s: retreat to %s", s.ID, s.step)
}

// JumpTo moves to step n. Out of range values are ignored.
func (s *Session) JumpTo(n int) {
	step := Step(n)
	if !step.Valid() {
		klog.V(1).Infof("Session %s: ignoring jump to invalid step %d", s.ID, n)
		return
	}
	s.step = step
}

// Restart goes back to the Welcome step and starts a new epoch with a freshly
// generated table and magic symbol.
func (s *Session) Restart() error {
	s.step = StepWelcome
	s.epoch++
	if err := s.regenerate(); err != nil {
		return err
	}
	klog.V(1).Infof("Session %s: restarted, epoch %d, magic symbol %s", s.ID, s.epoch, s.table.Magic())
	s.scrollTop()
	return nil
}

func (s *Session) scrollTop() {
	if s.onScroll != nil {
		s.onScroll()
	}
}
