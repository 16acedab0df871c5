package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nstepanova/onboard/internal/models"
)

// TotalSteps is the number of wizard steps; completing the last one sets
// the user's step to TotalSteps+1.
const TotalSteps = 3

// API is the subset of the onboarding API the wizard needs.
type API interface {
	// CreateUser submits the step-1 credentials.
	CreateUser(ctx context.Context, email, password string) (*models.User, error)
	// UpdateUser sends a merge-patch for the given user id.
	UpdateUser(ctx context.Context, id int64, payload map[string]any) (*models.User, error)
	// Config fetches all component configuration entries.
	Config(ctx context.Context) ([]models.ComponentConfig, error)
}

// State is the wizard position. Transitions return a new State and never
// mutate the old one, so a failed submission leaves the caller exactly
// where it was.
type State struct {
	// Step is the current wizard step, 1..TotalSteps.
	Step int
	// UserID is set once step 1 succeeds.
	UserID int64
	// Completed marks the terminal state; no further submissions are
	// accepted.
	Completed bool
}

// NewState returns the initial state at step 1.
func NewState() State {
	return State{Step: 1}
}

// Submission and transition errors.
var (
	ErrBusy            = errors.New("a submission is already in progress")
	ErrCompleted       = errors.New("onboarding is already completed")
	ErrNoUser          = errors.New("session expired, restart the onboarding process")
	ErrInvalidEmail    = errors.New("please enter a valid email address")
	ErrInvalidPassword = errors.New("password must be at least 8 characters and include uppercase, lowercase, number, and symbol")
)

// Wizard drives the onboarding flow against an API.
type Wizard struct {
	api           API
	allowedDomain string
	now           func() time.Time
	inFlight      bool
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithAllowedDomain restricts step-1 emails to the given domain,
// e.g. "gmail.com". Empty means any domain.
func WithAllowedDomain(domain string) Option {
	return func(w *Wizard) { w.allowedDomain = domain }
}

// WithClock overrides the time source used for birthdate validation.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// New constructs a Wizard over the given API.
func New(api API, opts ...Option) *Wizard {
	w := &Wizard{api: api, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// begin marks a submission in flight; the returned func clears it.
func (w *Wizard) begin() (func(), error) {
	if w.inFlight {
		return nil, ErrBusy
	}
	w.inFlight = true
	return func() { w.inFlight = false }, nil
}

// SubmitCredentials validates and submits step 1. On success the
// returned state is on step 2 and carries the user id. A conflict from
// the server (user already past step 1) is returned as-is without
// advancing.
func (w *Wizard) SubmitCredentials(ctx context.Context, st State, f Form) (State, error) {
	if st.Completed {
		return st, ErrCompleted
	}
	if st.Step != 1 {
		return st, fmt.Errorf("credentials are submitted on step 1, not %d", st.Step)
	}
	if !ValidEmail(f.Email, w.allowedDomain) {
		return st, ErrInvalidEmail
	}
	if !ValidPassword(f.Password) {
		return st, ErrInvalidPassword
	}

	done, err := w.begin()
	if err != nil {
		return st, err
	}
	defer done()

	user, err := w.api.CreateUser(ctx, f.Email, f.Password)
	if err != nil {
		return st, err
	}
	return State{Step: 2, UserID: user.ID}, nil
}

// LoadPage fetches the configuration and resolves the kinds rendered on
// the state's current page. Unrecognized component names are skipped.
func (w *Wizard) LoadPage(ctx context.Context, st State) ([]Kind, error) {
	if st.Step < 2 || st.Step > TotalSteps {
		return nil, fmt.Errorf("no dynamic page for step %d", st.Step)
	}
	configs, err := w.api.Config(ctx)
	if err != nil {
		return nil, err
	}
	return KindsForPage(configs, st.Step), nil
}

// SubmitPage validates the dynamic page and sends the partial update:
// only the fields belonging to the page's kinds, plus the next step
// number. Leaving the final step transitions to the completed state.
func (w *Wizard) SubmitPage(ctx context.Context, st State, f Form, kinds []Kind) (State, error) {
	if st.Completed {
		return st, ErrCompleted
	}
	if st.Step < 2 || st.Step > TotalSteps {
		return st, fmt.Errorf("no dynamic page for step %d", st.Step)
	}
	if st.UserID == 0 {
		return st, ErrNoUser
	}

	now := w.now()
	for _, k := range kinds {
		if err := k.Validate(f, now); err != nil {
			return st, err
		}
	}

	done, err := w.begin()
	if err != nil {
		return st, err
	}
	defer done()

	nextStep := st.Step + 1
	payload := map[string]any{"step": nextStep}
	for _, k := range kinds {
		for key, value := range k.Payload(f) {
			payload[key] = value
		}
	}

	if _, err := w.api.UpdateUser(ctx, st.UserID, payload); err != nil {
		return st, err
	}

	next := State{Step: nextStep, UserID: st.UserID}
	if st.Step == TotalSteps {
		next.Completed = true
	}
	return next, nil
}
