package subscription

import (
	"context"
	"errors"
	"sync"
	"time"

	"brea-backend/internal/telemetry"
)

// ErrUnknownPlan means the requested plan is not in the catalog.
var ErrUnknownPlan = errors.New("unknown plan")

// Status is the session's subscription snapshot.
type Status struct {
	Verified    bool       `json:"verified"`
	Plan        string     `json:"plan,omitempty"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty"`
}

// Service owns the simulated subscription state of the session. Activation
// validates the card form, waits a fixed processing delay and flips the
// verified flag; no real payment processor is involved.
type Service struct {
	delay time.Duration

	mu          sync.RWMutex
	verified    bool
	plan        string
	activatedAt time.Time
}

// NewService constructs a Service with the given simulated processing delay.
func NewService(delay time.Duration) *Service {
	return &Service{delay: delay}
}

// Activate runs the simulated payment for the named plan.
func (s *Service) Activate(ctx context.Context, planName string, card Card) (Status, error) {
	plan, ok := FindPlan(planName)
	if !ok {
		return Status{}, ErrUnknownPlan
	}
	if err := card.Validate(); err != nil {
		return Status{}, err
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Status{}, ctx.Err()
		}
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.verified = true
	s.plan = plan.Name
	s.activatedAt = now
	s.mu.Unlock()

	telemetry.Info("subscription.activated", map[string]any{
		"plan":  plan.Name,
		"price": plan.Price,
	})
	return s.Status(), nil
}

// Verified reports whether the access gate is open. It implements the
// orchestrator's Gate.
func (s *Service) Verified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verified
}

// Status returns the current subscription snapshot.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{Verified: s.verified, Plan: s.plan}
	if s.verified {
		at := s.activatedAt
		st.ActivatedAt = &at
	}
	return st
}

// Reset clears the subscription state.
func (s *Service) Reset() {
	s.mu.Lock()
	s.verified = false
	s.plan = ""
	s.activatedAt = time.Time{}
	s.mu.Unlock()
}
