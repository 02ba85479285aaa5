package domain

import (
	"errors"
	"time"
)

// DepositStatus represents the lifecycle state of a deposit refund request.
type DepositStatus string

const (
	StatusPending   DepositStatus = "pending"
	StatusResponded DepositStatus = "responded"
	StatusAccepted  DepositStatus = "accepted"
	StatusDisputed  DepositStatus = "disputed"
)

// validTransitions defines the allowed state machine transitions.
// Accepted and disputed are terminal.
var validTransitions = map[DepositStatus][]DepositStatus{
	StatusPending:   {StatusResponded},
	StatusResponded: {StatusAccepted, StatusDisputed},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrDepositNotFound = errors.New("deposit not found")
var ErrInvalidAmount = errors.New("invalid amount")
var ErrInvalidDeduction = errors.New("invalid deduction amount")
var ErrNoPendingDeposit = errors.New("no pending deposit")
var ErrNoRespondedDeposit = errors.New("no responded deposit")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s DepositStatus) CanTransitionTo(next DepositStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s DepositStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Deposit is the core aggregate root: a tenant's refund request and its
// resolution state. Amount is fixed at creation; deduction and the
// documentation reference are fixed once the deposit is responded to.
type Deposit struct {
	ID               string        `json:"id" bson:"_id"`
	UserID           string        `json:"user_id" bson:"user_id"`
	Amount           float64       `json:"amount" bson:"amount"`
	Status           DepositStatus `json:"status" bson:"status"`
	Deduction        float64       `json:"deduction" bson:"deduction"`
	DocumentationRef string        `json:"documentation_ref,omitempty" bson:"documentation_ref,omitempty"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	RespondedAt      *time.Time    `json:"responded_at,omitempty" bson:"responded_at,omitempty"`
	ResolvedAt       *time.Time    `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}
