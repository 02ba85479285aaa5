package ports

import (
	"context"
	"io"
	"time"
)

// DocumentInput is an uploaded documentation file streamed from the transport
// layer. The reader is consumed exactly once during Respond.
type DocumentInput struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// RespondInput carries a landlord/agent response to a refund request.
// DepositID is optional: when empty the oldest pending deposit is targeted,
// matching the historical behavior of the system. A nil Deduction defaults
// to zero.
type RespondInput struct {
	DepositID string
	Deduction *float64
	Document  *DocumentInput
}

// RequestRefundResult is returned after a tenant opens a refund request.
type RequestRefundResult struct {
	DepositID string
	Status    string
	CreatedAt time.Time
}

// DepositView is the externally visible shape of a deposit record.
type DepositView struct {
	ID               string     `json:"id"`
	Amount           float64    `json:"amount"`
	Status           string     `json:"status"`
	Deduction        float64    `json:"deduction"`
	DocumentationRef string     `json:"documentation_ref,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
}

// StatusResult is the payload of the status endpoint: the caller and their
// most recent deposit, if any.
type StatusResult struct {
	Email   string
	Role    string
	Deposit *DepositView
}

// DepositService defines the deposit lifecycle operations.
type DepositService interface {
	RequestRefund(ctx context.Context, actor Identity, amount float64) (*RequestRefundResult, error)
	Respond(ctx context.Context, actor Identity, in RespondInput) error
	Accept(ctx context.Context, actor Identity, depositID string) error
	Dispute(ctx context.Context, actor Identity, depositID string) error
	Status(ctx context.Context, actor Identity) (*StatusResult, error)
	History(ctx context.Context, actor Identity) ([]DepositView, error)
}
