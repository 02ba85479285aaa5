package ports

import (
	"context"

	"github.com/rentledger/deposit-system/internal/core/domain"
)

// StatusFilter selects the deposit a conditional update targets. From is
// always required; DepositID and UserID narrow the match when set.
type StatusFilter struct {
	DepositID string
	UserID    string
	From      domain.DepositStatus
}

// RespondFields carries the response data attached when a deposit moves to
// responded. Both fields are write-once.
type RespondFields struct {
	Deduction        float64
	DocumentationRef string
}

// DepositRepository defines persistence operations for deposits.
type DepositRepository interface {
	Insert(ctx context.Context, d *domain.Deposit) error
	// UpdateWhereStatus atomically moves one deposit matching filter to the
	// target status, attaching fields when non-nil. It returns the number of
	// matched documents: zero means no deposit was in the required state (or a
	// concurrent caller won the race), and no state was changed. When the
	// filter carries no DepositID the oldest matching deposit is targeted.
	UpdateWhereStatus(ctx context.Context, filter StatusFilter, to domain.DepositStatus, fields *RespondFields) (int64, error)
	// FindLatestByUser returns the user's most recent deposit regardless of
	// status, or domain.ErrDepositNotFound when the user has none.
	FindLatestByUser(ctx context.Context, userID string) (*domain.Deposit, error)
	// ListByUser returns all of the user's deposits, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Deposit, error)
}
