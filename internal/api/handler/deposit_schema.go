package handler

import "github.com/rentledger/deposit-system/internal/core/ports"

// messageResponse is the standard envelope returned by every endpoint.
type messageResponse struct {
	Message string `json:"message"`
}

type requestRefundRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type requestRefundResponse struct {
	Message   string `json:"message"`
	DepositID string `json:"deposit_id"`
}

// resolveRequest optionally pins accept/dispute to a specific deposit.
// Without an id the caller's responded deposit is targeted.
type resolveRequest struct {
	DepositID string `json:"deposit_id"`
}

// statusResponse mirrors the historical shape of the status endpoint:
// the caller plus their most recent deposit record, null when none exists.
type statusResponse struct {
	Email         string             `json:"email"`
	Role          string             `json:"role"`
	DepositStatus *ports.DepositView `json:"depositStatus"`
}

type historyResponse struct {
	Deposits []ports.DepositView `json:"deposits"`
}
