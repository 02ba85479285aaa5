package service

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rentledger/deposit-system/internal/api/metrics"
	"github.com/rentledger/deposit-system/internal/core/domain"
	"github.com/rentledger/deposit-system/internal/core/ports"
)

// DepositService is the deposit lifecycle engine. Every mutation is a single
// conditional update keyed on the deposit's current status, so concurrent
// callers race through the storage layer and at most one wins.
type DepositService struct {
	repo   ports.DepositRepository
	blobs  ports.BlobStore
	logger zerolog.Logger
}

func NewDepositService(repo ports.DepositRepository, blobs ports.BlobStore, logger zerolog.Logger) *DepositService {
	return &DepositService{repo: repo, blobs: blobs, logger: logger}
}

// RequestRefund opens a new refund request for the acting tenant.
func (s *DepositService) RequestRefund(ctx context.Context, actor ports.Identity, amount float64) (*ports.RequestRefundResult, error) {
	if actor.Role != domain.RoleTenant {
		return nil, domain.ErrForbidden
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	deposit := &domain.Deposit{
		ID:        uuid.NewString(),
		UserID:    actor.UserID,
		Amount:    amount,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, deposit); err != nil {
		s.logger.Error().Err(err).Str("user_id", actor.UserID).Msg("failed to create deposit")
		return nil, err
	}

	metrics.DepositsRequestedTotal.Inc()
	s.logger.Info().Str("deposit_id", deposit.ID).Str("user_id", actor.UserID).Float64("amount", amount).Msg("refund requested")

	return &ports.RequestRefundResult{
		DepositID: deposit.ID,
		Status:    string(deposit.Status),
		CreatedAt: deposit.CreatedAt,
	}, nil
}

// Respond attaches a deduction and documentation to a pending deposit and
// moves it to responded. The documentation blob is stored before the status
// update commits; if the update matches nothing the blob is removed so no
// orphaned reference survives.
func (s *DepositService) Respond(ctx context.Context, actor ports.Identity, in ports.RespondInput) error {
	if !domain.CanRespond(actor.Role) {
		return domain.ErrForbidden
	}

	deduction := 0.0
	if in.Deduction != nil {
		if math.IsNaN(*in.Deduction) || math.IsInf(*in.Deduction, 0) {
			return domain.ErrInvalidDeduction
		}
		deduction = *in.Deduction
	}

	docRef := ""
	if in.Document != nil {
		docRef = uuid.NewString() + filepath.Ext(in.Document.Filename)
		if err := s.blobs.Put(ctx, docRef, in.Document.Reader, in.Document.Size, in.Document.ContentType); err != nil {
			s.logger.Error().Err(err).Str("object", docRef).Msg("documentation upload failed")
			return fmt.Errorf("store documentation: %w", err)
		}
	}

	filter := ports.StatusFilter{DepositID: in.DepositID, From: domain.StatusPending}
	matched, err := s.repo.UpdateWhereStatus(ctx, filter, domain.StatusResponded, &ports.RespondFields{
		Deduction:        deduction,
		DocumentationRef: docRef,
	})
	if err != nil {
		s.removeBlob(ctx, docRef)
		s.logger.Error().Err(err).Msg("failed to respond to deposit")
		return err
	}
	if matched == 0 {
		s.removeBlob(ctx, docRef)
		metrics.TransitionConflictsTotal.WithLabelValues(string(domain.StatusResponded)).Inc()
		return domain.ErrNoPendingDeposit
	}

	metrics.TransitionsTotal.WithLabelValues(string(domain.StatusResponded)).Inc()
	s.logger.Info().
		Str("actor_id", actor.UserID).
		Str("role", actor.Role).
		Float64("deduction", deduction).
		Str("documentation_ref", docRef).
		Msg("deposit responded")

	return nil
}

// Accept moves the acting tenant's responded deposit to accepted.
func (s *DepositService) Accept(ctx context.Context, actor ports.Identity, depositID string) error {
	return s.resolve(ctx, actor, depositID, domain.StatusAccepted)
}

// Dispute moves the acting tenant's responded deposit to disputed.
func (s *DepositService) Dispute(ctx context.Context, actor ports.Identity, depositID string) error {
	return s.resolve(ctx, actor, depositID, domain.StatusDisputed)
}

func (s *DepositService) resolve(ctx context.Context, actor ports.Identity, depositID string, to domain.DepositStatus) error {
	if actor.Role != domain.RoleTenant {
		return domain.ErrForbidden
	}
	if !domain.StatusResponded.CanTransitionTo(to) {
		return domain.ErrInvalidTransition
	}

	filter := ports.StatusFilter{DepositID: depositID, UserID: actor.UserID, From: domain.StatusResponded}
	matched, err := s.repo.UpdateWhereStatus(ctx, filter, to, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", actor.UserID).Str("target", string(to)).Msg("failed to resolve deposit")
		return err
	}
	if matched == 0 {
		metrics.TransitionConflictsTotal.WithLabelValues(string(to)).Inc()
		return domain.ErrNoRespondedDeposit
	}

	metrics.TransitionsTotal.WithLabelValues(string(to)).Inc()
	s.logger.Info().Str("user_id", actor.UserID).Str("status", string(to)).Msg("deposit resolved")
	return nil
}

// Status returns the actor and their most recent deposit, if any. Deposits
// are keyed to the requesting tenant's id, so landlords and agents see no
// deposit here.
func (s *DepositService) Status(ctx context.Context, actor ports.Identity) (*ports.StatusResult, error) {
	result := &ports.StatusResult{Email: actor.Email, Role: actor.Role}

	deposit, err := s.repo.FindLatestByUser(ctx, actor.UserID)
	if err != nil {
		if err == domain.ErrDepositNotFound {
			return result, nil
		}
		return nil, err
	}

	result.Deposit = depositView(deposit)
	return result, nil
}

// History returns all of the actor's deposits, newest first.
func (s *DepositService) History(ctx context.Context, actor ports.Identity) ([]ports.DepositView, error) {
	deposits, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.DepositView, 0, len(deposits))
	for _, d := range deposits {
		views = append(views, *depositView(d))
	}
	return views, nil
}

func (s *DepositService) removeBlob(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.blobs.Remove(ctx, ref); err != nil {
		s.logger.Warn().Err(err).Str("object", ref).Msg("failed to remove orphaned documentation")
	}
}

func depositView(d *domain.Deposit) *ports.DepositView {
	return &ports.DepositView{
		ID:               d.ID,
		Amount:           d.Amount,
		Status:           string(d.Status),
		Deduction:        d.Deduction,
		DocumentationRef: d.DocumentationRef,
		CreatedAt:        d.CreatedAt,
		RespondedAt:      d.RespondedAt,
		ResolvedAt:       d.ResolvedAt,
	}
}
