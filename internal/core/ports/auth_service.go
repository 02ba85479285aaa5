package ports

import (
	"context"

	"github.com/rentledger/deposit-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}
