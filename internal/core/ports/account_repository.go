package ports

import (
	"context"

	"github.com/PierreClouet/WorkEat/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	FindAll(ctx context.Context) ([]domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// ReplaceByID overwrites every mutable field of the account identified
	// by id and returns the stored document.
	ReplaceByID(ctx context.Context, id string, account *domain.Account) (*domain.Account, error)

	DeleteByUsername(ctx context.Context, username string) error
}
