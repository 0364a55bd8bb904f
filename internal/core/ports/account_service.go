package ports

import (
	"context"

	"github.com/PierreClouet/WorkEat/internal/core/domain"
)

// AccountInput is the DTO passed from the transport layer for both Register
// and Update. Every field is required; Update is a full replace, never a
// partial patch.
type AccountInput struct {
	Username    string
	Password    string
	Name        string
	Surname     string
	PostalCode  string
	Town        string
	Address     string
	PhoneNumber string
}

type AccountService interface {
	List(ctx context.Context) ([]domain.Account, error)
	Login(ctx context.Context, username, password string) (*domain.Account, error)
	Register(ctx context.Context, input AccountInput) (*domain.Account, error)
	Update(ctx context.Context, accountID string, input AccountInput) (*domain.Account, error)
	Delete(ctx context.Context, identity SessionIdentity, username string) error
}
