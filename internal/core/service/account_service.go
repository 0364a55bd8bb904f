package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/PierreClouet/WorkEat/internal/core/domain"
	"github.com/PierreClouet/WorkEat/internal/core/ports"
)

// WelcomeDispatcher abstracts the async mail queue. Enqueue must not block
// the request beyond channel-buffer capacity and must never fail it.
type WelcomeDispatcher interface {
	Enqueue(msg ports.WelcomeEmail)
}

// AccountService implements the account workflow: register, login credential
// check, full-replace update, owner-checked delete, and the admin listing.
type AccountService struct {
	repo    ports.AccountRepository
	welcome WelcomeDispatcher
	log     zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, welcome WelcomeDispatcher, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, welcome: welcome, log: log}
}

// List returns every account in store-native order, unpaginated.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// Login verifies the credential pair against the stored hash. An unknown
// username and a wrong password fail with the same error so the two cases
// are not observably distinguishable.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}

// Register hashes the password with a fresh salt, checks username
// uniqueness, persists the account, and queues the welcome email. The
// read-then-insert check is not atomic; the repository's unique index on
// username resolves the race to ErrAccountExists.
func (s *AccountService) Register(ctx context.Context, input ports.AccountInput) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrAccountExists
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     input.Username,
		PasswordHash: string(hash),
		Name:         input.Name,
		Surname:      input.Surname,
		PostalCode:   input.PostalCode,
		Town:         input.Town,
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	// Fire-and-forget: the response never waits on, nor fails with, delivery.
	s.welcome.Enqueue(ports.WelcomeEmail{To: created.Username, Surname: created.Surname})

	s.log.Info().Str("username", created.Username).Msg("account created")

	return created, nil
}

// Update performs a full-document replace of the account identified by the
// caller's session account id. The password is re-hashed with a fresh salt
// even when the plaintext is unchanged.
func (s *AccountService) Update(ctx context.Context, accountID string, input ports.AccountInput) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("update: hash password: %w", err)
	}

	account := &domain.Account{
		Username:     input.Username,
		PasswordHash: string(hash),
		Name:         input.Name,
		Surname:      input.Surname,
		PostalCode:   input.PostalCode,
		Town:         input.Town,
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
		UpdatedAt:    time.Now().UTC(),
	}

	updated, err := s.repo.ReplaceByID(ctx, accountID, account)
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) || errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update: %w", err)
	}

	s.log.Info().Str("username", updated.Username).Msg("account updated")
	return updated, nil
}

// Delete removes the account named by username, but only when it is the
// caller's own: the requested username must equal the session identity's.
func (s *AccountService) Delete(ctx context.Context, identity ports.SessionIdentity, username string) error {
	if username != identity.Username {
		return domain.ErrNotAccountOwner
	}

	if err := s.repo.DeleteByUsername(ctx, username); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.log.Info().Str("username", username).Msg("account deleted")
	return nil
}
