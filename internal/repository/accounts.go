package repository

import (
	"alcyxob/loadx/internal/domain"
	"context"
	"errors"
	"fmt"
)

// documentAccountRepository implements AccountRepository over the "accounts" document.
type documentAccountRepository struct {
	doc *Document[[]domain.Account]
}

// NewAccountRepository creates an AccountRepository backed by an opened document.
func NewAccountRepository(doc *Document[[]domain.Account]) AccountRepository {
	return &documentAccountRepository{doc: doc}
}

func (r *documentAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	accounts, err := r.doc.Read()
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (r *documentAccountRepository) find(ctx context.Context, match func(*domain.Account) bool) (*domain.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if match(&accounts[i]) {
			return &accounts[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail retrieves an account by its exact (case-sensitive) email.
func (r *documentAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.find(ctx, func(a *domain.Account) bool { return a.Email == email })
}

// GetBySerial retrieves an account by its serial number.
func (r *documentAccountRepository) GetBySerial(ctx context.Context, serial string) (*domain.Account, error) {
	return r.find(ctx, func(a *domain.Account) bool { return a.SerialNumber == serial })
}

func (r *documentAccountRepository) SerialExists(ctx context.Context, serial string) (bool, error) {
	_, err := r.GetBySerial(ctx, serial)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Create appends a new account, rejecting duplicate emails and serial numbers.
func (r *documentAccountRepository) Create(ctx context.Context, account domain.Account) error {
	if account.Email == "" || account.SerialNumber == "" || account.Role == "" {
		return fmt.Errorf("account email, serial number and role are required")
	}

	return r.doc.Update(ctx, func(accounts *[]domain.Account) error {
		for _, a := range *accounts {
			if a.Email == account.Email {
				return fmt.Errorf("email %q: %w", account.Email, ErrConflict)
			}
			if a.SerialNumber == account.SerialNumber {
				return fmt.Errorf("serial %q: %w", account.SerialNumber, ErrConflict)
			}
		}
		*accounts = append(*accounts, account)
		return nil
	})
}

// UpdatePhoto replaces the photo handle of the account with the given email.
func (r *documentAccountRepository) UpdatePhoto(ctx context.Context, email, photo string) (*domain.Account, error) {
	var updated domain.Account
	err := r.doc.Update(ctx, func(accounts *[]domain.Account) error {
		for i := range *accounts {
			if (*accounts)[i].Email == email {
				(*accounts)[i].Photo = photo
				updated = (*accounts)[i]
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
