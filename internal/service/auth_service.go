package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/repository"
	"alcyxob/loadx/internal/storage"

	log "github.com/sirupsen/logrus"
)

// RegisterInput carries the registration form. LastName, ConfirmPassword and Cref are
// only required for coaches.
type RegisterInput struct {
	Role            domain.Role `validate:"required,oneof=ATHLETE COACH"`
	Name            string      `validate:"required"`
	LastName        string      `validate:"required_if=Role COACH"`
	Email           string      `validate:"required"`
	Password        string      `validate:"required"`
	ConfirmPassword string      `validate:"required_if=Role COACH"`
	Cref            string      `validate:"required_if=Role COACH"`
}

// --- Service Interface ---
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.Account, error)
	Logout()
	Current() (*domain.Account, bool)
	UpdatePhoto(ctx context.Context, account *domain.Account, image []byte) (*domain.Account, error)
}

const (
	serialAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	serialLength   = 6
)

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	accountRepo repository.AccountRepository
	photos      storage.PhotoEncoder
	session     *Session
	settings
}

// NewAuthService creates a new instance of authService.
func NewAuthService(accountRepo repository.AccountRepository, photos storage.PhotoEncoder, session *Session, opts ...Option) AuthService {
	if session == nil {
		session = NewSession()
	}
	return &authService{
		accountRepo: accountRepo,
		photos:      photos,
		session:     session,
		settings:    newSettings(opts),
	}
}

// Register validates the form, issues a unique serial number, stores the account and
// signs it in.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Cref = strings.TrimSpace(in.Cref)

	// 1. Required fields for the role
	if err := checkFields(in); err != nil {
		return nil, err
	}
	isCoach := in.Role == domain.RoleCoach

	// 2. Password rules
	if isCoach && in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !StrongPassword(in.Password) {
		return nil, ErrWeakPassword
	}

	// 3. Email must be free
	_, err := s.accountRepo.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 4. Serial number
	serial, err := s.issueSerial(ctx)
	if err != nil {
		return nil, err
	}

	account := domain.Account{
		Email:        in.Email,
		Name:         in.Name,
		Password:     in.Password,
		Role:         in.Role,
		SerialNumber: serial,
	}
	if isCoach {
		account.LastName = in.LastName
		account.Cref = in.Cref
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	log.WithFields(log.Fields{"email": account.Email, "role": account.Role, "serial": account.SerialNumber}).Info("account registered")
	s.session.set(account)
	return &account, nil
}

// issueSerial draws candidates until one is not used by any account.
func (s *authService) issueSerial(ctx context.Context) (string, error) {
	for {
		candidate := s.newSerial()
		exists, err := s.accountRepo.SerialExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		log.WithField("serial", candidate).Debug("serial number collision, drawing again")
	}
}

func (s *authService) newSerial() string {
	b := make([]byte, 0, serialLength+1)
	b = append(b, '#')
	for i := 0; i < serialLength; i++ {
		b = append(b, serialAlphabet[s.random.Intn(len(serialAlphabet))])
	}
	return string(b)
}

// Login signs in the account whose email and password match exactly.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accountRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if account.Password != password {
		return nil, ErrInvalidCredentials
	}

	log.WithField("email", account.Email).Debug("signed in")
	s.session.set(*account)
	return account, nil
}

func (s *authService) Logout() {
	s.session.clear()
}

func (s *authService) Current() (*domain.Account, bool) {
	return s.session.Current()
}

// UpdatePhoto encodes image and stores the handle on the account. The signed-in
// account, when it is the same one, only changes after the stored account did.
func (s *authService) UpdatePhoto(ctx context.Context, account *domain.Account, image []byte) (*domain.Account, error) {
	if account == nil || account.Email == "" {
		return nil, ErrMissingField
	}

	handle, err := s.photos.Encode(ctx, image)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyImage) {
			return nil, fmt.Errorf("%w: image", ErrMissingField)
		}
		return nil, fmt.Errorf("encode photo: %w", err)
	}

	updated, err := s.accountRepo.UpdatePhoto(ctx, account.Email, handle)
	if err != nil {
		return nil, fmt.Errorf("update photo: %w", err)
	}

	s.session.replace(*updated)
	log.WithField("email", updated.Email).Info("photo updated")
	return updated, nil
}
