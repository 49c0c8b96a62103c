package service

import (
	"context"
	"errors"
	"strings"

	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/repository"

	log "github.com/sirupsen/logrus"
)

// RosterProfile is a roster entry with the athlete account its serial resolves to.
// Account is nil when no account has the serial any more.
type RosterProfile struct {
	Entry   domain.RosterEntry
	Account *domain.Account
}

type rosterInput struct {
	DisplayName  string `validate:"required"`
	SerialNumber string `validate:"required"`
}

// --- Service Interface ---
type CoachService interface {
	AddRosterEntry(ctx context.Context, coach *domain.Account, displayName, serialNumber string) ([]domain.RosterEntry, error)
	Roster(ctx context.Context, coach *domain.Account) ([]domain.RosterEntry, error)
	RosterProfiles(ctx context.Context, coach *domain.Account) ([]RosterProfile, error)
}

// coachService implements the CoachService interface.
type coachService struct {
	accountRepo repository.AccountRepository
	rosterRepo  repository.RosterRepository
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(accountRepo repository.AccountRepository, rosterRepo repository.RosterRepository) CoachService {
	return &coachService{
		accountRepo: accountRepo,
		rosterRepo:  rosterRepo,
	}
}

func requireCoach(account *domain.Account) error {
	if account == nil || !account.IsCoach() {
		return ErrCoachRequired
	}
	return nil
}

// AddRosterEntry links the account with serialNumber to the coach's roster and returns
// the updated roster.
func (s *coachService) AddRosterEntry(ctx context.Context, coach *domain.Account, displayName, serialNumber string) ([]domain.RosterEntry, error) {
	if err := requireCoach(coach); err != nil {
		return nil, err
	}

	in := rosterInput{
		DisplayName:  strings.TrimSpace(displayName),
		SerialNumber: strings.TrimSpace(serialNumber),
	}
	if err := checkFields(in); err != nil {
		return nil, &rosterError{err: err}
	}

	if _, err := s.accountRepo.GetBySerial(ctx, in.SerialNumber); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	roster, err := s.rosterRepo.List(ctx, coach.Email)
	if err != nil {
		return nil, err
	}
	for _, e := range roster {
		if e.SerialNumber == in.SerialNumber {
			return nil, ErrDuplicateStudent
		}
	}

	entry := domain.RosterEntry{DisplayName: in.DisplayName, SerialNumber: in.SerialNumber}
	if err := s.rosterRepo.Append(ctx, coach.Email, entry); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateStudent
		}
		return nil, err
	}

	log.WithFields(log.Fields{"email": coach.Email, "serial": entry.SerialNumber}).Info("athlete added to roster")
	return s.rosterRepo.List(ctx, coach.Email)
}

func (s *coachService) Roster(ctx context.Context, coach *domain.Account) ([]domain.RosterEntry, error) {
	if err := requireCoach(coach); err != nil {
		return nil, err
	}
	return s.rosterRepo.List(ctx, coach.Email)
}

// RosterProfiles resolves every roster entry to its athlete account by serial number.
func (s *coachService) RosterProfiles(ctx context.Context, coach *domain.Account) ([]RosterProfile, error) {
	roster, err := s.Roster(ctx, coach)
	if err != nil {
		return nil, err
	}

	profiles := make([]RosterProfile, 0, len(roster))
	for _, entry := range roster {
		p := RosterProfile{Entry: entry}
		account, err := s.accountRepo.GetBySerial(ctx, entry.SerialNumber)
		switch {
		case err == nil:
			p.Account = account
		case errors.Is(err, repository.ErrNotFound):
			log.WithField("serial", entry.SerialNumber).Warn("roster entry has no matching account")
		default:
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
