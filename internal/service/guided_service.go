package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/progression"
	"alcyxob/loadx/internal/repository"

	log "github.com/sirupsen/logrus"
)

// Draft is a coach's provisional list of guided exercises, built by selecting a style,
// a sub-module and a muscle group before adding exercises. Not safe for concurrent use.
type Draft struct {
	coachEmail  string
	style       string
	subModule   string
	muscleGroup string
	exercises   []domain.GuidedExercise
	newID       func() string
}

func (d *Draft) SelectStyle(style string) {
	d.style = strings.TrimSpace(style)
}

func (d *Draft) SelectSubModule(subModule string) {
	d.subModule = strings.TrimSpace(subModule)
}

func (d *Draft) SelectMuscleGroup(muscleGroup string) {
	d.muscleGroup = strings.TrimSpace(muscleGroup)
}

// AddExercise appends an exercise for the current selection. Its progression is fixed
// now, with the first-in-cycle scheme only when the draft is empty.
func (d *Draft) AddExercise(name string) (*domain.GuidedExercise, error) {
	name = strings.TrimSpace(name)
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"style", d.style}, {"subModule", d.subModule}, {"muscleGroup", d.muscleGroup}, {"name", name},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	ex := domain.GuidedExercise{
		ID:          d.newID(),
		MuscleGroup: d.muscleGroup,
		Name:        name,
		Style:       d.style,
		SubModule:   d.subModule,
		Progression: progression.For(d.subModule, len(d.exercises) == 0),
		CoachEmail:  d.coachEmail,
	}
	d.exercises = append(d.exercises, ex)
	return &ex, nil
}

// RemoveExercise drops the exercise with id. The other exercises keep their progressions.
func (d *Draft) RemoveExercise(id string) bool {
	for i := range d.exercises {
		if d.exercises[i].ID == id {
			d.exercises = append(d.exercises[:i:i], d.exercises[i+1:]...)
			return true
		}
	}
	return false
}

// Exercises returns a copy of the draft in insertion order.
func (d *Draft) Exercises() []domain.GuidedExercise {
	return append([]domain.GuidedExercise(nil), d.exercises...)
}

func (d *Draft) Len() int {
	return len(d.exercises)
}

// Reset empties the draft and its selections.
func (d *Draft) Reset() {
	d.style, d.subModule, d.muscleGroup = "", "", ""
	d.exercises = nil
}

// --- Service Interface ---
type GuidedService interface {
	NewDraft(coach *domain.Account) (*Draft, error)
	Submit(ctx context.Context, coach *domain.Account, athleteEmail string, draft *Draft) error
	SubmitForSerial(ctx context.Context, coach *domain.Account, serialNumber string, draft *Draft) error
	List(ctx context.Context, athleteEmail string) ([]domain.GuidedExercise, error)
	Grouped(ctx context.Context, athleteEmail string) ([]GuidedView, error)
	AthleteEditMaxWeight(ctx context.Context, athleteEmail, exerciseID, maxWeight string) (*domain.GuidedExercise, error)
}

// guidedService implements the GuidedService interface.
type guidedService struct {
	accountRepo repository.AccountRepository
	guidedRepo  repository.GuidedRepository
	settings
}

// NewGuidedService creates a new instance of guidedService.
func NewGuidedService(accountRepo repository.AccountRepository, guidedRepo repository.GuidedRepository, opts ...Option) GuidedService {
	return &guidedService{
		accountRepo: accountRepo,
		guidedRepo:  guidedRepo,
		settings:    newSettings(opts),
	}
}

func (s *guidedService) NewDraft(coach *domain.Account) (*Draft, error) {
	if err := requireCoach(coach); err != nil {
		return nil, err
	}
	return &Draft{coachEmail: coach.Email, newID: s.newID}, nil
}

// Submit replaces the athlete's whole guided list with the draft, then resets the draft.
func (s *guidedService) Submit(ctx context.Context, coach *domain.Account, athleteEmail string, draft *Draft) error {
	if err := requireCoach(coach); err != nil {
		return err
	}
	athleteEmail = strings.TrimSpace(athleteEmail)
	if athleteEmail == "" || draft == nil || draft.Len() == 0 {
		return ErrMissingDataOrEmptyList
	}

	exercises := draft.Exercises()
	if err := s.guidedRepo.Replace(ctx, athleteEmail, exercises); err != nil {
		return fmt.Errorf("assign guided exercises: %w", err)
	}

	log.WithFields(log.Fields{"email": coach.Email, "athlete": athleteEmail, "exercises": len(exercises)}).Info("guided workout assigned")
	draft.Reset()
	return nil
}

// SubmitForSerial resolves the athlete by serial number and submits the draft to them.
func (s *guidedService) SubmitForSerial(ctx context.Context, coach *domain.Account, serialNumber string, draft *Draft) error {
	if err := requireCoach(coach); err != nil {
		return err
	}
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return ErrMissingDataOrEmptyList
	}
	athlete, err := s.accountRepo.GetBySerial(ctx, serialNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return s.Submit(ctx, coach, athlete.Email, draft)
}

func (s *guidedService) List(ctx context.Context, athleteEmail string) ([]domain.GuidedExercise, error) {
	return s.guidedRepo.List(ctx, athleteEmail)
}

func (s *guidedService) Grouped(ctx context.Context, athleteEmail string) ([]GuidedView, error) {
	exercises, err := s.List(ctx, athleteEmail)
	if err != nil {
		return nil, err
	}
	return BuildGuidedView(exercises), nil
}

// AthleteEditMaxWeight sets the max weight of one guided exercise, the only field the
// athlete may change.
func (s *guidedService) AthleteEditMaxWeight(ctx context.Context, athleteEmail, exerciseID, maxWeight string) (*domain.GuidedExercise, error) {
	var updated domain.GuidedExercise
	found, err := s.guidedRepo.Update(ctx, athleteEmail, exerciseID, func(ex *domain.GuidedExercise) {
		ex.MaxWeight = strings.TrimSpace(maxWeight)
		updated = *ex
	})
	if err != nil {
		return nil, fmt.Errorf("update max weight: %w", err)
	}
	if !found {
		return nil, ErrGuidedExerciseNotFound
	}

	log.WithFields(log.Fields{"email": athleteEmail, "id": exerciseID}).Debug("guided max weight updated")
	return &updated, nil
}
