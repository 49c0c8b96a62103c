package service

import (
	"context"
	"fmt"
	"strings"

	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/repository"

	log "github.com/sirupsen/logrus"
)

// EntryInput is the form for logging an exercise.
type EntryInput struct {
	MuscleGroup string
	Name        string `validate:"required"`
	MaxWeight   string
}

// EntryPatch replaces the non-nil fields of a logged exercise.
type EntryPatch struct {
	MuscleGroup *string
	Name        *string
	MaxWeight   *string
}

// --- Service Interface ---
type ExerciseService interface {
	AddEntry(ctx context.Context, email, style string, in EntryInput) (*domain.LoggedExercise, error)
	UpdateEntry(ctx context.Context, email, style, id string, patch EntryPatch) (bool, error)
	DeleteEntry(ctx context.Context, email, style, id string) (bool, error)

	RequestDelete(email, style, id string) PendingAction
	ConfirmDelete(ctx context.Context, token string) (bool, error)
	CancelDelete(token string) error

	Entries(ctx context.Context, email, style string) ([]domain.LoggedExercise, error)
	EntriesByMuscleGroup(ctx context.Context, email, style, muscleGroup string) ([]domain.LoggedExercise, error)
	UniqueMuscleGroups(ctx context.Context, email, style string) ([]string, error)
	Cards(ctx context.Context, email, style string) ([]ExerciseCard, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	logRepo repository.ExerciseLogRepository
	pending *pendingActions
	settings
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(logRepo repository.ExerciseLogRepository, opts ...Option) ExerciseService {
	return &exerciseService{
		logRepo:  logRepo,
		pending:  newPendingActions(),
		settings: newSettings(opts),
	}
}

func checkStyle(style string) error {
	if !domain.IsStyleKey(style) {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	return nil
}

func checkOwner(email, style string) error {
	if email == "" {
		return fmt.Errorf("%w: email", ErrMissingField)
	}
	return checkStyle(style)
}

// AddEntry appends a new exercise, stamped with the current date and time, to the
// style's log. A blank muscle group is filed under "Outros".
func (s *exerciseService) AddEntry(ctx context.Context, email, style string, in EntryInput) (*domain.LoggedExercise, error) {
	if err := checkOwner(email, style); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.MuscleGroup = strings.TrimSpace(in.MuscleGroup)
	in.MaxWeight = strings.TrimSpace(in.MaxWeight)
	if err := checkFields(in); err != nil {
		return nil, err
	}
	if in.MuscleGroup == "" {
		in.MuscleGroup = domain.MuscleGroupOthers
	}

	now := s.now()
	entry := domain.LoggedExercise{
		ID:          s.newID(),
		MuscleGroup: in.MuscleGroup,
		Name:        in.Name,
		MaxWeight:   in.MaxWeight,
		Date:        s.formatter.Date(now),
		Time:        s.formatter.Time(now),
	}
	if err := s.logRepo.Append(ctx, email, style, entry); err != nil {
		return nil, fmt.Errorf("append exercise: %w", err)
	}

	log.WithFields(log.Fields{"email": email, "style": style, "id": entry.ID}).Debug("exercise logged")
	return &entry, nil
}

// UpdateEntry applies patch to the entry with id. It reports false, without error, when
// the entry does not exist.
func (s *exerciseService) UpdateEntry(ctx context.Context, email, style, id string, patch EntryPatch) (bool, error) {
	if err := checkOwner(email, style); err != nil {
		return false, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return false, fmt.Errorf("%w: Name", ErrMissingField)
	}

	found, err := s.logRepo.Update(ctx, email, style, id, func(e *domain.LoggedExercise) {
		if patch.MuscleGroup != nil {
			e.MuscleGroup = strings.TrimSpace(*patch.MuscleGroup)
			if e.MuscleGroup == "" {
				e.MuscleGroup = domain.MuscleGroupOthers
			}
		}
		if patch.Name != nil {
			e.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.MaxWeight != nil {
			e.MaxWeight = strings.TrimSpace(*patch.MaxWeight)
		}
	})
	if err != nil {
		return false, fmt.Errorf("update exercise: %w", err)
	}
	if found {
		log.WithFields(log.Fields{"email": email, "style": style, "id": id}).Debug("exercise updated")
	}
	return found, nil
}

func (s *exerciseService) DeleteEntry(ctx context.Context, email, style, id string) (bool, error) {
	if err := checkOwner(email, style); err != nil {
		return false, err
	}
	found, err := s.logRepo.Delete(ctx, email, style, id)
	if err != nil {
		return false, fmt.Errorf("delete exercise: %w", err)
	}
	if found {
		log.WithFields(log.Fields{"email": email, "style": style, "id": id}).Debug("exercise deleted")
	}
	return found, nil
}

// RequestDelete arms the deletion of entry id; ConfirmDelete carries it out.
func (s *exerciseService) RequestDelete(email, style, id string) PendingAction {
	a := PendingAction{
		Token:       s.newID(),
		Kind:        ActionDeleteEntry,
		Email:       email,
		Style:       style,
		TargetID:    id,
		RequestedAt: s.now(),
	}
	s.pending.add(a)
	return a
}

// ConfirmDelete deletes the entry armed under token. A failed delete leaves the token armed.
func (s *exerciseService) ConfirmDelete(ctx context.Context, token string) (bool, error) {
	a, err := s.pending.take(token, ActionDeleteEntry)
	if err != nil {
		return false, err
	}
	found, err := s.DeleteEntry(ctx, a.Email, a.Style, a.TargetID)
	if err != nil {
		s.pending.add(a)
		return false, err
	}
	return found, nil
}

func (s *exerciseService) CancelDelete(token string) error {
	_, err := s.pending.take(token, ActionDeleteEntry)
	return err
}

func (s *exerciseService) Entries(ctx context.Context, email, style string) ([]domain.LoggedExercise, error) {
	if err := checkOwner(email, style); err != nil {
		return nil, err
	}
	return s.logRepo.List(ctx, email, style)
}

func (s *exerciseService) EntriesByMuscleGroup(ctx context.Context, email, style, muscleGroup string) ([]domain.LoggedExercise, error) {
	entries, err := s.Entries(ctx, email, style)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LoggedExercise, 0, len(entries))
	for _, e := range entries {
		if e.MuscleGroup == muscleGroup {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *exerciseService) UniqueMuscleGroups(ctx context.Context, email, style string) ([]string, error) {
	entries, err := s.Entries(ctx, email, style)
	if err != nil {
		return nil, err
	}
	return domain.UniqueMuscleGroups(entries), nil
}

func (s *exerciseService) Cards(ctx context.Context, email, style string) ([]ExerciseCard, error) {
	entries, err := s.Entries(ctx, email, style)
	if err != nil {
		return nil, err
	}
	return BuildCards(style, entries), nil
}
