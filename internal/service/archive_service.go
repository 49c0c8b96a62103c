package service

import (
	"context"
	"fmt"
	"time"

	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/repository"

	log "github.com/sirupsen/logrus"
)

// --- Service Interface ---
type ArchiveService interface {
	FinishWorkout(ctx context.Context, email, style string) (*domain.WorkoutSession, error)
	History(ctx context.Context, email, style string) ([]domain.WorkoutSession, error)
	FilterByDate(history []domain.WorkoutSession, day time.Time) []domain.WorkoutSession
	FilterByCalendarDate(history []domain.WorkoutSession, date string) ([]domain.WorkoutSession, error)

	RequestClearHistory(email, style string) PendingAction
	RequestDeleteSession(email, style, sessionID string) PendingAction
	Confirm(ctx context.Context, token string) error
	Cancel(token string) error
}

// archiveService implements the ArchiveService interface.
type archiveService struct {
	logRepo     repository.ExerciseLogRepository
	historyRepo repository.HistoryRepository
	pending     *pendingActions
	settings
}

// NewArchiveService creates a new instance of archiveService.
func NewArchiveService(logRepo repository.ExerciseLogRepository, historyRepo repository.HistoryRepository, opts ...Option) ArchiveService {
	return &archiveService{
		logRepo:     logRepo,
		historyRepo: historyRepo,
		pending:     newPendingActions(),
		settings:    newSettings(opts),
	}
}

// FinishWorkout moves the style's live log into a new session at the head of its
// history. It returns nil, without error, when the log is empty.
func (s *archiveService) FinishWorkout(ctx context.Context, email, style string) (*domain.WorkoutSession, error) {
	if err := checkOwner(email, style); err != nil {
		return nil, err
	}

	entries, err := s.logRepo.List(ctx, email, style)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	now := s.now()
	session := domain.WorkoutSession{
		ID:        s.newID(),
		Date:      s.formatter.Date(now),
		Time:      s.formatter.Time(now),
		Exercises: append([]domain.LoggedExercise(nil), entries...),
	}

	if err := s.historyRepo.Prepend(ctx, email, style, session); err != nil {
		return nil, fmt.Errorf("archive session: %w", err)
	}
	if err := s.logRepo.Replace(ctx, email, style, nil); err != nil {
		// Undo the prepend so no entry is left both live and archived.
		if _, rbErr := s.historyRepo.Delete(ctx, email, style, session.ID); rbErr != nil {
			log.WithFields(log.Fields{"email": email, "style": style, "id": session.ID}).
				Errorf("failed to roll back archived session: %s", rbErr)
		}
		return nil, fmt.Errorf("clear exercise log: %w", err)
	}

	log.WithFields(log.Fields{"email": email, "style": style, "id": session.ID, "exercises": len(entries)}).Info("workout finished")
	return &session, nil
}

func (s *archiveService) History(ctx context.Context, email, style string) ([]domain.WorkoutSession, error) {
	if err := checkOwner(email, style); err != nil {
		return nil, err
	}
	return s.historyRepo.List(ctx, email, style)
}

// FilterByDate keeps the sessions whose stored date equals the formatted date of day's
// local midnight.
func (s *archiveService) FilterByDate(history []domain.WorkoutSession, day time.Time) []domain.WorkoutSession {
	target := s.formatter.Date(s.formatter.MidnightOf(day))
	out := make([]domain.WorkoutSession, 0, len(history))
	for _, session := range history {
		if session.Date == target {
			out = append(out, session)
		}
	}
	return out
}

// FilterByCalendarDate is FilterByDate for a YYYY-MM-DD date.
func (s *archiveService) FilterByCalendarDate(history []domain.WorkoutSession, date string) ([]domain.WorkoutSession, error) {
	day, err := s.formatter.ParseCalendarDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return s.FilterByDate(history, day), nil
}

func (s *archiveService) RequestClearHistory(email, style string) PendingAction {
	return s.request(ActionClearHistory, email, style, "")
}

func (s *archiveService) RequestDeleteSession(email, style, sessionID string) PendingAction {
	return s.request(ActionDeleteSession, email, style, sessionID)
}

func (s *archiveService) request(kind ActionKind, email, style, target string) PendingAction {
	a := PendingAction{
		Token:       s.newID(),
		Kind:        kind,
		Email:       email,
		Style:       style,
		TargetID:    target,
		RequestedAt: s.now(),
	}
	s.pending.add(a)
	return a
}

// Confirm carries out the history removal armed under token. A failure leaves the token armed.
func (s *archiveService) Confirm(ctx context.Context, token string) error {
	a, err := s.pending.take(token, ActionClearHistory, ActionDeleteSession)
	if err != nil {
		return err
	}
	if err := s.apply(ctx, a); err != nil {
		s.pending.add(a)
		return err
	}
	return nil
}

func (s *archiveService) apply(ctx context.Context, a PendingAction) error {
	if err := checkOwner(a.Email, a.Style); err != nil {
		return err
	}
	fields := log.Fields{"email": a.Email, "style": a.Style}

	if a.Kind == ActionClearHistory {
		if err := s.historyRepo.Clear(ctx, a.Email, a.Style); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		log.WithFields(fields).Info("history cleared")
		return nil
	}

	found, err := s.historyRepo.Delete(ctx, a.Email, a.Style, a.TargetID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	fields["id"] = a.TargetID
	if found {
		log.WithFields(fields).Info("session deleted")
	} else {
		log.WithFields(fields).Debug("session to delete was already gone")
	}
	return nil
}

func (s *archiveService) Cancel(token string) error {
	_, err := s.pending.take(token, ActionClearHistory, ActionDeleteSession)
	return err
}
