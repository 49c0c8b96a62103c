package repository

import (
	"alcyxob/loadx/internal/domain"
	"context"
	"fmt"
)

// CoachRosters is the shape of the "coach-rosters" document: coach email → entries.
type CoachRosters = map[string][]domain.RosterEntry

// documentRosterRepository implements RosterRepository over the "coach-rosters" document.
type documentRosterRepository struct {
	doc *Document[CoachRosters]
}

// NewRosterRepository creates a RosterRepository backed by an opened document.
func NewRosterRepository(doc *Document[CoachRosters]) RosterRepository {
	return &documentRosterRepository{doc: doc}
}

func (r *documentRosterRepository) List(ctx context.Context, coachEmail string) ([]domain.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rosters, err := r.doc.Read()
	if err != nil {
		return nil, err
	}
	entries := rosters[coachEmail]
	if entries == nil {
		entries = []domain.RosterEntry{}
	}
	return entries, nil
}

// Append adds entry at the end of the coach's roster.
func (r *documentRosterRepository) Append(ctx context.Context, coachEmail string, entry domain.RosterEntry) error {
	return r.doc.Update(ctx, func(rosters *CoachRosters) error {
		if *rosters == nil {
			*rosters = make(CoachRosters)
		}
		for _, e := range (*rosters)[coachEmail] {
			if e.SerialNumber == entry.SerialNumber {
				return fmt.Errorf("serial %q: %w", entry.SerialNumber, ErrConflict)
			}
		}
		(*rosters)[coachEmail] = append((*rosters)[coachEmail], entry)
		return nil
	})
}
