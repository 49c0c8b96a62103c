package service

import (
	"sync"
	"time"
)

// ActionKind identifies a destructive operation awaiting confirmation.
type ActionKind string

const (
	ActionDeleteEntry   ActionKind = "delete-entry"
	ActionClearHistory  ActionKind = "clear-history"
	ActionDeleteSession ActionKind = "delete-session"
)

// PendingAction is an armed destructive operation. Tokens never expire on their own;
// callers decide how long to honour one, using RequestedAt.
type PendingAction struct {
	Token       string
	Kind        ActionKind
	Email       string
	Style       string
	TargetID    string // empty for ActionClearHistory
	RequestedAt time.Time
}

type pendingActions struct {
	mu      sync.Mutex
	actions map[string]PendingAction
}

func newPendingActions() *pendingActions {
	return &pendingActions{actions: make(map[string]PendingAction)}
}

func (p *pendingActions) add(a PendingAction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions[a.Token] = a
}

// take removes and returns the action for token if it has one of the given kinds.
func (p *pendingActions) take(token string, kinds ...ActionKind) (PendingAction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.actions[token]
	if !ok || !hasKind(kinds, a.Kind) {
		return PendingAction{}, ErrPendingActionNotFound
	}
	delete(p.actions, token)
	return a, nil
}

func hasKind(kinds []ActionKind, k ActionKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
