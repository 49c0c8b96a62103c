package service

import (
	"math/rand"
	"sync"
	"time"

	"alcyxob/loadx/internal/locale"

	"github.com/google/uuid"
)

// Option customises the clock, id and random sources of a service.
type Option func(*settings)

type settings struct {
	now       func() time.Time
	newID     func() string
	random    *lockedRand
	formatter *locale.Formatter
}

func newSettings(opts []Option) settings {
	s := settings{
		now:       time.Now,
		newID:     uuid.NewString,
		random:    &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))},
		formatter: locale.NewFormatterIn(time.Local),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithClock sets the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithIDGenerator sets the generator of record ids and pending-action tokens.
func WithIDGenerator(newID func() string) Option {
	return func(s *settings) { s.newID = newID }
}

// WithRandSource sets the random source serial numbers are drawn from.
func WithRandSource(src rand.Source) Option {
	return func(s *settings) { s.random = &lockedRand{r: rand.New(src)} }
}

// WithFormatter sets the date and time formatter.
func WithFormatter(f *locale.Formatter) Option {
	return func(s *settings) { s.formatter = f }
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
