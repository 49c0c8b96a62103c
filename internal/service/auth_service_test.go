package service

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serialPattern = regexp.MustCompile(`^#[A-Z0-9]{6}$`)

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Forte#1a", false}, // '#' is not an allowed symbol
		{"Forte@1a", true},
		{"Abcdef1!", true},
		{"abcdef1!", false},
		{"ABCDEF1!", false},
		{"Abcdefg!", false},
		{"Abcdefg1", false},
		{"Ab1!", false},
		{"Abcdéf1!", false},
		{"Abc def1!", false},
		{"Zz9?Zz9?Zz9?", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StrongPassword(tt.password), tt.password)
	}
}

func TestRegister_Athlete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.auth.Register(ctx, RegisterInput{
		Role: domain.RoleAthlete, Name: " Rui ", Email: "rui@x.com", Password: "Abcdef1!",
		LastName: "ignored", Cref: "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "Rui", a.Name)
	assert.Empty(t, a.LastName)
	assert.Empty(t, a.Cref)
	assert.Equal(t, domain.RoleAthlete, a.Role)
	assert.Regexp(t, serialPattern, a.SerialNumber)

	stored, err := f.repos.Accounts.GetByEmail(ctx, "rui@x.com")
	require.NoError(t, err)
	assert.Equal(t, *a, *stored)

	current, ok := f.auth.Current()
	require.True(t, ok)
	assert.Equal(t, "rui@x.com", current.Email)
}

func TestRegister_ValidationOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerAthlete(t, "taken@x.com")

	coach := func(mod func(*RegisterInput)) RegisterInput {
		in := RegisterInput{
			Role: domain.RoleCoach, Name: "Ana", LastName: "Souza", Email: "ana@x.com",
			Password: "Abcdef1!", ConfirmPassword: "Abcdef1!", Cref: "123",
		}
		mod(&in)
		return in
	}

	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"athlete without name", RegisterInput{Role: domain.RoleAthlete, Email: "a@x.com", Password: "Abcdef1!"}, ErrMissingField},
		{"no role", RegisterInput{Name: "A", Email: "a@x.com", Password: "Abcdef1!"}, ErrMissingField},
		{"coach without cref", coach(func(in *RegisterInput) { in.Cref = " " }), ErrMissingField},
		{"coach without last name", coach(func(in *RegisterInput) { in.LastName = "" }), ErrMissingField},
		{"coach without confirmation", coach(func(in *RegisterInput) { in.ConfirmPassword = "" }), ErrMissingField},
		{"mismatch before weak", coach(func(in *RegisterInput) { in.Password = "weak"; in.ConfirmPassword = "other" }), ErrPasswordMismatch},
		{"coach weak", coach(func(in *RegisterInput) { in.Password = "weak"; in.ConfirmPassword = "weak" }), ErrWeakPassword},
		{"weak before duplicate", RegisterInput{Role: domain.RoleAthlete, Name: "A", Email: "taken@x.com", Password: "weak"}, ErrWeakPassword},
		{"duplicate email", RegisterInput{Role: domain.RoleAthlete, Name: "A", Email: "taken@x.com", Password: "Abcdef1!"}, ErrDuplicateEmail},
		{"coach duplicate email", coach(func(in *RegisterInput) { in.Email = "taken@x.com" }), ErrDuplicateEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	accounts, err := f.repos.Accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1, "failed registrations store nothing")
}

func TestRegister_AthleteSkipsConfirmation(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), RegisterInput{
		Role: domain.RoleAthlete, Name: "A", Email: "a@x.com", Password: "Abcdef1!", ConfirmPassword: "different",
	})
	assert.NoError(t, err)
}

func TestRegister_UniqueSerials(t *testing.T) {
	f := newFixture(t)

	seen := make(map[string]bool)
	for i := 0; i < 60; i++ {
		var a *domain.Account
		if i%2 == 0 {
			a = f.registerAthlete(t, fmt.Sprintf("athlete%d@x.com", i))
		} else {
			a = f.registerCoach(t, fmt.Sprintf("coach%d@x.com", i))
		}
		assert.Regexp(t, serialPattern, a.SerialNumber)
		assert.False(t, seen[a.SerialNumber], "serial %s issued twice", a.SerialNumber)
		seen[a.SerialNumber] = true
	}
}

func TestRegister_SerialCollisionDrawsAgain(t *testing.T) {
	// Twelve zeros give "#AAAAAA" twice, then ones give "#BBBBBB".
	vals := make([]int64, 12, 13)
	vals = append(vals, 1)
	f := newFixture(t, WithRandSource(&seqSource{vals: vals}))

	first := f.registerAthlete(t, "a@x.com")
	second := f.registerCoach(t, "b@x.com")

	assert.Equal(t, "#AAAAAA", first.SerialNumber)
	assert.Equal(t, "#BBBBBB", second.SerialNumber)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered := f.registerAthlete(t, "ana@x.com")
	f.auth.Logout()
	_, ok := f.auth.Current()
	require.False(t, ok)

	a, err := f.auth.Login(ctx, "ana@x.com", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, registered.SerialNumber, a.SerialNumber)
	current, ok := f.auth.Current()
	require.True(t, ok)
	assert.Equal(t, "ana@x.com", current.Email)

	f.auth.Logout()
	_, err = f.auth.Login(ctx, "ana@x.com", "Forte@1A")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "Ana@x.com", strongPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "emails are case-sensitive")
	_, err = f.auth.Login(ctx, "nobody@x.com", strongPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok = f.auth.Current()
	assert.False(t, ok)
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestUpdatePhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.registerAthlete(t, "ana@x.com")

	updated, err := f.auth.UpdatePhoto(ctx, a, pngHeader)
	require.NoError(t, err)
	assert.Contains(t, updated.Photo, "data:image/png;base64,")

	stored, err := f.repos.Accounts.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, updated.Photo, stored.Photo)
	current, _ := f.auth.Current()
	assert.Equal(t, updated.Photo, current.Photo)

	_, err = f.auth.UpdatePhoto(ctx, a, nil)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestUpdatePhoto_FailedWriteKeepsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.registerAthlete(t, "ana@x.com")

	f.store.failKey = repository.KeyAccounts
	_, err := f.auth.UpdatePhoto(ctx, a, pngHeader)
	require.Error(t, err)
	assert.False(t, IsValidation(err))

	current, _ := f.auth.Current()
	assert.Empty(t, current.Photo)
	stored, err := f.repos.Accounts.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Empty(t, stored.Photo)
}
