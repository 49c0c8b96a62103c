package service

import (
	"errors"
)

// --- Error Definitions ---
// Validation outcomes. Every operation failing with one of these leaves state unchanged.
var (
	ErrMissingField           = errors.New("missing required field")
	ErrWeakPassword           = errors.New("password is too weak")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrDuplicateEmail         = errors.New("email is already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrStudentNotFound        = errors.New("no account has this serial number")
	ErrDuplicateStudent       = errors.New("student is already on the roster")
	ErrMissingDataOrEmptyList = errors.New("athlete is missing or the draft is empty")
	ErrInvalidDate            = errors.New("date must be YYYY-MM-DD")

	ErrCoachRequired          = errors.New("operation requires a coach account")
	ErrUnknownStyle           = errors.New("unknown training style")
	ErrPendingActionNotFound  = errors.New("no pending action for this token")
	ErrGuidedExerciseNotFound = errors.New("guided exercise not found")
)

type failure struct {
	kind    string
	message string
}

var failures = []struct {
	err error
	failure
}{
	{ErrMissingField, failure{"MissingField", "Preencha todos os campos."}},
	{ErrWeakPassword, failure{"WeakPassword", "A senha deve ser forte: mínimo 8 caracteres, maiúsculas, minúsculas, números e símbolos."}},
	{ErrPasswordMismatch, failure{"PasswordMismatch", "As senhas não coincidem."}},
	{ErrDuplicateEmail, failure{"DuplicateEmail", "Este e-mail já está cadastrado."}},
	{ErrInvalidCredentials, failure{"InvalidCredentials", "E-mail ou senha incorretos."}},
	{ErrStudentNotFound, failure{"StudentNotFound", "Aluno não encontrado com este número de série."}},
	{ErrDuplicateStudent, failure{"DuplicateStudent", "Este aluno já está cadastrado."}},
	{ErrMissingDataOrEmptyList, failure{"MissingDataOrEmptyList", "Preencha todos os dados e adicione pelo menos um exercício."}},
	{ErrInvalidDate, failure{"InvalidDate", "Data inválida. Use o formato AAAA-MM-DD."}},
	{ErrCoachRequired, failure{"CoachRequired", "Apenas treinadores podem realizar esta ação."}},
	{ErrUnknownStyle, failure{"UnknownStyle", "Estilo de treino desconhecido."}},
	{ErrPendingActionNotFound, failure{"PendingActionNotFound", "Nenhuma ação pendente para confirmar."}},
	{ErrGuidedExerciseNotFound, failure{"GuidedExerciseNotFound", "Exercício não encontrado."}},
}

// Roster validation has its own wording for blank fields.
const rosterMissingFieldMessage = "Preencha o nome e o número de série."

var unexpected = failure{"Internal", "Ocorreu um erro inesperado. Tente novamente."}

func lookup(err error) (failure, bool) {
	for _, f := range failures {
		if errors.Is(err, f.err) {
			return f.failure, true
		}
	}
	return unexpected, false
}

// Kind names the failure kind of err, "" for nil and "Internal" for anything that is
// not a validation outcome.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	f, _ := lookup(err)
	return f.kind
}

// Message is the text shown to the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *rosterError
	if errors.As(err, &re) && errors.Is(re.err, ErrMissingField) {
		return rosterMissingFieldMessage
	}
	f, _ := lookup(err)
	return f.message
}

// IsValidation reports whether err is one of the validation outcomes above.
func IsValidation(err error) bool {
	_, ok := lookup(err)
	return ok
}

// rosterError marks failures raised while linking an athlete to a roster.
type rosterError struct {
	err error
}

func (e *rosterError) Error() string { return e.err.Error() }

func (e *rosterError) Unwrap() error { return e.err }
