package domain

// Role type to distinguish between account roles
type Role string

// Define constants for roles
const (
	RoleAthlete Role = "ATHLETE"
	RoleCoach   Role = "COACH"
)

// Account represents a registered user (either an Athlete or a Coach).
// Email and SerialNumber are unique across all accounts and never change after creation.
type Account struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName,omitempty"` // Coach only
	// Plaintext, as entered at registration.
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Cref     string `json:"cref,omitempty"`  // Coach license id
	Photo    string `json:"photo,omitempty"` // Opaque handle produced by a storage.PhotoEncoder
	// SerialNumber is the pairing code coaches use to link athletes, e.g. "#A1B2C3".
	SerialNumber string `json:"serialNumber"`
}

func (a *Account) IsCoach() bool {
	return a.Role == RoleCoach
}

func (a *Account) IsAthlete() bool {
	return a.Role == RoleAthlete
}

// DisplayName joins name and last name when the latter is present.
func (a *Account) DisplayName() string {
	if a.LastName == "" {
		return a.Name
	}
	return a.Name + " " + a.LastName
}
