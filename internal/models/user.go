package models

// Role is the authorization role of a user
type Role string

// Role constants
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// AuthMethod describes how a user authenticates
type AuthMethod string

// AuthMethod constants
const (
	AuthMethodLocal  AuthMethod = "local"
	AuthMethodGoogle AuthMethod = "google"
)

// User represents a user in the system
type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	PasswordHash string     `json:"-"` // Never serialize password hash
	AuthMethod   AuthMethod `json:"authMethod"`
	Role         Role       `json:"role"`
	Picture      string     `json:"picture,omitempty"`
	// ReportedBy is the set of user IDs that reported this user,
	// populated on profile reads
	ReportedBy []int `json:"reportedBy,omitempty"`
}

// SignupRequest represents a signup request
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest represents a federated login request with
// provider-supplied profile fields
type GoogleAuthRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Picture   string `json:"picture"`
}

// AuthResult is returned by login and google login
type AuthResult struct {
	Token   string `json:"token"`
	Role    Role   `json:"role"`
	Message string `json:"message"`
}
