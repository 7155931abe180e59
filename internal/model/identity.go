package model

// Class is the identity class a view requires.
type Class string

const (
	// ClassParent is an authenticated guardian.
	ClassParent Class = "parent"
	// ClassStudent is a child logged in with a join code.
	ClassStudent Class = "student"
)

// Persisted state keys. Each is independently present or absent;
// absence of all three means logged out.
const (
	KeyToken   = "token"
	KeyUser    = "user"
	KeyStudent = "student"
)

// ParentUser is a guardian account authenticated by a bearer token.
type ParentUser struct {
	ID         int64  `json:"id"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsParent   bool   `json:"is_parent"`
	DateJoined string `json:"date_joined,omitempty"`
}

// Student is a child profile logged in through a join code. It carries no token.
type Student struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Level     string `json:"level"`
	XP        int    `json:"xp"`
	Streak    int    `json:"streak"`
	JoinCode  string `json:"join_code"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Credentials are what authenticated backend calls carry.
type Credentials struct {
	Token string
	User  *ParentUser
}

// ParentLogin is the backend response to a successful parent login.
type ParentLogin struct {
	Token string     `json:"token"`
	User  ParentUser `json:"user"`
}

// StudentLogin is the backend response to a successful join-code exchange.
type StudentLogin struct {
	Student Student `json:"student"`
}

// SignupRequest holds the parent signup form.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Message is a plain acknowledgement returned by the backend.
type Message struct {
	Message string `json:"message"`
}
