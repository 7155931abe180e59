package session

import "github.com/dtroode/tutordash-web/internal/model"

// State is an immutable snapshot of a Store. Flags are derived on every call.
type State struct {
	User    *model.ParentUser
	Student *model.Student
	Loading bool
}

// IsAuthenticated reports whether either identity is present.
func (s State) IsAuthenticated() bool {
	return s.User != nil || s.Student != nil
}

// IsParent reports whether a parent user with the parent flag is present.
func (s State) IsParent() bool {
	return s.User != nil && s.User.IsParent
}

// IsStudent reports whether a student is logged in.
func (s State) IsStudent() bool {
	return s.Student != nil
}
