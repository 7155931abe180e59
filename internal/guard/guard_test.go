package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/session"
)

func TestDecide(t *testing.T) {
	parent := &model.ParentUser{ID: 1, Email: "p@example.com", IsParent: true}
	nonParent := &model.ParentUser{ID: 2, Email: "u@example.com"}
	student := &model.Student{ID: 3, Name: "Tom", JoinCode: "ABC123"}

	tests := []struct {
		name     string
		required model.Class
		state    session.State
		want     Decision
	}{
		{
			name:     "loading parent view",
			required: model.ClassParent,
			state:    session.State{Loading: true},
			want:     Decision{Kind: Pending},
		},
		{
			name:     "loading wins over held identity",
			required: model.ClassStudent,
			state:    session.State{Loading: true, Student: student},
			want:     Decision{Kind: Pending},
		},
		{
			name:     "anonymous parent view",
			required: model.ClassParent,
			state:    session.State{},
			want:     Decision{Kind: Redirect, Target: RouteLanding},
		},
		{
			name:     "anonymous student view",
			required: model.ClassStudent,
			state:    session.State{},
			want:     Decision{Kind: Redirect, Target: RouteLanding},
		},
		{
			name:     "parent on parent view",
			required: model.ClassParent,
			state:    session.State{User: parent},
			want:     Decision{Kind: Allow},
		},
		{
			name:     "student on student view",
			required: model.ClassStudent,
			state:    session.State{Student: student},
			want:     Decision{Kind: Allow},
		},
		{
			name:     "student on parent view",
			required: model.ClassParent,
			state:    session.State{Student: student},
			want:     Decision{Kind: Redirect, Target: RouteStudentDashboard},
		},
		{
			name:     "parent on student view",
			required: model.ClassStudent,
			state:    session.State{User: parent},
			want:     Decision{Kind: Redirect, Target: RouteParentDashboard},
		},
		{
			name:     "dual identity on parent view",
			required: model.ClassParent,
			state:    session.State{User: parent, Student: student},
			want:     Decision{Kind: Allow},
		},
		{
			name:     "dual identity on student view",
			required: model.ClassStudent,
			state:    session.State{User: parent, Student: student},
			want:     Decision{Kind: Allow},
		},
		{
			name:     "non-parent user on parent view",
			required: model.ClassParent,
			state:    session.State{User: nonParent},
			want:     Decision{Kind: Redirect, Target: RouteLanding},
		},
		{
			name:     "non-parent user on student view",
			required: model.ClassStudent,
			state:    session.State{User: nonParent},
			want:     Decision{Kind: Redirect, Target: RouteLanding},
		},
		{
			name:     "non-parent user with student on parent view",
			required: model.ClassParent,
			state:    session.State{User: nonParent, Student: student},
			want:     Decision{Kind: Redirect, Target: RouteStudentDashboard},
		},
		{
			name:     "unknown class denies parent",
			required: model.Class("admin"),
			state:    session.State{User: parent},
			want:     Decision{Kind: Redirect, Target: RouteParentDashboard},
		},
		{
			name:     "unknown class denies student",
			required: model.Class("admin"),
			state:    session.State{Student: student},
			want:     Decision{Kind: Redirect, Target: RouteStudentDashboard},
		},
		{
			name:     "unknown class anonymous",
			required: model.Class(""),
			state:    session.State{},
			want:     Decision{Kind: Redirect, Target: RouteLanding},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.required, tt.state))
		})
	}
}

func TestDecide_NoRedirectLoops(t *testing.T) {
	parent := &model.ParentUser{ID: 1, IsParent: true}
	nonParent := &model.ParentUser{ID: 2}
	student := &model.Student{ID: 3}

	states := []session.State{
		{},
		{User: parent},
		{User: nonParent},
		{Student: student},
		{User: parent, Student: student},
		{User: nonParent, Student: student},
	}
	classFor := map[string]model.Class{
		RouteParentDashboard:  model.ClassParent,
		RouteStudentDashboard: model.ClassStudent,
	}

	for _, st := range states {
		for _, required := range []model.Class{model.ClassParent, model.ClassStudent} {
			d := Decide(required, st)
			if d.Kind != Redirect {
				continue
			}
			next, guarded := classFor[d.Target]
			if !guarded {
				continue
			}
			assert.Equal(t, Allow, Decide(next, st).Kind,
				"redirect from %s to %s must land on an allowed view", required, d.Target)
		}
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
