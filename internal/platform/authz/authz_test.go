// Copyright (c) 2026 RateUp. All rights reserved.

package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/sec"
)

func subjectWith(id int64, roles ...sec.Role) *sec.Subject {
	return &sec.Subject{ID: id, Email: "caller@x.com", Roles: roles}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		subject *sec.Subject
		action  Action
		allowed bool
		reason  Reason
	}{
		{"owner may act", subjectWith(3, sec.RoleUser), OwnedBy(KindReviewDelete, 3), true, ""},
		{"non owner is forbidden", subjectWith(3, sec.RoleUser), OwnedBy(KindReviewDelete, 4), false, ReasonForbidden},
		{"admin overrides ownership", subjectWith(3, sec.RoleAdmin), OwnedBy(KindReviewDelete, 4), true, ""},
		{"anonymous on owned resource", nil, OwnedBy(KindCommentUpdate, 4), false, ReasonUnauthenticated},
		{"anonymous on authenticated action", nil, Authenticated(KindVoteCast), false, ReasonUnauthenticated},
		{"anonymous on role action", nil, Role(KindGameManage, sec.RoleAdmin), false, ReasonUnauthenticated},
		{"anonymous on public action", nil, Action{Kind: KindProfileRead}, true, ""},
		{"user on authenticated action", subjectWith(1, sec.RoleUser), Authenticated(KindVoteCast), true, ""},
		{"missing required role", subjectWith(1, sec.RoleUser), Role(KindGameManage, sec.RoleAdmin), false, ReasonForbidden},
		{"holding required role", subjectWith(1, sec.RoleUser, sec.RoleAdmin), Role(KindGameManage, sec.RoleAdmin), true, ""},
		{
			"required role checked before ownership",
			subjectWith(5, sec.RoleUser),
			Action{Kind: KindUserPrivileges, OwnerID: ptr(5), RequiredRole: sec.RoleAdmin},
			false, ReasonForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.subject, tt.action)

			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
			assert.Equal(t, tt.action.Kind, decision.Kind)
		})
	}
}

func TestDecision_Err(t *testing.T) {
	assert.NoError(t, Check(subjectWith(1, sec.RoleUser), OwnedBy(KindReviewUpdate, 1)))

	err := Check(nil, Authenticated(KindReviewCreate))
	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))

	err = Check(subjectWith(1, sec.RoleUser), OwnedBy(KindReviewUpdate, 2))
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))
}

func ptr(v int64) *int64 { return &v }
