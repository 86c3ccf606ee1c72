// Copyright (c) 2026 RateUp. All rights reserved.

/*
Package authz is the single authorization policy of the API.

[Decide] is a pure function over a caller and an action descriptor. It
performs no I/O and holds no state, so handlers, services and middleware
all share the same decision rules:

 1. The action requires authentication and the caller is anonymous: UNAUTHENTICATED.
 2. The action requires a role the caller does not hold: FORBIDDEN.
 3. The action targets a resource owned by someone else and the caller is not ADMIN: FORBIDDEN.
 4. Otherwise the action is allowed.

An action that declares an owner or a required role implies rule 1.
*/
package authz

import (
	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/sec"
)

// # Actions

// Kind names an action for logging and error messages.
type Kind string

const (
	KindReviewCreate   Kind = "review.create"
	KindReviewUpdate   Kind = "review.update"
	KindReviewDelete   Kind = "review.delete"
	KindCommentCreate  Kind = "comment.create"
	KindCommentUpdate  Kind = "comment.update"
	KindCommentDelete  Kind = "comment.delete"
	KindVoteCast       Kind = "vote.cast"
	KindVoteRetract    Kind = "vote.retract"
	KindGameManage     Kind = "game.manage"
	KindUserManage     Kind = "user.manage"
	KindUserUpdate     Kind = "user.update"
	KindUserPrivileges Kind = "user.privileges"
	KindProfileRead    Kind = "profile.read"
	KindRouteAccess    Kind = "route.access"
)

// Action describes what a caller is attempting.
type Action struct {
	Kind Kind

	// Authenticated requires a non-anonymous caller.
	Authenticated bool

	// OwnerID, when set, restricts the action to the owner or an administrator.
	OwnerID *int64

	// RequiredRole, when set, must be held by the caller.
	RequiredRole sec.Role
}

// Authenticated builds an action that only requires a known caller.
func Authenticated(kind Kind) Action {
	return Action{Kind: kind, Authenticated: true}
}

// OwnedBy builds an action on a resource owned by ownerID (owner-or-admin rule).
func OwnedBy(kind Kind, ownerID int64) Action {
	return Action{Kind: kind, OwnerID: &ownerID}
}

// Role builds an action restricted to holders of role.
func Role(kind Kind, role sec.Role) Action {
	return Action{Kind: kind, RequiredRole: role}
}

func (action Action) requiresAuthentication() bool {
	return action.Authenticated || action.OwnerID != nil || action.RequiredRole != ""
}

// # Decisions

// Reason explains a denial.
type Reason string

const (
	ReasonUnauthenticated Reason = "UNAUTHENTICATED"
	ReasonForbidden       Reason = "FORBIDDEN"
)

// Decision is the outcome of [Decide].
type Decision struct {
	Allowed bool
	Reason  Reason
	Kind    Kind
}

// allow and deny build decisions for kind.
func allow(kind Kind) Decision { return Decision{Allowed: true, Kind: kind} }

func deny(kind Kind, reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason, Kind: kind}
}

// Err converts a denial into an [apperr.AppError]. It returns nil when allowed.
func (decision Decision) Err() error {
	switch {
	case decision.Allowed:
		return nil
	case decision.Reason == ReasonUnauthenticated:
		return apperr.Unauthenticated("Authentication required")
	default:
		return apperr.Forbidden("You are not allowed to perform this action")
	}
}

// Decide evaluates action for subject. A nil subject is an anonymous caller.
func Decide(subject *sec.Subject, action Action) Decision {
	if subject == nil {
		if action.requiresAuthentication() {
			return deny(action.Kind, ReasonUnauthenticated)
		}
		return allow(action.Kind)
	}

	if action.RequiredRole != "" && !subject.HasRole(action.RequiredRole) {
		return deny(action.Kind, ReasonForbidden)
	}

	if action.OwnerID != nil && subject.ID != *action.OwnerID && !subject.HasRole(sec.RoleAdmin) {
		return deny(action.Kind, ReasonForbidden)
	}

	return allow(action.Kind)
}

// Check is shorthand for Decide(subject, action).Err().
func Check(subject *sec.Subject, action Action) error {
	return Decide(subject, action).Err()
}
