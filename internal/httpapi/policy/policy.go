// Package policy is the single capability table for the whole API.
// Handlers and services ask Can before any mutating or restricted-read
// operation instead of scattering role checks per endpoint.
package policy

import "reviewhub/internal/httpapi/models"

type Role string

const (
	Anonymous Role = "anonymous"
	User      Role = "user"
	Moderator Role = "moderator"
	Admin     Role = "admin"
)

// RoleOf maps a stored user role onto a policy role. A nil actor is
// anonymous; an unknown role string gets no capabilities beyond it.
func RoleOf(actor *models.User) Role {
	if actor == nil {
		return Anonymous
	}
	switch actor.Role {
	case models.RoleAdmin:
		return Admin
	case models.RoleModerator:
		return Moderator
	case models.RoleUser:
		return User
	}
	return Anonymous
}

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceCatalog  Resource = "catalog"
	ResourceReview   Resource = "review"
	ResourceComment  Resource = "comment"
	ResourceUserSelf Resource = "user_self"
	ResourceUserAny  Resource = "user_any"
)

// Can decides whether role may perform action on resource. The owner
// flag carries the ownership relation for reviews and comments and is
// computed from the author reference stored at creation time.
func Can(role Role, action Action, resource Resource, owner bool) bool {
	switch resource {
	case ResourceCatalog:
		if action == ActionRead {
			return true
		}
		return role == Admin

	case ResourceReview, ResourceComment:
		switch action {
		case ActionRead:
			return true
		case ActionCreate:
			return role != Anonymous
		case ActionUpdate, ActionDelete:
			// moderators override ownership; plain users only touch
			// what they authored
			switch role {
			case Admin, Moderator:
				return true
			case User:
				return owner
			}
			return false
		}
		return false

	case ResourceUserSelf:
		switch action {
		case ActionRead, ActionUpdate:
			return role != Anonymous
		}
		// self-deletion is never allowed, admin or not
		return false

	case ResourceUserAny:
		return role == Admin
	}
	return false
}
