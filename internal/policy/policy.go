// Package policy holds the role predicates gating each operation.
package policy

import (
	"bizcard-service/internal/apperror"
	"bizcard-service/internal/model"
)

// Ownable is implemented by resources that belong to a user.
type Ownable interface {
	OwnerID() string
}

// IsSelf reports whether u is the user identified by id.
func IsSelf(u *model.User, id string) bool {
	return u != nil && id != "" && u.ID == id
}

// IsBusiness reports whether u may publish cards.
func IsBusiness(u *model.User) bool {
	return u != nil && u.IsBusiness
}

// IsAdmin reports whether u is an administrator.
func IsAdmin(u *model.User) bool {
	return u != nil && u.IsAdmin
}

// IsOwner reports whether u owns r. A nil resource is owned by nobody.
func IsOwner(u *model.User, r Ownable) bool {
	return u != nil && r != nil && r.OwnerID() == u.ID
}

// CanEditCard allows the owning business user only. Admins get no bypass.
func CanEditCard(u *model.User, r Ownable) bool {
	return IsBusiness(u) && IsOwner(u, r)
}

// CanDeleteCard allows a business user who owns the card or is an admin.
func CanDeleteCard(u *model.User, r Ownable) bool {
	return IsBusiness(u) && (IsOwner(u, r) || IsAdmin(u))
}

// SelfOrAdmin allows a user to act on their own record, and admins on any.
func SelfOrAdmin(u *model.User, id string) bool {
	return IsSelf(u, id) || IsAdmin(u)
}

// Require turns a failed predicate into a 403 with msg.
func Require(ok bool, msg string) error {
	if ok {
		return nil
	}
	return apperror.Forbidden(msg)
}
