// Package authz decides whether an authenticated caller may mutate an owned
// resource. The rule is admin-or-owner; everything else is denied.
package authz

import (
	"shop-catalog-api/internal/model"
)

// Authorize allows the mutation when the caller holds the admin role or is
// the resource owner. Denial is model.ErrForbidden, never a not-found: the
// caller has already confirmed the resource exists before this check runs.
func Authorize(subjectID string, roles []string, ownerID string) error {
	for _, role := range roles {
		if role == model.RoleAdmin {
			return nil
		}
	}

	if subjectID != "" && subjectID == ownerID {
		return nil
	}

	return model.ErrForbidden
}

// AuthorizeClaims is a convenience wrapper for handlers holding parsed claims.
func AuthorizeClaims(claims *model.AuthClaims, ownerID string) error {
	if claims == nil {
		return model.ErrUnauthorized
	}
	return Authorize(claims.UserID, claims.Roles, ownerID)
}
