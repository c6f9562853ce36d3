package auth

import "github.com/OscarDom1/community-resource-platform/internal/common"

// AuthorizeMutation allows a mutation only when the session user owns the
// record. It returns common.ErrOwnershipDenied otherwise, including for an
// empty owner id, so a missing record reads the same as a foreign one.
//
// Repositories repeat the same check inside the mutating statement
// (WHERE id = ? AND owner_id = ?); this function covers the callers that
// compare against an id they already hold.
func AuthorizeMutation(s Session, ownerID string) error {
	if s.UserID == "" || ownerID == "" || s.UserID != ownerID {
		return common.ErrOwnershipDenied
	}
	return nil
}
