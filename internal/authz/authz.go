package authz

import "social-service/internal/shared/apperr"

type Op int

const (
	Read Op = iota
	Write
)

// Authorize is the per-object ownership rule: reads are open to anyone,
// writes only to the recorded owner. Evaluated after the target is loaded
// and before any mutation.
func Authorize(op Op, callerID, ownerID string) error {
	if op == Read {
		return nil
	}
	if callerID == "" {
		return apperr.ErrUnauthorized
	}
	if callerID != ownerID {
		return apperr.Forbidden("not the owner")
	}
	return nil
}
