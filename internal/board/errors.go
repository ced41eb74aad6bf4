package board

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a referenced confession does not exist.
var ErrNotFound = errors.New("confession not found")

// ErrPublish indicates the channel rejected the confession post. The
// confession itself is stored; it just has no public post (orphaned).
var ErrPublish = errors.New("channel publish failed")

// RejectKind enumerates submission validation failures.
type RejectKind string

const (
	// RejectCooldown means the per-user cooldown is still active.
	RejectCooldown RejectKind = "cooldown"
	// RejectEmpty means the text was empty after trimming.
	RejectEmpty RejectKind = "empty"
	// RejectProfanity means the text matched the blocklist.
	RejectProfanity RejectKind = "profanity"
)

// Rejection is a user-visible validation failure. It is an expected outcome,
// not an operational error, and is never logged at error level.
type Rejection struct {
	Kind RejectKind
	// RetryAfter carries whole seconds remaining for cooldown rejections.
	RetryAfter int
}

func (r *Rejection) Error() string {
	if r.Kind == RejectCooldown {
		return fmt.Sprintf("rejected: cooldown, retry in %ds", r.RetryAfter)
	}
	return "rejected: " + string(r.Kind)
}

// AsRejection extracts a *Rejection from err if present.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
