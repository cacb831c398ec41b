package repository

import (
	"time"

	"github.com/google/uuid"
)

// newID returns a fresh row identifier.  Ids are generated here rather
// than by the database so inserts stay portable across drivers.
func newID() string { return uuid.NewString() }

// stamp returns t, or the current UTC time when t is zero.
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
