package secondary

import "errors"

// ErrNotFound is returned by repositories when a requested row does not
// exist. Callers that need to branch on absence (e.g. default-template
// provisioning) test with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write loses to a concurrent one: a second
// default template hitting the uniqueness constraint, or a guarded status
// update matching zero rows. The caller re-reads and decides.
var ErrConflict = errors.New("conflicting concurrent write")
