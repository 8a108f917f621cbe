package edm

import "errors"

// ErrNotFound is wrapped by lookup failures: a schema name or alias with no
// matching schema, or an entity type name absent from its schema.
var ErrNotFound = errors.New("not found")

// ErrConstraint is wrapped by violations of EDM structural rules, such as
// declaring a key on a derived type or a self-referential navigation
// property. Callers match it with errors.Is.
var ErrConstraint = errors.New("constraint violation")
