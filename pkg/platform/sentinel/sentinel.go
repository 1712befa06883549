package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store (group, user, room, tree)
// - ErrConflict: write lost to a concurrent conflicting write
// - ErrAlreadyExists: conditional create found the key already present
// - ErrUnavailable: backing service temporarily unreachable
//
// For evidence rejections and validation, use pkg/domain-errors directly.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnavailable   = errors.New("unavailable")
)
