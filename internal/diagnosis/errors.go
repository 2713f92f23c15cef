package diagnosis

import "errors"

var (
	// ErrRepositoryUnavailable reports that rule or damage data could not be
	// read. The diagnosis is abandoned; callers decide whether to retry.
	ErrRepositoryUnavailable = errors.New("diagnosis: repository unavailable")

	// ErrDataIntegrity reports stored rule data that cannot be evaluated:
	// an empty requirement set, a symptom link that no longer resolves, or a
	// winning rule whose damage does not exist.
	ErrDataIntegrity = errors.New("diagnosis: data integrity violation")

	// ErrDamageNotFound is returned (possibly wrapped) by a DamageSource when
	// the requested damage does not exist.
	ErrDamageNotFound = errors.New("diagnosis: damage not found")
)
