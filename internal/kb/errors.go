package kb

import "errors"

// Error taxonomy from the error-handling design: each sentinel names a
// condition, not a Go type. Wrap with fmt.Errorf("...: %w", ErrX) to attach
// context; callers test with errors.Is.
var (
	// ErrConfigMissing: a required file is absent or an option is unset.
	ErrConfigMissing = errors.New("configuration missing")
	// ErrConfigInvalid: unknown mode, non-numeric value, or negative where
	// a non-negative number is required.
	ErrConfigInvalid = errors.New("configuration invalid")
	// ErrAlphabetMalformed: wrong leading characters, duplicate code
	// points, or an overlong language file.
	ErrAlphabetMalformed = errors.New("alphabet malformed")
	// ErrLayoutMalformed: wrong dimensions or an unknown code point in a
	// layout file.
	ErrLayoutMalformed = errors.New("layout malformed")
	// ErrWeightMalformed: an unparseable weight-file line.
	ErrWeightMalformed = errors.New("weight malformed")
	// ErrMetaDependencyUnresolved: a meta statistic references an unknown
	// statistic name. Fatal at registry-construction time.
	ErrMetaDependencyUnresolved = errors.New("meta statistic dependency unresolved")
	// ErrDuplicateStatName: two statistics registered under the same name.
	ErrDuplicateStatName = errors.New("duplicate statistic name")
	// ErrOptimizerInvariantViolated: a pinned position's occupant changed.
	// Indicates a bug in the optimizer, never a user-input problem.
	ErrOptimizerInvariantViolated = errors.New("optimizer invariant violated: pinned position mutated")
)
