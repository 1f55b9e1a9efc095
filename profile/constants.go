package profile

// Components that may be matched by profile criteria.
const (
	ComponentName     = "name"
	ComponentPath     = "path"
	ComponentPlatform = "platform"
)

// Comparison types for matching profile criteria.
const (
	ComparisonExact      = "exact"
	ComparisonIgnoreCase = "ignorecase"
	ComparisonRegex      = "regex"
)
