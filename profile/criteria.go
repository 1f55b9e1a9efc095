package profile

import (
	"regexp"
	"strings"
)

// Criteria describes a set of conditions for a profile to be applied.
type Criteria []Criterion

// Match returns true if all of the criteria match the provided process
// name, path and platform.
func (c Criteria) Match(name, path, platform string) bool {
	if len(c) == 0 {
		return false
	}
	for _, criterion := range c {
		if !criterion.Match(name, path, platform) {
			return false
		}
	}
	return true
}

// Criterion describes a single condition required for a profile to
// match.
type Criterion struct {
	Component  string `json:"component"`  // The operand of the comparison
	Comparison string `json:"comparison"` // The operator of the comparison
	Value      string `json:"value"`      // The value for comparison

	// TODO: cache compiled regular expressions?
}

// Match returns true if the given process is a match.
func (c *Criterion) Match(name, path, platform string) bool {
	var value string

	switch c.Component {
	case ComponentName:
		value = name
	case ComponentPath:
		value = path
	case ComponentPlatform:
		value = platform
	default:
		return false
	}

	switch c.Comparison {
	case ComparisonExact:
		return c.Value == value
	case ComparisonIgnoreCase:
		return strings.EqualFold(c.Value, value)
	case ComparisonRegex:
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return false
		}
		return re.MatchString(value)
	default:
		return false
	}
}
