package search

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// verdict is the evaluator's view of one candidate version's tree.
type verdict struct {
	Success bool
	Message string
	Details []string
}

// evaluate applies the requirement mode to the occurrences found in one
// candidate's tree. The mode is determined by (removed, childMin present):
//
//   - min-version: every occurrence must be at or above childMin, and the
//     target must be present.
//   - removed: the target must be absent.
//   - removed-or-min-version: a logical OR of the two; an empty occurrence
//     set short-circuits to success regardless of the threshold.
//
// Both the threshold and every occurrence version go through partial-version
// normalization before comparison. The caller validates that childMin parses
// and that at least one condition is specified.
func evaluate(target string, occurrences []Occurrence, childMin string, removed bool) verdict {
	if removed {
		if len(occurrences) == 0 {
			return verdict{
				Success: true,
				Message: fmt.Sprintf("%s is absent from the dependency tree", target),
			}
		}
		if childMin != "" {
			return evaluateMinVersion(target, occurrences, childMin, true)
		}
		return verdict{
			Success: false,
			Message: fmt.Sprintf("%s is still present in the dependency tree", target),
			Details: occurrenceLines(occurrences),
		}
	}

	if len(occurrences) == 0 {
		return verdict{
			Success: false,
			Message: fmt.Sprintf("%s was not found in the dependency tree", target),
		}
	}
	return evaluateMinVersion(target, occurrences, childMin, false)
}

func evaluateMinVersion(target string, occurrences []Occurrence, childMin string, removalAllowed bool) verdict {
	min, err := parseVersion(childMin)
	if err != nil {
		// Validation rejects unparsable thresholds before traversal begins.
		return verdict{
			Success: false,
			Message: fmt.Sprintf("invalid minimum version %q", childMin),
		}
	}

	var failing []Occurrence
	for _, occ := range occurrences {
		if !meetsMinimum(occ, min) {
			failing = append(failing, occ)
		}
	}

	if len(failing) > 0 {
		msg := fmt.Sprintf("%d of %d occurrences of %s are below %s", len(failing), len(occurrences), target, childMin)
		if removalAllowed {
			msg = fmt.Sprintf("%s is still present and %s", target, msg)
		}
		return verdict{
			Success: false,
			Message: msg,
			Details: occurrenceLines(failing),
		}
	}

	return verdict{
		Success: true,
		Message: fmt.Sprintf("all %d occurrences of %s satisfy >= %s", len(occurrences), target, childMin),
		Details: occurrenceLines(occurrences),
	}
}

// meetsMinimum reports whether an occurrence's normalized version is at or
// above the threshold. Versions that fail to parse never satisfy.
func meetsMinimum(occ Occurrence, min *semver.Version) bool {
	v, err := parseVersion(occ.Version)
	if err != nil {
		return false
	}
	return !v.LessThan(min)
}

func occurrenceLines(occurrences []Occurrence) []string {
	lines := make([]string, len(occurrences))
	for i, occ := range occurrences {
		lines[i] = occ.Path
	}
	return lines
}
