package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTarget is returned when a target ceiling name is not recognized.
var ErrInvalidTarget = errors.New("invalid target")

// Magnitude is the semantic-versioning category of a change between two versions.
// Values from Prerelease to Any form the fixed order used for every ceiling comparison.
type Magnitude int

const (
	// Incomparable marks a pair that cannot be semver-classified (e.g. commit hashes).
	Incomparable Magnitude = iota - 1
	// Unchanged marks two versions that are equal after normalization.
	Unchanged
	Prerelease
	Prepatch
	Patch
	Preminor
	Minor
	Premajor
	Major
	// Any is only meaningful as a target ceiling and permits every change.
	Any
)

//nolint:gochecknoglobals // lookup table
var magnitudeNames = map[Magnitude]string{
	Incomparable: "incomparable",
	Unchanged:    "unchanged",
	Prerelease:   "prerelease",
	Prepatch:     "prepatch",
	Patch:        "patch",
	Preminor:     "preminor",
	Minor:        "minor",
	Premajor:     "premajor",
	Major:        "major",
	Any:          "any",
}

// TargetNames lists the accepted target ceilings from most to least restrictive.
func TargetNames() []string {
	names := make([]string, 0, Any-Prerelease+1)
	for m := Prerelease; m <= Any; m++ {
		names = append(names, m.String())
	}
	return names
}

// ParseTarget converts a configured target name into a ceiling.
// Only the values from "prerelease" to "any" are accepted.
func ParseTarget(name string) (Magnitude, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for m := Prerelease; m <= Any; m++ {
		if magnitudeNames[m] == normalized {
			return m, nil
		}
	}
	return Incomparable, fmt.Errorf(
		"%w %q: expected one of %s",
		ErrInvalidTarget, name, strings.Join(TargetNames(), ", "),
	)
}

func (m Magnitude) String() string {
	if name, ok := magnitudeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("magnitude(%d)", int(m))
}

// Within reports whether a change of this magnitude is permitted under the ceiling.
func (m Magnitude) Within(ceiling Magnitude) bool {
	if m == Incomparable || m == Unchanged || ceiling == Any {
		return true
	}
	return m <= ceiling
}
