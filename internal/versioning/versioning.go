// Package versioning classifies the semantic-version distance between two
// version tokens as they appear in dependency manifests and pull request titles.
package versioning

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

var (
	commitHashPattern = regexp.MustCompile(`(?i)^[a-f0-9]{5,40}$`)
	numericRunPattern = regexp.MustCompile(`(\d+)(?:\.(\d+))?(?:\.(\d+))?`)
)

// ClassifyVersionChange returns the magnitude of the change from one version to
// another. Pairs that cannot be compared (two commit hashes, garbage) are
// entities.Incomparable and never cause an error.
func ClassifyVersionChange(from, to string) entities.Magnitude {
	from, to = clean(from), clean(to)

	// checked before coercion so "aa93350" is not read as 93350.0.0
	if IsPinPair(from, to) {
		return entities.Incomparable
	}

	fromVer, fromErr := Parse(from)
	toVer, toErr := Parse(to)
	if fromErr != nil || toErr != nil {
		return entities.Incomparable
	}

	return Diff(fromVer, toVer)
}

// Diff returns the magnitude between two parsed versions. Either side carrying a
// prerelease promotes the result to its pre-* variant.
func Diff(from, to *semver.Version) entities.Magnitude {
	if from.Equal(to) {
		return entities.Unchanged
	}

	hasPre := from.Prerelease() != "" || to.Prerelease() != ""
	switch {
	case from.Major() != to.Major():
		return pick(hasPre, entities.Premajor, entities.Major)
	case from.Minor() != to.Minor():
		return pick(hasPre, entities.Preminor, entities.Minor)
	case from.Patch() != to.Patch():
		return pick(hasPre, entities.Prepatch, entities.Patch)
	default:
		return entities.Prerelease
	}
}

// Parse normalizes a loosely formatted version: range operators and a "v"
// prefix are stripped, a strict parse is attempted, and failing that the first
// numeric run is coerced into X.Y.Z.
func Parse(token string) (*semver.Version, error) {
	normalized := strings.TrimLeft(clean(token), "^~=vV")
	if normalized == "" {
		return nil, fmt.Errorf("empty version %q", token)
	}

	if version, err := semver.StrictNewVersion(normalized); err == nil {
		return version, nil
	}

	return coerce(token)
}

// IsPinPair reports whether both tokens are commit-hash pins. A single
// hash-shaped token is not a pin: it is coerced like any other version.
func IsPinPair(from, to string) bool {
	return commitHashPattern.MatchString(clean(from)) && commitHashPattern.MatchString(clean(to))
}

func coerce(token string) (*semver.Version, error) {
	match := numericRunPattern.FindStringSubmatch(token)
	if match == nil {
		return nil, fmt.Errorf("version %q cannot be coerced", token)
	}

	parts := []string{match[1], "0", "0"}
	for i := 2; i <= 3; i++ {
		if match[i] != "" {
			parts[i-1] = match[i]
		}
	}

	version, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, fmt.Errorf("version %q cannot be coerced: %w", token, err)
	}
	return version, nil
}

func clean(token string) string {
	return strings.Trim(strings.TrimSpace(token), "`'\"")
}

func pick(hasPre bool, pre, plain entities.Magnitude) entities.Magnitude {
	if hasPre {
		return pre
	}
	return plain
}
