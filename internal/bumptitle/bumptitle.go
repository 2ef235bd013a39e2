// Package bumptitle extracts a single dependency change from a pull request
// title such as "chore(deps): bump fastify from 3.18.0 to 4.0.0" and from the
// head branch the bot pushed it on.
//
// Grammar: the rightmost "from <token> to <token>" wins, keywords are
// case-insensitive and delimited by whitespace, a token is a run of
// non-whitespace characters with surrounding backticks removed. The token
// before the chosen "from" is the package name the title mentions.
package bumptitle

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

const (
	headsPrefix      = "refs/heads/"
	dependabotPrefix = "dependabot/"
	expectedTitle    = "bump <package> from <old-version> to <new-version>"
	expectedBranch   = "dependabot/<ecosystem>/<package>-<version>"
)

var (
	// ErrNotBumpTitle is returned when the title holds no "from ... to ..." pair.
	ErrNotBumpTitle = errors.New("pull request title is not a version bump")
	// ErrNoPackageName is returned when neither the branch nor the title names a package.
	ErrNoPackageName = errors.New("package name could not be determined")

	fromToPattern = regexp.MustCompile(`(?i)(?:^|\s)from\s+(\S+)\s+to\s+(\S+)`)
)

// Bump is the outcome of parsing a title.
type Bump struct {
	Package string // token preceding "from", may be empty
	From    string
	To      string
}

// ParseTitle applies the title grammar.
func ParseTitle(title string) (Bump, error) {
	matches := fromToPattern.FindAllStringSubmatchIndex(title, -1)
	if len(matches) == 0 {
		return Bump{}, fmt.Errorf(
			"%w: %q does not match the expected shape %q",
			ErrNotBumpTitle, title, expectedTitle,
		)
	}

	last := matches[len(matches)-1]
	bump := Bump{
		From: cleanToken(title[last[2]:last[3]]),
		To:   cleanToken(title[last[4]:last[5]]),
	}

	preceding := strings.Fields(title[:last[0]])
	if len(preceding) > 0 {
		candidate := cleanToken(preceding[len(preceding)-1])
		if !strings.EqualFold(candidate, "bump") {
			bump.Package = candidate
		}
	}

	return bump, nil
}

// ExtractChangeFromTitle returns the change a title describes, naming the
// package after the token that precedes "from".
func ExtractChangeFromTitle(title string) (entities.Change, error) {
	bump, err := ParseTitle(title)
	if err != nil {
		return entities.Change{}, err
	}
	if bump.Package == "" {
		return entities.Change{}, fmt.Errorf(
			"%w: %q does not match the expected shape %q",
			ErrNoPackageName, title, expectedTitle,
		)
	}
	return entities.Change{Package: bump.Package, From: bump.From, To: bump.To}, nil
}

// ExtractChange combines the title versions with the package name derived from
// the head branch, falling back to the name the title mentions.
func ExtractChange(title, headRef string) (entities.Change, error) {
	bump, err := ParseTitle(title)
	if err != nil {
		return entities.Change{}, err
	}

	name, _, branchErr := PackageFromBranch(headRef)
	if branchErr != nil {
		name = bump.Package
	}
	if name == "" {
		return entities.Change{}, fmt.Errorf(
			"%w: branch %q does not match %q and title %q does not match %q",
			ErrNoPackageName, headRef, expectedBranch, title, expectedTitle,
		)
	}

	return entities.Change{Package: name, From: bump.From, To: bump.To}, nil
}

// PackageFromBranch splits a bot branch name into package and version.
// "dependabot/npm_and_yarn/pkg-0.0.1" gives ("pkg", "0.0.1") and
// "dependabot/github_actions/fastify/some-pkg-2.6.0" gives ("fastify/some-pkg", "2.6.0").
// The version is cut at the leftmost "-" followed by a valid version; when
// there is none, the last "-" segment is dropped.
func PackageFromBranch(ref string) (string, string, error) {
	rest := strings.TrimPrefix(strings.TrimSpace(ref), headsPrefix)
	if strings.HasPrefix(rest, dependabotPrefix) {
		segments := strings.Split(rest, "/")
		if len(segments) >= 3 { //nolint:mnd // dependabot/<ecosystem>/<rest>
			rest = strings.Join(segments[2:], "/")
		}
	}

	name, version := splitVersion(rest)
	if name == "" || version == "" {
		return "", "", fmt.Errorf(
			"%w: branch %q does not match %q",
			ErrNoPackageName, ref, expectedBranch,
		)
	}
	return name, version, nil
}

func splitVersion(nameWithVersion string) (string, string) {
	for i := 0; i < len(nameWithVersion); i++ {
		if nameWithVersion[i] != '-' {
			continue
		}
		suffix := nameWithVersion[i+1:]
		if isVersionLike(suffix) {
			return nameWithVersion[:i], suffix
		}
	}

	idx := strings.LastIndex(nameWithVersion, "-")
	if idx < 0 {
		return "", ""
	}
	return nameWithVersion[:idx], nameWithVersion[idx+1:]
}

func isVersionLike(suffix string) bool {
	if suffix == "" {
		return false
	}
	if !strings.HasPrefix(suffix, "v") {
		suffix = "v" + suffix
	}
	return semver.IsValid(suffix)
}

func cleanToken(token string) string {
	return strings.Trim(token, "`'\"")
}
