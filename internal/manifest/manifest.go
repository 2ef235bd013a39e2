// Package manifest recovers dependency version changes from the unified diff of
// a dependency manifest such as package.json.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/rios0rios0/automerge/internal/domain/entities"
)

const (
	devNull     = "/dev/null"
	removedMark = '-'
	addedMark   = '+'
)

// ErrNoManifestChanges is returned when the diff does not touch the manifest at
// all, which tells the caller to fall back to the pull request title.
var ErrNoManifestChanges = errors.New("no manifest changes found in diff")

// entryPattern matches `"name": "version"` and `name: "version"` lines.
var entryPattern = regexp.MustCompile(`^\s*"?([^"\s:]+)"?\s*:\s*"([^"\s]+)"`)

// ExtractChangesFromDiff parses a multi-file unified diff and returns the
// dependency changes found in the hunks of manifestPath. Other files are
// ignored; lines that are not `"name": "version"` entries are skipped.
func ExtractChangesFromDiff(diffText, manifestPath string) (entities.ChangeSet, error) {
	files, err := diff.ParseMultiFileDiff([]byte(strings.TrimLeft(diffText, " \t\r\n")))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	target := cleanPath(manifestPath)
	found := false
	changes := entities.ChangeSet{}

	for _, file := range files {
		if filePath(file) != target {
			continue
		}
		found = true

		for _, hunk := range file.Hunks {
			collectHunk(changes, hunk.Body)
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNoManifestChanges, target)
	}
	return changes, nil
}

// collectHunk records removed lines as the "from" side and added lines as the
// "to" side of each matching entry. Context lines are ignored.
func collectHunk(changes entities.ChangeSet, body []byte) {
	for _, line := range bytes.Split(body, []byte("\n")) {
		if len(line) == 0 {
			continue
		}

		mark := line[0]
		if mark != removedMark && mark != addedMark {
			continue
		}

		match := entryPattern.FindSubmatch(line[1:])
		if match == nil {
			continue
		}

		name, version := string(match[1]), string(match[2])
		change := changes[name]
		change.Package = name
		if mark == removedMark {
			change.From = version
		} else {
			change.To = version
		}
		changes[name] = change
	}
}

// filePath returns the repository-relative path a file diff applies to. A
// deleted file is identified by its original path.
func filePath(file *diff.FileDiff) string {
	name := file.NewName
	if name == devNull || name == "" {
		name = file.OrigName
	}
	return cleanPath(stripPrefix(name))
}

func stripPrefix(name string) string {
	for _, prefix := range []string{"a/", "b/"} {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimPrefix(name, prefix)
		}
	}
	return name
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
