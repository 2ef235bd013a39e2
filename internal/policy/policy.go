// Package policy decides whether a set of dependency changes may be merged
// automatically under a target ceiling.
package policy

import (
	"fmt"
	"path"
	"strings"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/versioning"
)

// Rules is the configuration a change set is evaluated against.
type Rules struct {
	Target   entities.Magnitude
	Exclude  []string
	SelfName string // identifier of this tool, guarded against major upgrades
	Strict   bool   // deny partial changes and unparseable versions
}

// Evaluate classifies every change and returns the verdict. The exclude list
// is checked before any classification; afterwards the first change (in
// package name order) that is not permitted vetoes the whole set.
func Evaluate(changes entities.ChangeSet, rules Rules) entities.Verdict {
	names := changes.Names()

	for _, name := range names {
		if matchesAny(name, rules.Exclude) {
			return entities.Deny(
				entities.ReasonPackageExcluded, name, entities.Unchanged,
				fmt.Sprintf("%s is excluded", name),
			)
		}
	}

	evaluations := make([]entities.Evaluation, 0, len(names))
	for _, name := range names {
		change := changes[name]

		if change.IsPartial() {
			if rules.Strict {
				return entities.Deny(
					entities.ReasonInvalidVersion, name, entities.Incomparable,
					fmt.Sprintf("%s is missing a version (from: %q, to: %q)", name, change.From, change.To),
				)
			}
			evaluations = append(evaluations, entities.Evaluation{Change: change, Magnitude: entities.Incomparable})
			continue
		}

		magnitude := versioning.ClassifyVersionChange(change.From, change.To)
		evaluations = append(evaluations, entities.Evaluation{Change: change, Magnitude: magnitude})

		if verdict, denied := check(change, magnitude, rules); denied {
			verdict.Evaluations = evaluations
			return verdict
		}
	}

	return entities.Allow(evaluations)
}

func check(change entities.Change, magnitude entities.Magnitude, rules Rules) (entities.Verdict, bool) {
	name := change.Package

	if magnitude == entities.Incomparable {
		if rules.Strict && !versioning.IsPinPair(change.From, change.To) {
			return entities.Deny(
				entities.ReasonInvalidVersion, name, magnitude,
				fmt.Sprintf("%s contains invalid semver versions from: %s to: %s", name, change.From, change.To),
			), true
		}
		return entities.Verdict{}, false
	}

	if rules.SelfName != "" && matches(name, rules.SelfName) && magnitude == entities.Major {
		return entities.Deny(
			entities.ReasonCannotAutoupgradeMajor, name, magnitude,
			fmt.Sprintf("cannot automerge %s %s major release", name, change.To),
		), true
	}

	if !magnitude.Within(rules.Target) {
		return entities.Deny(
			entities.ReasonBumpExceedsTarget, name, magnitude,
			fmt.Sprintf("%s %s bump exceeds target %s", name, magnitude, rules.Target),
		), true
	}

	return entities.Verdict{}, false
}

func matchesAny(name string, candidates []string) bool {
	for _, candidate := range candidates {
		if matches(name, candidate) {
			return true
		}
	}
	return false
}

// matches compares a package name against a configured identifier, either in
// full or by its last path segment ("fastify/some-pkg" matches "some-pkg").
func matches(name, candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	return name == candidate || path.Base(name) == candidate
}
