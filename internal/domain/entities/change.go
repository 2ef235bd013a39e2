package entities

import "sort"

// Change is a single dependency version transition found in a pull request.
// An empty From means the dependency was added, an empty To means it was removed.
type Change struct {
	Package string
	From    string
	To      string
}

// IsPartial returns true when one side of the change is missing.
func (c Change) IsPartial() bool {
	return c.From == "" || c.To == ""
}

// ChangeSet maps a package name to its version transition.
type ChangeSet map[string]Change

// NewChangeSet builds a set out of the given changes, the last one winning on duplicates.
func NewChangeSet(changes ...Change) ChangeSet {
	set := make(ChangeSet, len(changes))
	for _, change := range changes {
		set[change.Package] = change
	}
	return set
}

// Names returns the package names sorted alphabetically.
func (s ChangeSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
