package core

import (
	"slices"
	"strings"
)

// A PatternSet contains a series of labels and label patterns and supports efficiently checking for membership.
// It accepts individual labels, :all patterns and /... patterns.
// The zero value is not safe for use; once populated it is safe for concurrent reads.
type PatternSet struct {
	targets  map[Label]struct{}
	packages map[packageKey]struct{}
	subtrees []packageKey
}

type packageKey struct {
	Workspace, Package string
}

func (label Label) packageKey() packageKey {
	return packageKey{Workspace: label.Workspace, Package: label.Package}
}

// NewPatternSet returns a new PatternSet containing the given labels.
func NewPatternSet(labels ...Label) *PatternSet {
	ps := &PatternSet{
		targets:  map[Label]struct{}{},
		packages: map[packageKey]struct{}{},
	}
	for _, l := range labels {
		ps.Add(l)
	}
	return ps
}

// Add adds a new label or pattern to this set.
func (ps *PatternSet) Add(label Label) {
	if label.IsAllSubpackages() {
		ps.subtrees = append(ps.subtrees, label.packageKey())
	} else if label.IsAllTargets() {
		ps.packages[label.packageKey()] = struct{}{}
	} else {
		ps.targets[label] = struct{}{}
	}
}

// Match checks if this label is covered by the set (either explicitly, via :all or via /...)
func (ps *PatternSet) Match(label Label) bool {
	if _, present := ps.targets[label]; present {
		return true
	} else if _, present := ps.packages[label.packageKey()]; present {
		return true
	}
	for _, key := range ps.subtrees {
		if (Label{Workspace: key.Workspace, Package: key.Package, Name: "..."}).Includes(label) {
			return true
		}
	}
	return false
}

// MatchExact checks if this label was explicitly added to the set (i.e. patterns don't count)
func (ps *PatternSet) MatchExact(label Label) bool {
	_, present := ps.targets[label]
	return present
}

// Empty returns true if nothing has been added to this set.
func (ps *PatternSet) Empty() bool {
	return len(ps.targets) == 0 && len(ps.packages) == 0 && len(ps.subtrees) == 0
}

// Patterns returns a sorted copy of everything in the set.
func (ps *PatternSet) Patterns() []Label {
	ret := make([]Label, 0, len(ps.targets)+len(ps.packages)+len(ps.subtrees))
	for target := range ps.targets {
		ret = append(ret, target)
	}
	for pkg := range ps.packages {
		ret = append(ret, Label{Workspace: pkg.Workspace, Package: pkg.Package, Name: "all"})
	}
	for _, key := range ps.subtrees {
		ret = append(ret, Label{Workspace: key.Workspace, Package: key.Package, Name: "..."})
	}
	slices.SortFunc(ret, Label.Compare)
	return slices.CompactFunc(ret, func(a, b Label) bool { return a == b })
}

// String implements fmt.Stringer.
func (ps *PatternSet) String() string {
	return strings.Join(Labels(ps.Patterns()).Strings(), " ")
}
