package core

import (
	"fmt"
	"path"
	"strings"

	"github.com/peterebden/go-deferred-regex"
	"gopkg.in/op/go-logging.v1"

	"github.com/JetBrains/android-sub097/src/cmap"
)

var log = logging.MustGetLogger("core")

// A Label identifies a source file or a build target, eg. @maven//com/google:guava
// corresponds to Label{Workspace: "maven", Package: "com/google", Name: "guava"}.
// Labels are always absolute; relative forms like :guava are resolved against a package when parsed.
// There is also implicit expansion of the final element of a package, so //spam/eggs is
// equivalent to //spam/eggs:eggs.
//
// Two labels are equal iff their canonical strings are equal, so Labels can be used directly as map keys.
// Source file labels may have slashes in their names (//java/com/foo:sub/Bar.java).
type Label struct {
	// Workspace is the external workspace the label belongs to, without the leading @.
	// It is empty for the main workspace.
	Workspace string
	Package   string
	Name      string
}

// This is a little strict; doesn't allow for non-ascii names, for example.
const workspacePart = `[A-Za-z0-9\._\+~-]+`
const packagePart = `[A-Za-z0-9\._\+~$=,-]+`
const packageName = "(" + packagePart + "(?:/" + packagePart + ")*)"
const targetName = `([^:/\s\\][^:\s\\]*)`
// @// on its own refers to the main workspace.
const workspacePrefix = "(?:@(" + workspacePart + ")?)?"

// Fully specified labels, e.g. //java/com/foo:foo or @maven//:guava
var absoluteLabel = deferredregex.DeferredRegex{Re: fmt.Sprintf("^%s//(?:%s)?:%s$", workspacePrefix, packageName, targetName)}

// Labels in the local package, e.g. :foo
var localLabel = deferredregex.DeferredRegex{Re: fmt.Sprintf("^:%s$", targetName)}

// Labels with an implicit target name, e.g. //java/com/foo (expands to //java/com/foo:foo)
var implicitLabel = deferredregex.DeferredRegex{Re: fmt.Sprintf("^%s//(?:%s/)?(%s)$", workspacePrefix, packageName, packagePart)}

// All targets underneath a package, e.g. //java/com/...
var subpackagesLabel = deferredregex.DeferredRegex{Re: fmt.Sprintf("^%s//%s/(\\.\\.\\.)$", workspacePrefix, packageName)}

// Everything in a workspace; //...
var rootSubpackagesLabel = deferredregex.DeferredRegex{Re: fmt.Sprintf("^%s//(\\.\\.\\.)$", workspacePrefix)}

// A bare workspace name, e.g. @maven (expands to @maven//:maven)
var workspaceOnlyLabel = deferredregex.DeferredRegex{Re: fmt.Sprintf("^@(%s)$", workspacePart)}

// Package and target names only, used for validation.
var packageNameOnly = deferredregex.DeferredRegex{Re: fmt.Sprintf("^%s?$", packageName)}
var targetNameOnly = deferredregex.DeferredRegex{Re: fmt.Sprintf("^%s$", targetName)}
var workspaceNameOnly = deferredregex.DeferredRegex{Re: fmt.Sprintf("^(?:%s)?$", workspacePart)}

// String returns the canonical form of the label. The target name is always explicit.
func (label Label) String() string {
	prefix := "//"
	if label.Workspace != "" {
		prefix = "@" + label.Workspace + "//"
	}
	if label.IsAllSubpackages() {
		if label.Package == "" {
			return prefix + "..."
		}
		return prefix + label.Package + "/..."
	}
	return prefix + label.Package + ":" + label.Name
}

// NewLabel constructs a new label in the main workspace from the given components. Panics on failure.
func NewLabel(pkgName, name string) Label {
	label, err := TryNewLabel("", pkgName, name)
	if err != nil {
		panic(err)
	}
	return label
}

// TryNewLabel constructs a new label from the given components.
func TryNewLabel(workspace, pkgName, name string) (Label, error) {
	if !workspaceNameOnly.MatchString(workspace) {
		return Label{}, fmt.Errorf("invalid workspace name: %s", workspace)
	} else if !packageNameOnly.MatchString(pkgName) {
		return Label{}, fmt.Errorf("invalid package name: %s", pkgName)
	} else if !targetNameOnly.MatchString(name) {
		return Label{}, fmt.Errorf("invalid target name: %s", name)
	}
	return Label{Workspace: workspace, Package: pkgName, Name: name}, nil
}

// ParseLabel parses a single label from a string. Panics on failure.
func ParseLabel(target, currentPackage string) Label {
	label, err := TryParseLabel(target, currentPackage)
	if err != nil {
		panic(err)
	}
	return label
}

// TryParseLabel attempts to parse a single label from a string. Returns an error if unsuccessful.
// Local labels (:foo) are resolved against currentPackage.
func TryParseLabel(target, currentPackage string) (Label, error) {
	if matches := absoluteLabel.FindStringSubmatch(target); matches != nil {
		return Label{Workspace: matches[1], Package: matches[2], Name: matches[3]}, nil
	}
	if matches := localLabel.FindStringSubmatch(target); matches != nil {
		return TryNewLabel("", currentPackage, matches[1])
	}
	if matches := subpackagesLabel.FindStringSubmatch(target); matches != nil {
		return Label{Workspace: matches[1], Package: matches[2], Name: matches[3]}, nil
	}
	if matches := rootSubpackagesLabel.FindStringSubmatch(target); matches != nil {
		return Label{Workspace: matches[1], Name: matches[2]}, nil
	}
	if matches := implicitLabel.FindStringSubmatch(target); matches != nil {
		if matches[2] != "" {
			return Label{Workspace: matches[1], Package: matches[2] + "/" + matches[3], Name: matches[3]}, nil
		}
		return Label{Workspace: matches[1], Package: matches[3], Name: matches[3]}, nil
	}
	if matches := workspaceOnlyLabel.FindStringSubmatch(target); matches != nil {
		return Label{Workspace: matches[1], Name: matches[1]}, nil
	}
	return Label{}, fmt.Errorf("invalid label: %s", target)
}

// LooksLikeALabel returns true if the string appears to be a label, false if not.
// Useful for cases like rule sources where sources can be a filename or a label.
func LooksLikeALabel(str string) bool {
	return strings.HasPrefix(str, "//") || strings.HasPrefix(str, ":") || strings.HasPrefix(str, "@")
}

// Sibling returns a label in the same package with a different target name.
func (label Label) Sibling(name string) Label {
	label.Name = name
	return label
}

// PackageLabel returns the label of the package's default target (//java/com/foo:foo).
// For the root package of a workspace it returns the label itself.
func (label Label) PackageLabel() Label {
	if label.Package == "" {
		return label
	}
	return label.Sibling(path.Base(label.Package))
}

// Path returns the workspace-relative path this label would have as a source file.
func (label Label) Path() string {
	return path.Join(label.Package, label.Name)
}

// PackageDir returns a path to the directory this label is in.
func (label Label) PackageDir() string {
	if label.Package == "" {
		return "."
	}
	return label.Package
}

// InMainWorkspace returns true if the label isn't in an external workspace.
func (label Label) InMainWorkspace() bool {
	return label.Workspace == ""
}

// IsAllSubpackages returns true if the label ends in ..., ie. it includes all subpackages.
func (label Label) IsAllSubpackages() bool {
	return label.Name == "..."
}

// IsAllTargets returns true if the label is the pseudo-label referring to all targets in this package.
func (label Label) IsAllTargets() bool {
	return label.Name == "all"
}

// IsPattern returns true if the label is a pattern rather than an individual label.
func (label Label) IsPattern() bool {
	return label.IsAllSubpackages() || label.IsAllTargets()
}

// Includes returns true if label includes the other label (//pkg:target1 is included by //pkg:all etc).
func (label Label) Includes(that Label) bool {
	if label.Workspace != that.Workspace {
		return false
	}
	if label.IsAllSubpackages() {
		return label.Package == "" || that.Package == label.Package || strings.HasPrefix(that.Package, label.Package+"/")
	}
	return label.Package == that.Package && (label.Name == that.Name || label.IsAllTargets())
}

// Compare orders labels by workspace, then package, then name.
func (label Label) Compare(that Label) int {
	if c := strings.Compare(label.Workspace, that.Workspace); c != 0 {
		return c
	} else if c := strings.Compare(label.Package, that.Package); c != 0 {
		return c
	}
	return strings.Compare(label.Name, that.Name)
}

// Less returns true if this label sorts before the other.
func (label Label) Less(that Label) bool {
	return label.Compare(that) < 0
}

// UnmarshalFlag unmarshals a label from a command line flag. Implementation of flags.Unmarshaler interface.
// Relative forms (:foo) are resolved against the root package.
func (label *Label) UnmarshalFlag(value string) error {
	l, err := TryParseLabel(value, "")
	if err != nil {
		return err
	}
	*label = l
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (label *Label) UnmarshalText(text []byte) error {
	return label.UnmarshalFlag(string(text))
}

// MarshalText implements the encoding.TextMarshaler interface.
func (label Label) MarshalText() ([]byte, error) {
	return []byte(label.String()), nil
}

// HashLabel hashes a label for use in a cmap.Map.
func HashLabel(label Label) uint64 {
	return cmap.XXHashes(label.Workspace, label.Package, label.Name)
}

// Labels makes slices of labels sortable.
type Labels []Label

func (slice Labels) Len() int {
	return len(slice)
}
func (slice Labels) Less(i, j int) bool {
	return slice[i].Less(slice[j])
}
func (slice Labels) Swap(i, j int) {
	slice[i], slice[j] = slice[j], slice[i]
}

// Strings returns the canonical strings of all the labels, in order.
func (slice Labels) Strings() []string {
	ret := make([]string, len(slice))
	for i, l := range slice {
		ret[i] = l.String()
	}
	return ret
}
