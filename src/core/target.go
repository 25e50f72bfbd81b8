package core

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// A ProjectTarget is the per-target record handed on to whatever materialises the project model.
type ProjectTarget struct {
	Label     Label
	Kind      string
	Languages LanguageSet
	// Tags are sorted and unique.
	Tags []string
	// Sources are the labels of the source files the target declares.
	Sources []Label
	// Deps are the direct dependencies of the target, as declared.
	Deps []Label
}

// HasTag returns true if the target has the given tag.
func (target *ProjectTarget) HasTag(tag string) bool {
	_, found := slices.BinarySearch(target.Tags, tag)
	return found
}

// String implements fmt.Stringer
func (target *ProjectTarget) String() string {
	return target.Kind + " rule " + target.Label.String()
}

// A DependencyTrackingBehavior describes what has to be built before a target's
// project information can be considered complete.
type DependencyTrackingBehavior uint8

// Tracking behaviours. These combine as a bitmask.
const (
	// TrackSelf means the target's own outputs must be built.
	TrackSelf DependencyTrackingBehavior = 1 << iota
	// TrackExternalDependencies means the external dependencies in its closure must be built.
	TrackExternalDependencies
)

// Has returns true if b contains every behaviour in that.
func (b DependencyTrackingBehavior) Has(that DependencyTrackingBehavior) bool {
	return b&that == that
}

func (b DependencyTrackingBehavior) String() string {
	var parts []string
	if b.Has(TrackSelf) {
		parts = append(parts, "self")
	}
	if b.Has(TrackExternalDependencies) {
		parts = append(parts, "external_dependencies")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// A SourceType classifies source files. Like languages they are bits so a file can carry several.
type SourceType uint16

// Source file types.
const (
	JavaSource SourceType = 1 << iota
	KotlinSource
	AndroidManifest
	AndroidResource
	AidlSource
	ProtoSource
	CcSource
	CcHeader
	BuildFile
)

var sourceTypeNames = map[string]SourceType{
	"java":     JavaSource,
	"kotlin":   KotlinSource,
	"manifest": AndroidManifest,
	"resource": AndroidResource,
	"aidl":     AidlSource,
	"proto":    ProtoSource,
	"cc":       CcSource,
	"header":   CcHeader,
	"build":    BuildFile,
	// Composite types used for filtering.
	"jvm":     JavaSource | KotlinSource,
	"android": AndroidManifest | AndroidResource | AidlSource,
	"cpp":     CcSource | CcHeader,
}

// Has returns true if t has any of the types in that.
func (t SourceType) Has(that SourceType) bool {
	return t&that != 0
}

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (t *SourceType) UnmarshalFlag(value string) error {
	st, present := sourceTypeNames[strings.ToLower(value)]
	if !present {
		return fmt.Errorf("unknown source type %s", value)
	}
	*t = st
	return nil
}

var extensionTypes = map[string]SourceType{
	".java":  JavaSource,
	".kt":    KotlinSource,
	".aidl":  AidlSource,
	".proto": ProtoSource,
	".c":     CcSource,
	".cc":    CcSource,
	".cpp":   CcSource,
	".cxx":   CcSource,
	".h":     CcHeader,
	".hh":    CcHeader,
	".hpp":   CcHeader,
}

// ClassifySource returns the type of a source file given its workspace-relative path.
// buildFileNames is the set of file names that denote BUILD files. Unrecognised files have type 0.
func ClassifySource(filename string, buildFileNames []string) SourceType {
	base := path.Base(filename)
	if slices.Contains(buildFileNames, base) {
		return BuildFile
	} else if base == "AndroidManifest.xml" {
		return AndroidManifest
	} else if strings.HasPrefix(filename, "res/") || strings.Contains(filename, "/res/") {
		return AndroidResource
	}
	return extensionTypes[path.Ext(base)]
}
