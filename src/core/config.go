// Utilities for reading the qsync config files.

package core

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/please-build/gcfg"

	"github.com/JetBrains/android-sub097/src/cli"
)

// ConfigFileName is the file name for the typical repo config - this is normally checked in
const ConfigFileName string = ".qsyncconfig"

// LocalConfigFileName is the file name for the local repo config - this is not normally checked in and used to
// override settings on the local machine.
const LocalConfigFileName string = ".qsyncconfig.local"

// A Configuration contains all the settings that define the project being synced.
type Configuration struct {
	Project struct {
		Include        []Label    `help:"Label patterns that define the project. Targets matching these (and not Exclude) are project targets; everything else is external. If empty, everything in the main workspace is included."`
		Exclude        []Label    `help:"Label patterns to exclude from the project."`
		Language       []Language `help:"Languages to sync. Project targets with none of these languages are not supported."`
		BuildFileName  []string   `help:"Names of BUILD files. Defaults to BUILD and BUILD.bazel."`
		ProjectDepKind []string   `help:"Rule kinds whose outputs cross a code generation boundary, so must be built and treated as external dependencies (e.g. java_aidl_library)."`
	}
	Tracking struct {
		SelfKind []string `help:"Rule kinds whose own outputs are always tracked as pending until built."`
	}
	Kind map[string]*struct {
		Language []Language `help:"Languages of this rule kind. Overrides the built-in classification."`
	}
	Metrics struct {
		PushGatewayURL cli.URL      `help:"URL of a Prometheus pushgateway to push metrics to."`
		PushTimeout    cli.Duration `help:"Timeout when pushing metrics."`
	}

	include, exclude *PatternSet
	enabledLanguages LanguageSet
}

func readConfigFile(config *Configuration, filename string) error {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil // It's not an error to not have the file at all.
	} else if err := gcfg.ReadFileInto(config, filename); err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	log.Debug("Read config from %s", filename)
	return nil
}

// ReadConfigFiles reads config files from the given locations, in order.
// Values are filled in by defaults initially and then overridden by each file in turn.
func ReadConfigFiles(filenames []string) (*Configuration, error) {
	config := newConfiguration()
	for _, filename := range filenames {
		if err := readConfigFile(config, filename); err != nil {
			config.setDefaults()
			config.Finalise()
			return config, err
		}
	}
	config.setDefaults()
	for kind, k := range config.Kind {
		if k == nil || len(k.Language) == 0 {
			return config, fmt.Errorf("kind %s must specify at least one language", kind)
		}
	}
	config.Finalise()
	return config, nil
}

// ReadDefaultConfigFiles reads the repo and local config files found in the given directory.
func ReadDefaultConfigFiles(repoRoot string) (*Configuration, error) {
	return ReadConfigFiles([]string{
		repoRoot + "/" + ConfigFileName,
		repoRoot + "/" + LocalConfigFileName,
	})
}

// setDefault sets a slice in the config if the set one is empty.
func setDefault[T any](conf *[]T, def []T) {
	if len(*conf) == 0 {
		*conf = def
	}
}

// setDefaults sets default values for slices. These add rather than overwriting when the
// config files are read so we can't set them upfront as we would with other config values.
func (config *Configuration) setDefaults() {
	setDefault(&config.Project.Language, []Language{Java, Kotlin, Android, CC, Proto})
	setDefault(&config.Project.BuildFileName, []string{"BUILD", "BUILD.bazel"})
	setDefault(&config.Project.ProjectDepKind, []string{"java_aidl_library", "aidl_library"})
}

func newConfiguration() *Configuration {
	config := &Configuration{}
	config.Metrics.PushTimeout = cli.Duration(2 * time.Second)
	return config
}

// DefaultConfiguration returns the default configuration.
// The result has already been finalised and is ready to use.
func DefaultConfiguration() *Configuration {
	config := newConfiguration()
	config.setDefaults()
	config.Finalise()
	return config
}

// Finalise computes the derived state of the config. It must be called again after any field is changed.
func (config *Configuration) Finalise() {
	config.include = NewPatternSet(config.Project.Include...)
	config.exclude = NewPatternSet(config.Project.Exclude...)
	config.enabledLanguages = NewLanguageSet(config.Project.Language...)
}

// IsProjectTarget returns true if the given label is inside the project boundary.
func (config *Configuration) IsProjectTarget(label Label) bool {
	if config.exclude.Match(label) {
		return false
	} else if config.include.Empty() {
		return label.InMainWorkspace()
	}
	return config.include.Match(label)
}

// LanguagesForKind returns the languages of a rule kind, taking any [kind] sections into account.
func (config *Configuration) LanguagesForKind(kind string) LanguageSet {
	if k, present := config.Kind[kind]; present && k != nil {
		return NewLanguageSet(k.Language...)
	}
	return DefaultLanguagesForKind(kind)
}

// EnabledLanguages returns the set of languages being synced.
func (config *Configuration) EnabledLanguages() LanguageSet {
	return config.enabledLanguages
}

// IsProjectDepKind returns true if targets of this kind populate the project deps.
func (config *Configuration) IsProjectDepKind(kind string) bool {
	return slices.Contains(config.Project.ProjectDepKind, kind)
}

// IsSelfTrackedKind returns true if targets of this kind are always tracked with TrackSelf.
func (config *Configuration) IsSelfTrackedKind(kind string) bool {
	return slices.Contains(config.Tracking.SelfKind, kind)
}

// IsBuildFile returns true if the given file name is one of the configured BUILD file names.
func (config *Configuration) IsBuildFile(filename string) bool {
	return slices.Contains(config.Project.BuildFileName, filename)
}

// String returns a short human-readable summary of the project boundary.
func (config *Configuration) String() string {
	var sb strings.Builder
	sb.WriteString("include=[")
	sb.WriteString(config.include.String())
	sb.WriteString("] exclude=[")
	sb.WriteString(config.exclude.String())
	sb.WriteString("] languages=[")
	sb.WriteString(config.enabledLanguages.String())
	sb.WriteString("]")
	return sb.String()
}
