package core

import (
	"fmt"
	"strings"
)

// A Language is one of the languages a project can be synced for.
// Languages are single bits so a set of them fits in a LanguageSet.
type Language uint8

// Languages that targets can be classified into.
const (
	Java Language = 1 << iota
	Kotlin
	CC
	Android
	Proto
)

var languageNames = []struct {
	Language Language
	Name     string
}{
	{Java, "java"},
	{Kotlin, "kotlin"},
	{CC, "cc"},
	{Android, "android"},
	{Proto, "proto"},
}

// String implements fmt.Stringer
func (l Language) String() string {
	for _, ln := range languageNames {
		if ln.Language == l {
			return ln.Name
		}
	}
	return fmt.Sprintf("Language(%d)", uint8(l))
}

// ParseLanguage parses a language name (case-insensitive).
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "c++" || s == "cpp" {
		s = "cc"
	}
	for _, ln := range languageNames {
		if ln.Name == s {
			return ln.Language, nil
		}
	}
	return 0, fmt.Errorf("unknown language %q", s)
}

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (l *Language) UnmarshalFlag(value string) error {
	lang, err := ParseLanguage(value)
	if err != nil {
		return err
	}
	*l = lang
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface, which gcfg uses.
func (l *Language) UnmarshalText(text []byte) error {
	return l.UnmarshalFlag(string(text))
}

// A LanguageSet is a set of Languages.
type LanguageSet uint8

// NewLanguageSet returns a set containing the given languages.
func NewLanguageSet(langs ...Language) LanguageSet {
	var s LanguageSet
	for _, l := range langs {
		s |= LanguageSet(l)
	}
	return s
}

// Has returns true if the set contains the given language.
func (s LanguageSet) Has(l Language) bool {
	return s&LanguageSet(l) != 0
}

// Intersects returns true if the two sets have any language in common.
func (s LanguageSet) Intersects(that LanguageSet) bool {
	return s&that != 0
}

// Empty returns true if the set has no languages.
func (s LanguageSet) Empty() bool {
	return s == 0
}

// Languages returns the members of the set in a stable order.
func (s LanguageSet) Languages() []Language {
	var ret []Language
	for _, ln := range languageNames {
		if s.Has(ln.Language) {
			ret = append(ret, ln.Language)
		}
	}
	return ret
}

// String implements fmt.Stringer
func (s LanguageSet) String() string {
	langs := s.Languages()
	strs := make([]string, len(langs))
	for i, l := range langs {
		strs[i] = l.String()
	}
	return strings.Join(strs, ",")
}

// defaultKindLanguages maps rule kinds (or kind prefixes ending in _) onto languages.
// Exact kinds are checked before prefixes.
var defaultKindLanguages = map[string]LanguageSet{
	"android_library":              NewLanguageSet(Java, Android),
	"android_binary":               NewLanguageSet(Java, Android),
	"android_local_test":           NewLanguageSet(Java, Android),
	"android_instrumentation_test": NewLanguageSet(Java, Android),
	"kt_android_library":           NewLanguageSet(Kotlin, Java, Android),
	"kt_android_local_test":        NewLanguageSet(Kotlin, Java, Android),
	"proto_library":                NewLanguageSet(Proto),
	"java_proto_library":           NewLanguageSet(Java, Proto),
	"java_lite_proto_library":      NewLanguageSet(Java, Proto),
	"cc_proto_library":             NewLanguageSet(CC, Proto),
	"java_":                        NewLanguageSet(Java),
	"kt_jvm_":                      NewLanguageSet(Kotlin, Java),
	"cc_":                          NewLanguageSet(CC),
}

var defaultKindPrefixes = []string{"java_", "kt_jvm_", "cc_"}

// DefaultLanguagesForKind returns the built-in language classification of a rule kind.
// Unknown kinds have no languages.
func DefaultLanguagesForKind(kind string) LanguageSet {
	if langs, present := defaultKindLanguages[kind]; present {
		return langs
	}
	for _, prefix := range defaultKindPrefixes {
		if strings.HasPrefix(kind, prefix) {
			return defaultKindLanguages[prefix]
		}
	}
	return 0
}
