package facts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JetBrains/android-sub097/src/core"
)

func l(s string) core.Label {
	return core.ParseLabel(s, "")
}

func TestLoadJSON(t *testing.T) {
	s, err := LoadJSON("testdata/summary.json")
	require.NoError(t, err)
	require.Equal(t, 4, len(s.Targets))
	assert.Equal(t, l("//java/com/app:app"), s.Targets[0].Label)
	assert.Equal(t, "android_binary", s.Targets[0].Kind)
	assert.Equal(t, []core.Label{l("//java/com/app:MainActivity.java"), l("//java/com/app:AndroidManifest.xml")}, s.Targets[0].Sources)
	assert.Equal(t, []core.Label{l("//java/com/app:lib")}, s.Targets[0].Deps)

	assert.Equal(t, l("//java/com/app:lib"), s.Targets[1].Label)
	assert.Equal(t, []core.Label{l("//java/com/util:util"), l("@maven//:guava")}, s.Targets[1].Deps)
	assert.Equal(t, []string{"manual"}, s.Targets[1].Tags)

	assert.Equal(t, l("//java/com/util:util"), s.Targets[2].Label)
	assert.Equal(t, []core.Label{l("//java/com/util:Util.java"), l("//java/com/util:sub/Helper.java")}, s.Targets[2].Sources)

	// Local labels in other workspaces stay in that workspace.
	assert.Equal(t, l("@maven//:guava"), s.Targets[3].Label)
	assert.Equal(t, []core.Label{l("@maven//:failureaccess")}, s.Targets[3].Deps)

	assert.Equal(t, 6, len(s.SourceFiles))
	assert.Contains(t, s.SourceFiles, l("//java/com/util:sub/Helper.java"))
	assert.NoError(t, s.Validate())
}

func TestLoadJSONMissingFile(t *testing.T) {
	_, err := LoadJSON("testdata/doesnotexist.json")
	assert.Error(t, err)
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"packages": `))
	assert.Error(t, err)
}

func TestReadJSONBadLabels(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(`{"packages": {"pkg": {"targets": {
		"a": {"kind": "java_library", "deps": ["//bad:label:here", ":b"]},
		"b": {"kind": "java_library", "srcs": ["::nope"]}
	}}}}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	// Whatever could be read is still returned.
	require.Equal(t, 2, len(s.Targets))
	assert.Equal(t, []core.Label{l("//pkg:b")}, s.Targets[0].Deps)
}

func TestWriteJSON(t *testing.T) {
	s, err := LoadJSON("testdata/summary.json")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, s))
	assert.Contains(t, buf.String(), `"deps": [
                        ":lib"
                    ]`)
	s2, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, s, s2)
}

func TestReadJSONExternalRepoLabels(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(`{"packages": {"@maven//com/a": {"targets": {
		"a": {"kind": "java_import", "deps": ["//com/b:b", "//com/c", ":d", "@other//:e", "@//java/com/app:lib"]}
	}}}}`))
	require.NoError(t, err)
	require.Equal(t, 1, len(s.Targets))
	assert.Equal(t, l("@maven//com/a:a"), s.Targets[0].Label)
	assert.ElementsMatch(t, []core.Label{
		l("@maven//com/b:b"),
		l("@maven//com/c:c"),
		l("@maven//com/a:d"),
		l("@other//:e"),
		l("//java/com/app:lib"),
	}, s.Targets[0].Deps)
}

func TestWriteJSONExternalRepoLabels(t *testing.T) {
	s := &Summary{Targets: []*Target{{
		Label: l("@maven//com/a:a"),
		Kind:  "java_import",
		Deps:  []core.Label{l("//java/com/app:lib"), l("@maven//com/b:b")},
	}}}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, s))
	assert.Contains(t, buf.String(), `"@//java/com/app:lib"`)
	s2, err := ReadJSON(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, len(s2.Targets))
	assert.ElementsMatch(t, s.Targets[0].Deps, s2.Targets[0].Deps)
}
