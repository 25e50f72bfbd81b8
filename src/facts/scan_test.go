package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JetBrains/android-sub097/src/core"
)

func TestScanWorkspace(t *testing.T) {
	s, err := ScanWorkspace("testdata/workspace", []string{"BUILD", "BUILD.bazel"})
	require.NoError(t, err)
	labels := make([]string, len(s.Targets))
	for i, target := range s.Targets {
		labels[i] = target.Label.String()
	}
	assert.Equal(t, []string{
		"//java/com/app:app",
		"//java/com/app:lib",
		"//java/com/both:from_build",
		"//java/com/util:generated",
		"//java/com/util:util",
		"//javatests/com/util:util_test",
	}, labels)
	assert.Equal(t, core.Labels{
		l("//java/com/app:AndroidManifest.xml"),
		l("//java/com/app:BUILD"),
		l("//java/com/app:MainActivity.java"),
		l("//java/com/both:BUILD"),
		l("//java/com/util:BUILD.bazel"),
		l("//java/com/util:Util.java"),
		l("//java/com/util:sub/Helper.java"),
		l("//javatests/com/util:BUILD"),
		l("//javatests/com/util:UtilTest.java"),
	}.Strings(), core.Labels(s.SourceFiles).Strings())

	util := s.Targets[4]
	assert.Equal(t, []core.Label{l("//java/com/util:generated"), l("@maven//:com_google_guava_guava")}, util.Deps)
	test := s.Targets[5]
	assert.Equal(t, []core.Label{
		l("//java/com/util:util"),
		l("@maven//:junit_junit"),
		l("//java/com/util:generated"),
	}, test.Deps)
	assert.Equal(t, []string{"small"}, test.Tags)
	assert.NoError(t, s.Validate())
}

func TestScanWorkspacePreferredBuildFileName(t *testing.T) {
	s, err := ScanWorkspace("testdata/workspace/java/com/both", []string{"BUILD.bazel", "BUILD"})
	require.NoError(t, err)
	require.Equal(t, 1, len(s.Targets))
	assert.Equal(t, "//:from_build_bazel", s.Targets[0].Label.String())
}

func TestScanWorkspaceMissing(t *testing.T) {
	_, err := ScanWorkspace("testdata/doesnotexist", []string{"BUILD"})
	assert.Error(t, err)
}
