package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JetBrains/android-sub097/src/core"
)

const testBuildFile = `
load("//tools:defs.bzl", "kt_jvm_library")

package(default_visibility = ["//visibility:public"])

kt_jvm_library(
    name = "lib",
    srcs = [
        "Lib.kt",
        "nested/Nested.kt",
        ":gen_srcs",
        "//java/com/other:Other.java",
    ],
    deps = ["//java/com/util", "@maven//:guava"],
    exports = [":api"],
    tags = ["manual", "no-ide"],
)

java_library(
    name = "api",
    srcs = glob(["api/*.java"]),
)

exports_files(["README.md"])
`

func TestParseBuildFile(t *testing.T) {
	targets, err := ParseBuildFile("java/com/foo", "java/com/foo/BUILD", []byte(testBuildFile))
	require.NoError(t, err)
	require.Equal(t, 2, len(targets))

	lib := targets[0]
	assert.Equal(t, core.ParseLabel("//java/com/foo:lib", ""), lib.Label)
	assert.Equal(t, "kt_jvm_library", lib.Kind)
	assert.Equal(t, []core.Label{
		core.ParseLabel("//java/com/foo:Lib.kt", ""),
		core.ParseLabel("//java/com/foo:nested/Nested.kt", ""),
	}, lib.Sources)
	assert.Equal(t, []core.Label{
		core.ParseLabel("//java/com/foo:gen_srcs", ""),
		core.ParseLabel("//java/com/other:Other.java", ""),
		core.ParseLabel("//java/com/util:util", ""),
		core.ParseLabel("@maven//:guava", ""),
		core.ParseLabel("//java/com/foo:api", ""),
	}, lib.Deps)
	assert.Equal(t, []string{"manual", "no-ide"}, lib.Tags)

	api := targets[1]
	assert.Equal(t, "java_library", api.Kind)
	assert.Empty(t, api.Sources)
	assert.Empty(t, api.Deps)
}

func TestParseBuildFileSyntaxError(t *testing.T) {
	_, err := ParseBuildFile("pkg", "pkg/BUILD", []byte("java_library(name = "))
	assert.Error(t, err)
}

func TestParseBuildFileBadLabels(t *testing.T) {
	targets, err := ParseBuildFile("pkg", "pkg/BUILD", []byte(`
java_library(
    name = "a",
    deps = ["//x:y:z", ":fine"],
)
java_library(
    name = "b:c",
)
`))
	assert.Error(t, err)
	require.Equal(t, 1, len(targets))
	assert.Equal(t, []core.Label{core.ParseLabel("//pkg:fine", "")}, targets[0].Deps)
}
