package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasTag(t *testing.T) {
	target := &ProjectTarget{
		Label: ParseLabel("//java/com/foo:foo", ""),
		Kind:  "java_library",
		Tags:  []string{"manual", "no-ide"},
	}
	assert.True(t, target.HasTag("manual"))
	assert.True(t, target.HasTag("no-ide"))
	assert.False(t, target.HasTag("flaky"))
	assert.Equal(t, "java_library rule //java/com/foo:foo", target.String())
}

func TestTrackingBehavior(t *testing.T) {
	both := TrackSelf | TrackExternalDependencies
	assert.True(t, both.Has(TrackSelf))
	assert.True(t, both.Has(TrackExternalDependencies))
	assert.False(t, TrackSelf.Has(TrackExternalDependencies))
	assert.Equal(t, "self,external_dependencies", both.String())
	assert.Equal(t, "none", DependencyTrackingBehavior(0).String())
}

func TestClassifySource(t *testing.T) {
	buildFiles := []string{"BUILD", "BUILD.bazel"}
	assert.Equal(t, JavaSource, ClassifySource("java/com/foo/Foo.java", buildFiles))
	assert.Equal(t, KotlinSource, ClassifySource("java/com/foo/Foo.kt", buildFiles))
	assert.Equal(t, BuildFile, ClassifySource("java/com/foo/BUILD", buildFiles))
	assert.Equal(t, BuildFile, ClassifySource("BUILD.bazel", buildFiles))
	assert.Equal(t, AndroidManifest, ClassifySource("java/com/app/AndroidManifest.xml", buildFiles))
	assert.Equal(t, AndroidResource, ClassifySource("java/com/app/res/values/strings.xml", buildFiles))
	assert.Equal(t, AidlSource, ClassifySource("java/com/app/IService.aidl", buildFiles))
	assert.Equal(t, ProtoSource, ClassifySource("proto/foo.proto", buildFiles))
	assert.Equal(t, CcSource, ClassifySource("native/foo.cc", buildFiles))
	assert.Equal(t, CcHeader, ClassifySource("native/foo.h", buildFiles))
	assert.Equal(t, SourceType(0), ClassifySource("README.md", buildFiles))
}

func TestSourceTypeFlag(t *testing.T) {
	var st SourceType
	assert.NoError(t, st.UnmarshalFlag("JVM"))
	assert.True(t, st.Has(JavaSource))
	assert.True(t, st.Has(KotlinSource))
	assert.False(t, st.Has(ProtoSource))
	assert.Error(t, st.UnmarshalFlag("cobol"))
}
