package buildgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JetBrains/android-sub097/src/core"
)

func TestPathToLabel(t *testing.T) {
	d := newTestGraph()
	assert.Equal(t, "//java/com/util:Util.java", d.PathToLabel("java/com/util/Util.java").String())
	assert.Equal(t, "//java/com/util:sub/Helper.java", d.PathToLabel("java/com/util/sub/Helper.java").String())
	assert.Equal(t, "//java/com/util:sub/Unknown.java", d.PathToLabel("./java/com/util/sub/Unknown.java").String())
	// No ancestor is a package so it falls back to the root.
	assert.Equal(t, "//:java/com/nopkg/Foo.java", d.PathToLabel("java/com/nopkg/Foo.java").String())
	assert.Equal(t, "//:README.md", d.PathToLabel("README.md").String())
}

func TestSourceFileToLabel(t *testing.T) {
	d := newTestGraph()
	label, present := d.SourceFileToLabel("java/com/util/sub/Helper.java")
	assert.True(t, present)
	assert.Equal(t, src("java/com/util", "sub/Helper.java"), label)
	_, present = d.SourceFileToLabel("java/com/util/sub/Unknown.java")
	assert.False(t, present)
	_, present = d.SourceFileToLabel("java/com/nopkg/Foo.java")
	assert.False(t, present)
}

func TestSourceFileFilters(t *testing.T) {
	d := newTestGraph()
	assert.Equal(t, []core.Label{
		src("java/com/app", "Lib.java"),
		src("java/com/app", "MainActivity.java"),
		src("java/com/native", "Jni.java"),
		src("java/com/util", "Util.java"),
		src("java/com/util", "sub/Helper.java"),
		src("javatests/com/util", "UtilTest.java"),
	}, d.JavaSourceFiles())
	assert.Equal(t, []core.Label{
		src("java/com/aidl", "IService.aidl"),
		src("java/com/app", "AndroidManifest.xml"),
	}, d.AndroidSourceFiles())
	assert.Equal(t, []core.Label{src("proto", "foo.proto")}, d.ProtoSourceFiles())
	assert.Equal(t, []core.Label{src("java/com/native", "native.cc"), src("java/com/native", "native.h")}, d.CcSourceFiles())
	assert.Equal(t, 5, len(d.BuildFiles()))
}

func TestOwners(t *testing.T) {
	d := newTestGraph()
	assert.Equal(t, labels(util, utilVariant), d.TargetOwners("java/com/util/Util.java"))
	assert.Equal(t, labels(util), d.TargetOwners("java/com/util/sub/Helper.java"))
	assert.Equal(t, labels(util, utilVariant), d.SourceFileOwners(src("java/com/util", "Util.java")))
	assert.Equal(t, 0, d.TargetOwners("java/com/nopkg/Foo.java").Len())
	assert.Equal(t, 0, d.SourceFileOwners(guava).Len())
}

func TestOwnersDoNotShareStorage(t *testing.T) {
	d := newTestGraph()
	owners := d.TargetOwners("java/com/util/Util.java")
	owners.Add(app)
	d.SourceFileOwners(src("java/com/util", "Util.java")).Add(app)
	d.TargetOwners("java/com/nopkg/Foo.java").Add(app)
	assert.Equal(t, labels(util, utilVariant), d.TargetOwners("java/com/util/Util.java"))
	assert.Equal(t, 0, d.TargetOwners("java/com/nopkg/Foo.java").Len())
}

func TestExternalDependencies(t *testing.T) {
	d := newTestGraph()
	assert.Equal(t, labels(guava), d.ExternalDependencies([]core.Label{util}))
	assert.Equal(t, labels(guava, aidl, androidx), d.ExternalDependencies([]core.Label{app}))
	assert.Equal(t, labels(guava, junit), d.ExternalDependencies([]core.Label{utilTest}))
	assert.Equal(t, labels(guava, junit, aidl, androidx), d.ExternalDependencies([]core.Label{utilTest, lib}))
	assert.Equal(t, 0, d.ExternalDependencies([]core.Label{native}).Len())
	assert.Equal(t, 0, d.ExternalDependencies(nil).Len())
	assert.Equal(t, 0, d.ExternalDependencies([]core.Label{core.ParseLabel("//no/such:target", "")}).Len())
}

func TestFileDependencies(t *testing.T) {
	d := newTestGraph()
	assert.Equal(t, labels(guava), d.FileDependencies("java/com/util/Util.java"))
	assert.Equal(t, labels(guava, aidl, androidx), d.FileDependencies("java/com/app/Lib.java"))
	assert.Equal(t, 0, d.FileDependencies("java/com/nopkg/Foo.java").Len())
}

func TestFirstReverseDepsOfType(t *testing.T) {
	d := newTestGraph()
	assert.Equal(t, labels(app), d.FirstReverseDepsOfType("java/com/util/Util.java", []string{"android_binary"}))
	// Stops at the library rather than carrying on to the binary.
	assert.Equal(t, labels(lib), d.FirstReverseDepsOfType("java/com/util/Util.java", []string{"android_library", "android_binary"}))
	assert.Equal(t, labels(lib, utilTest), d.FirstReverseDepsOfType("java/com/util/Util.java", []string{"android_library", "java_test"}))
	// The owner itself matches.
	assert.Equal(t, labels(lib), d.FirstReverseDepsOfType("java/com/app/Lib.java", []string{"android_library"}))
	assert.Equal(t, 0, d.FirstReverseDepsOfType("java/com/native/native.cc", []string{"android_binary"}).Len())
	assert.Equal(t, 0, d.FirstReverseDepsOfType("java/com/nopkg/Foo.java", []string{"android_binary"}).Len())
}

func TestDoesDependencyPathContainRules(t *testing.T) {
	d := newTestGraph()
	assert.True(t, d.DoesDependencyPathContainRules("java/com/app/MainActivity.java", "java/com/util/Util.java", []string{"android_library"}))
	assert.False(t, d.DoesDependencyPathContainRules("java/com/app/MainActivity.java", "java/com/util/Util.java", []string{"java_test"}))
	// Endpoints count.
	assert.True(t, d.DoesDependencyPathContainRules("javatests/com/util/UtilTest.java", "java/com/util/Util.java", []string{"java_test"}))
	assert.True(t, d.DoesDependencyPathContainRules("java/com/app/MainActivity.java", "java/com/util/Util.java", []string{"java_library"}))
	// Paths only go one way.
	assert.False(t, d.DoesDependencyPathContainRules("java/com/util/Util.java", "java/com/app/MainActivity.java", []string{"android_library"}))
	// There's a path through an android_library but it doesn't lead to the test.
	assert.False(t, d.DoesDependencyPathContainRules("java/com/app/MainActivity.java", "javatests/com/util/UtilTest.java", []string{"android_library"}))
	assert.False(t, d.DoesDependencyPathContainRules("java/com/nopkg/Foo.java", "java/com/util/Util.java", []string{"android_library"}))
}

func TestSameLanguageTargetsDependingOn(t *testing.T) {
	d := newTestGraph()
	assert.Equal(t, labels(util, lib, utilTest, app), d.SameLanguageTargetsDependingOn([]core.Label{util}))
	// jni is Java, native is C++, so we don't cross over.
	assert.Equal(t, labels(native), d.SameLanguageTargetsDependingOn([]core.Label{native}))
	assert.Equal(t, labels(native, jni), d.SameLanguageTargetsDependingOn([]core.Label{native, jni}))
	unknown := core.ParseLabel("//no/such:target", "")
	assert.Equal(t, labels(unknown), d.SameLanguageTargetsDependingOn([]core.Label{unknown}))
}

func TestFilterRedundantTargets(t *testing.T) {
	d := newTestGraph()
	assert.Equal(t, labels(app), d.FilterRedundantTargets(labels(app, lib, util)))
	assert.Equal(t, labels(app, utilTest), d.FilterRedundantTargets(labels(app, util, utilTest)))
	assert.Equal(t, labels(util, native), d.FilterRedundantTargets(labels(util, native)))
	unknown := core.ParseLabel("//no/such:target", "")
	assert.Equal(t, labels(lib, unknown), d.FilterRedundantTargets(labels(lib, unknown, guava)))
}

func TestComputeRequestedTargets(t *testing.T) {
	d := newTestGraph()
	requested := d.ComputeRequestedTargets(labels(app, util, utilTest))
	assert.Equal(t, labels(app, utilTest), requested.BuildTargets)
	assert.Equal(t, labels(guava, aidl, androidx, junit), requested.ExpectedDependencyTargets)

	requested = d.ComputeRequestedTargets(labels())
	assert.Equal(t, 0, requested.BuildTargets.Len())
	assert.Equal(t, 0, requested.ExpectedDependencyTargets.Len())
}

func TestProjectTargetsSourceFile(t *testing.T) {
	d := newTestGraph()
	targets := d.ProjectTargets("java/com/util/Util.java")
	assert.Equal(t, SourceFileTargets, targets.Type)
	assert.Equal(t, src("java/com/util", "Util.java"), targets.SourceFile)
	assert.Equal(t, labels(util, utilVariant), targets.Targets)
	assert.True(t, targets.IsAmbiguous())
	assert.Nil(t, targets.UnambiguousTargets())

	targets = d.ProjectTargets("java/com/util/sub/Helper.java")
	assert.False(t, targets.IsAmbiguous())
	assert.Equal(t, labels(util), targets.UnambiguousTargets())
}

func TestProjectTargetsBuildFile(t *testing.T) {
	d := newTestGraph()
	targets := d.ProjectTargets("java/com/util/BUILD")
	assert.Equal(t, PackageTargets, targets.Type)
	assert.Equal(t, labels(util, utilVariant), targets.Targets)
	assert.False(t, targets.IsAmbiguous())
	assert.Equal(t, labels(util, utilVariant), targets.UnambiguousTargets())
}

func TestProjectTargetsDirectory(t *testing.T) {
	d := newTestGraph()
	targets := d.ProjectTargets("java/com/util")
	assert.Equal(t, DirectoryTargets, targets.Type)
	assert.Equal(t, labels(util, utilVariant), targets.Targets)

	// Recurses into every package beneath the directory.
	targets = d.ProjectTargets("java/com/")
	assert.Equal(t, DirectoryTargets, targets.Type)
	assert.Equal(t, labels(app, lib, util, utilVariant, aidl, native, jni), targets.Targets)

	// javatests is a sibling, not a subdirectory.
	targets = d.ProjectTargets("java")
	assert.Equal(t, 7, targets.Targets.Len())

	targets = d.ProjectTargets("")
	assert.Equal(t, 8, targets.Targets.Len())
}

func TestProjectTargetsNothing(t *testing.T) {
	d := newTestGraph()
	targets := d.ProjectTargets("java/co")
	assert.Equal(t, NoTargets, targets.Type)
	assert.True(t, targets.IsEmpty())
	assert.Equal(t, "none", targets.Type.String())
}
