package query

import (
	"fmt"
	"io"
	"strings"

	"github.com/bazelbuild/buildtools/build"

	"github.com/JetBrains/android-sub097/src/buildgraph"
	"github.com/JetBrains/android-sub097/src/core"
)

// Print prints each of the given targets as a BUILD rule, annotated with what the graph knows about it.
// If fields is non-empty only those are printed, one per line, e.g. kind, languages, tags, srcs, deps,
// tracking or external.
func Print(w io.Writer, d *buildgraph.BuildGraphData, targets []core.Label, fields []string) error {
	for _, label := range targets {
		target := d.Target(label)
		if target == nil {
			return fmt.Errorf("unknown target %s", label)
		}
		if len(fields) > 0 {
			for _, field := range fields {
				value, err := printField(d, target, field)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, value)
			}
			continue
		}
		fmt.Fprintf(w, "# %s:\n", label)
		fmt.Fprintf(w, "# languages: %s\n", target.Languages)
		fmt.Fprintf(w, "# tracking: %s\n", d.TrackingBehaviors(label))
		w.Write(build.FormatWithoutRewriting(&build.File{Type: build.TypeBuild, Stmt: []build.Expr{ruleFor(target)}}))
	}
	return nil
}

func printField(d *buildgraph.BuildGraphData, target *core.ProjectTarget, field string) (string, error) {
	switch field {
	case "kind":
		return target.Kind, nil
	case "languages":
		return target.Languages.String(), nil
	case "tags":
		return strings.Join(target.Tags, " "), nil
	case "srcs":
		return strings.Join(core.Labels(target.Sources).Strings(), " "), nil
	case "deps":
		return strings.Join(core.Labels(target.Deps).Strings(), " "), nil
	case "tracking":
		return d.TrackingBehaviors(target.Label).String(), nil
	case "external":
		deps := d.ExternalDependencies([]core.Label{target.Label})
		return strings.Join(core.Labels(deps.SortedItems(core.Label.Compare)).Strings(), " "), nil
	}
	return "", fmt.Errorf("unknown field %s", field)
}

// ruleFor reconstructs a rule call for a target. Sources and deps in the same package are written relative to it.
func ruleFor(target *core.ProjectTarget) *build.CallExpr {
	r := build.NewRule(&build.CallExpr{})
	r.SetKind(target.Kind)
	r.SetAttr("name", &build.StringExpr{Value: target.Label.Name})
	if len(target.Sources) > 0 {
		r.SetAttr("srcs", labelList(target.Label, target.Sources, false))
	}
	if len(target.Deps) > 0 {
		r.SetAttr("deps", labelList(target.Label, target.Deps, true))
	}
	if len(target.Tags) > 0 {
		tags := make([]build.Expr, len(target.Tags))
		for i, tag := range target.Tags {
			tags[i] = &build.StringExpr{Value: tag}
		}
		r.SetAttr("tags", &build.ListExpr{List: tags})
	}
	return r.Call
}

func labelList(owner core.Label, labels []core.Label, deps bool) *build.ListExpr {
	l := &build.ListExpr{List: make([]build.Expr, len(labels))}
	for i, label := range labels {
		s := label.String()
		if label.Workspace == owner.Workspace && label.Package == owner.Package {
			if deps {
				s = ":" + label.Name
			} else {
				s = label.Name
			}
		}
		l.List[i] = &build.StringExpr{Value: s}
	}
	return l
}
