package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
	"gopkg.in/op/go-logging.v1"

	"github.com/JetBrains/android-sub097/src/buildgraph"
	"github.com/JetBrains/android-sub097/src/cli"
	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/facts"
	"github.com/JetBrains/android-sub097/src/metrics"
	"github.com/JetBrains/android-sub097/src/query"
)

var log = logging.MustGetLogger("qsync")

var opts struct {
	Usage string `usage:"qsync builds the dependency graph of a project and answers questions about it for IDE sync.\n\nThe graph is read from a JSON summary (as written by qsync dump) if --graph is given, otherwise the BUILD files under the repo root are scanned."`

	Verbosity    cli.Verbosity `short:"v" long:"verbosity" description:"Verbosity of output (error, warning, notice, info, debug)" default:"warning"`
	LogFile      cli.Filepath  `long:"log_file" description:"File to echo full logging output to"`
	LogFileLevel cli.Verbosity `long:"log_file_level" description:"Log level for file output" default:"debug"`
	RepoRoot     cli.Filepath  `short:"r" long:"repo_root" description:"Root of the repo. Defaults to the nearest directory above the current one with a .qsyncconfig or WORKSPACE file."`
	Graph        cli.Filepath  `short:"g" long:"graph" description:"JSON summary to load the graph from, instead of scanning BUILD files"`
	MetricsFile  cli.Filepath  `long:"metrics_file" description:"File to write metrics to in the Prometheus text format"`

	Dump struct {
		Args struct {
			Targets cli.StdinStrings `positional-arg-name:"targets" description:"Targets to dump. Defaults to everything."`
		} `positional-args:"true"`
	} `command:"dump" description:"Prints the graph as JSON, in the same format --graph reads"`

	Query struct {
		Label struct {
			Args struct {
				Files cli.StdinStrings `positional-arg-name:"files" description:"Files to find labels for" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"label" description:"Prints the label of each file"`
		Owners struct {
			Args struct {
				Files cli.StdinStrings `positional-arg-name:"files" description:"Files to find owners of" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"owners" description:"Prints the targets that declare any of the given files as sources"`
		Targets struct {
			Args struct {
				Path string `positional-arg-name:"path" description:"Source file, BUILD file or directory" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"targets" description:"Prints the targets to build to sync a path"`
		Sources struct {
			Type core.SourceType `short:"t" long:"type" description:"Only print sources of this type (java, kotlin, jvm, android, proto, cc, cpp, build...)"`
		} `command:"sources" description:"Prints the known source files"`
		Supported struct {
		} `command:"supported" description:"Prints all the targets the project can build"`
		ExternalDeps struct {
			Args struct {
				Targets cli.StdinStrings `positional-arg-name:"targets" description:"Targets to query" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"externaldeps" description:"Prints the external dependencies of targets"`
		FileDeps struct {
			Args struct {
				Files cli.StdinStrings `positional-arg-name:"files" description:"Files to query" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"filedeps" description:"Prints the external dependencies of the targets owning files"`
		Redundant struct {
			Args struct {
				Targets cli.StdinStrings `positional-arg-name:"targets" description:"Targets to filter" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"redundant" description:"Prints the subset of targets that builds all of them"`
		Requested struct {
			Args struct {
				Targets cli.StdinStrings `positional-arg-name:"targets" description:"Targets to request" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"requested" description:"Prints what to build for targets and the dependencies that build produces"`
		Pending struct {
			Built []string `short:"b" long:"built" description:"Label of a dependency that is already built. Can be repeated."`
			Args  struct {
				Targets cli.StdinStrings `positional-arg-name:"targets" description:"Targets to query" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"pending" description:"Prints what still needs building before targets are fully synced"`
		FirstRevDeps struct {
			Kind []string `short:"k" long:"kind" description:"Rule kind to look for. Can be repeated." required:"true"`
			Args struct {
				Files cli.StdinStrings `positional-arg-name:"files" description:"Files to start from" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"firstrevdeps" description:"Prints the nearest targets of some kinds depending on the owners of files"`
		PathContains struct {
			Kind []string `short:"k" long:"kind" description:"Rule kind to look for. Can be repeated." required:"true"`
			Args struct {
				From string `positional-arg-name:"from" description:"File to start from" required:"true"`
				To   string `positional-arg-name:"to" description:"File to end at" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"pathcontains" description:"Checks whether a dependency path between two files passes through a rule of some kinds"`
		SameLanguage struct {
			Args struct {
				Targets cli.StdinStrings `positional-arg-name:"targets" description:"Targets to start from" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"samelanguage" description:"Prints targets depending on others through targets of the same language"`
		Cycle struct {
		} `command:"cycle" description:"Prints a dependency cycle, if there is one"`
		Print struct {
			Fields []string `short:"f" long:"field" description:"Individual field to print (kind, languages, tags, srcs, deps, tracking, external)"`
			Args   struct {
				Targets cli.StdinStrings `positional-arg-name:"targets" description:"Targets to print" required:"true"`
			} `positional-args:"true" required:"true"`
		} `command:"print" description:"Prints a representation of targets"`
	} `command:"query" description:"Queries the build graph"`
}

// buildFunctions maps each command onto the function that runs it. They return true on success.
var buildFunctions = map[string]func(d *buildgraph.BuildGraphData) bool{
	"dump": func(d *buildgraph.BuildGraphData) bool {
		var targets []core.Label
		if args := opts.Dump.Args.Targets.Get(); len(args) > 0 {
			targets = resolveTargets(d, args)
		}
		return check(query.Graph(os.Stdout, d, targets))
	},
	"label": func(d *buildgraph.BuildGraphData) bool {
		query.Labels(os.Stdout, d, opts.Query.Label.Args.Files.Get())
		return true
	},
	"owners": func(d *buildgraph.BuildGraphData) bool {
		query.Owners(os.Stdout, d, opts.Query.Owners.Args.Files.Get())
		return true
	},
	"targets": func(d *buildgraph.BuildGraphData) bool {
		return check(query.Targets(os.Stdout, d, opts.Query.Targets.Args.Path))
	},
	"sources": func(d *buildgraph.BuildGraphData) bool {
		query.SourceFiles(os.Stdout, d, opts.Query.Sources.Type)
		return true
	},
	"supported": func(d *buildgraph.BuildGraphData) bool {
		query.Supported(os.Stdout, d)
		return true
	},
	"externaldeps": func(d *buildgraph.BuildGraphData) bool {
		query.ExternalDeps(os.Stdout, d, resolveTargets(d, opts.Query.ExternalDeps.Args.Targets.Get()))
		return true
	},
	"filedeps": func(d *buildgraph.BuildGraphData) bool {
		query.FileDeps(os.Stdout, d, opts.Query.FileDeps.Args.Files.Get())
		return true
	},
	"redundant": func(d *buildgraph.BuildGraphData) bool {
		query.Redundant(os.Stdout, d, resolveTargets(d, opts.Query.Redundant.Args.Targets.Get()))
		return true
	},
	"requested": func(d *buildgraph.BuildGraphData) bool {
		query.Requested(os.Stdout, d, resolveTargets(d, opts.Query.Requested.Args.Targets.Get()))
		return true
	},
	"pending": func(d *buildgraph.BuildGraphData) bool {
		built := make([]core.Label, len(opts.Query.Pending.Built))
		for i, b := range opts.Query.Pending.Built {
			label, err := core.TryParseLabel(b, "")
			if err != nil {
				log.Fatalf("%s", err)
			}
			built[i] = label
		}
		query.Pending(os.Stdout, d, resolveTargets(d, opts.Query.Pending.Args.Targets.Get()), built)
		return true
	},
	"firstrevdeps": func(d *buildgraph.BuildGraphData) bool {
		query.FirstRevDeps(os.Stdout, d, opts.Query.FirstRevDeps.Args.Files.Get(), opts.Query.FirstRevDeps.Kind)
		return true
	},
	"pathcontains": func(d *buildgraph.BuildGraphData) bool {
		return query.PathContains(os.Stdout, d, opts.Query.PathContains.Args.From, opts.Query.PathContains.Args.To, opts.Query.PathContains.Kind)
	},
	"samelanguage": func(d *buildgraph.BuildGraphData) bool {
		query.SameLanguage(os.Stdout, d, resolveTargets(d, opts.Query.SameLanguage.Args.Targets.Get()))
		return true
	},
	"cycle": func(d *buildgraph.BuildGraphData) bool {
		// Finding a cycle is the interesting result, but it isn't a failure.
		query.Cycle(os.Stdout, d)
		return true
	},
	"print": func(d *buildgraph.BuildGraphData) bool {
		return check(query.Print(os.Stdout, d, resolveTargets(d, opts.Query.Print.Args.Targets.Get()), opts.Query.Print.Fields))
	},
}

func resolveTargets(d *buildgraph.BuildGraphData, args []string) []core.Label {
	labels, err := query.ResolveTargets(d, args)
	if err != nil {
		log.Fatalf("%s", err)
	}
	return labels
}

func check(err error) bool {
	if err != nil {
		log.Error("%s", err)
		return false
	}
	return true
}

// loadGraph builds the graph, either from a JSON summary or by scanning the repo.
func loadGraph(config *core.Configuration, repoRoot string) (*buildgraph.BuildGraphData, error) {
	var s *facts.Summary
	var err error
	if opts.Graph != "" {
		s, err = facts.LoadJSON(string(opts.Graph))
	} else {
		s, err = facts.ScanWorkspace(repoRoot, config.Project.BuildFileName)
	}
	if err != nil {
		if s == nil {
			return nil, err
		}
		// Errors in individual packages aren't fatal; the rest of the graph is still useful.
		log.Warning("%s", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	b := buildgraph.NewBuilder(config)
	facts.Apply(s, b)
	return b.Build(), nil
}

func run() bool {
	command := cli.ParseFlagsOrDie("qsync", &opts)
	cli.InitLogging(opts.Verbosity)
	if opts.LogFile != "" {
		cli.AtExit(cli.InitFileLogging(string(opts.LogFile), opts.LogFileLevel))
	}
	cli.HandleSignals()
	defer cli.RunExitHandlers()
	if undo, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warning("Failed to set GOMAXPROCS: %s", err)
	} else {
		cli.AtExit(undo)
	}

	repoRoot := string(opts.RepoRoot)
	if repoRoot == "" {
		root, _, err := core.FindRepoRootFromWorkingDir()
		if err != nil {
			log.Error("%s", err)
			return false
		}
		repoRoot = root
	}
	config, err := core.ReadDefaultConfigFiles(repoRoot)
	if err != nil {
		log.Error("Error reading config file: %s", err)
		return false
	}
	log.Debug("Project config: %s", config)
	metrics.InitFromConfig(config)
	cli.AtExit(metrics.Stop)
	if opts.MetricsFile != "" {
		cli.AtExit(func() {
			if err := metrics.WriteFile(string(opts.MetricsFile)); err != nil {
				log.Warning("Failed to write metrics: %s", err)
			}
		})
	}

	start := time.Now()
	d, err := loadGraph(config, repoRoot)
	if err != nil {
		log.Error("Failed to load build graph: %s", err)
		return false
	}
	log.Info("Loaded build graph in %s", time.Since(start).Round(time.Millisecond))
	f, present := buildFunctions[command]
	if !present {
		fmt.Fprintf(os.Stderr, "Unknown command %s\n", command)
		return false
	}
	return f(d)
}

func main() {
	if run() {
		os.Exit(0)
	}
	os.Exit(1)
}
