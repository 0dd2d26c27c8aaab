package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/xlgames-inc/XLE-sub005/pkg/authoring"
	"github.com/xlgames-inc/XLE-sub005/pkg/compat"
	"github.com/xlgames-inc/XLE-sub005/pkg/config"
	"github.com/xlgames-inc/XLE-sub005/pkg/conversion"
	"github.com/xlgames-inc/XLE-sub005/pkg/editing"
	"github.com/xlgames-inc/XLE-sub005/pkg/factory"
	"github.com/xlgames-inc/XLE-sub005/pkg/graph"
	"github.com/xlgames-inc/XLE-sub005/pkg/graphfile"
	"github.com/xlgames-inc/XLE-sub005/pkg/logging"
	"github.com/xlgames-inc/XLE-sub005/pkg/output"
	"github.com/xlgames-inc/XLE-sub005/pkg/watcher"
)

const (
	quietPeriod = 200 * time.Millisecond
	maxWait     = 2 * time.Second
)

func main() {
	// Parse command-line flags
	flags := config.Flags("nodegraph")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nodegraph [flags] [description]\n\n%s", flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Input == "" {
		flags.Usage()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		if !cfg.Watch {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logging.Error("lowering failed", "error", err)
	}

	if cfg.Watch {
		if err := watch(flags, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig layers the config sources and applies the logging settings.
// A positional argument names the description when --input is not given.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}
	if cfg.Input == "" && flags.NArg() > 0 {
		cfg.Input = flags.Arg(0)
	}

	level := logging.LevelFromVerbose(cfg.VerboseCnt)
	if cfg.Verbosity != "" {
		if level, err = logging.ParseLevel(cfg.Verbosity); err != nil {
			return nil, err
		}
	}
	if cfg.JSONLogs {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}
	return cfg, nil
}

// run loads the description, builds it into a fresh session, lowers it and
// writes the graph file.
func run(cfg *config.Config) error {
	strategy, err := compat.Lookup(cfg.Strategy)
	if err != nil {
		return err
	}
	format, err := graphfile.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if cfg.Output != "" {
		format = graphfile.FormatForPath(cfg.Output, format)
	}

	desc, err := authoring.Load(cfg.Input)
	if err != nil {
		return err
	}

	doc := editing.NewMemoryDocument(cfg.Input)
	ctx := editing.NewContext(graph.NewModel(), doc, strategy)
	defer ctx.Close()

	built, err := authoring.Build(desc, factory.New(factory.NewIDAllocator(1)), ctx)
	if err != nil {
		return fmt.Errorf("building %s: %w", cfg.Input, err)
	}
	if built.Conversions > 0 {
		logging.Info("connections rely on implicit conversion", "count", built.Conversions)
	}

	file, report := conversion.Lower(ctx.Model(), conversion.Options{IncludeEditorAttributes: cfg.Attributes})
	for _, d := range report.Diagnostics {
		logging.Debug("lowering diagnostic", "kind", d.Kind.String(), "subgraph", d.SubGraph, "message", d.Message)
	}

	summary := io.Writer(os.Stdout)
	if cfg.Output == "" {
		if err := graphfile.Encode(os.Stdout, file, format); err != nil {
			return err
		}
		summary = os.Stderr
	} else if err := writeFile(cfg.Output, file, format); err != nil {
		return err
	}
	doc.MarkSaved()

	output.PrintSummary(summary, cfg.Input, file, report)
	logging.Info("lowered graph", "document", doc.ID.String(), "format", string(format), "nodes", file.NodeCount())
	return nil
}

func writeFile(path string, file *graphfile.File, format graphfile.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := graphfile.Encode(f, file, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// watch re-runs the pipeline whenever the description or the config file
// changes, until interrupted.
func watch(flags *pflag.FlagSet, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var extra []string
	if _, err := os.Stat(config.DefaultFile); err == nil {
		extra = append(extra, config.DefaultFile)
	}
	fw, err := watcher.NewFileWatcher(cfg.Input, extra...)
	if err != nil {
		return err
	}

	return watcher.Run(ctx, fw, quietPeriod, maxWait, func(change watcher.ChangeAnalysis) {
		if change.ReloadConfig {
			reloaded, err := loadConfig(flags)
			if err != nil {
				logging.Error("failed to reload config", "error", err)
				return
			}
			// The watched description stays fixed for the lifetime of the watcher
			reloaded.Input = cfg.Input
			cfg = reloaded
		}
		if !change.Rebuild {
			return
		}
		logging.Info("rebuilding", "files", change.ChangedFiles)
		if err := run(cfg); err != nil {
			logging.Error("lowering failed", "error", err)
		}
	})
}
