// Package cli implements the realpath command.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ngicks/go-common/serr"
	"github.com/ngicks/go-fsys-helper/realpath"
	"github.com/ngicks/go-fsys-helper/realpath/aferofs"
	"github.com/ngicks/go-fsys-helper/realpath/internal/config"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath  string
	maxSymlinks int
	size        int
	root        string
	wd          string
	table       bool
	partial     bool
	verbose     bool
}

// Execute runs the command with args, writing results to stdout and logs to stderr.
// The returned error gathers every path that failed to resolve.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "realpath [flags] PATH...",
		Short:         "print the canonical absolute form of each PATH",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "read settings from a yaml file; flags take precedence")
	fl.IntVarP(&f.maxSymlinks, "max-symlinks", "l", realpath.DefaultMaxSymlinks, "maximum symlink expansions per path")
	fl.IntVarP(&f.size, "size", "s", realpath.PathMax, "output buffer capacity in bytes, including the terminating NUL")
	fl.StringVarP(&f.root, "root", "r", "", "resolve under this directory as if it were /")
	fl.StringVar(&f.wd, "wd", "", "working directory for relative paths")
	fl.BoolVarP(&f.table, "table", "t", false, "print results as a table")
	fl.BoolVarP(&f.partial, "partial", "p", false, "print the resolved prefix of paths that failed")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log symlink expansions")
	return cmd
}

// load merges the config file, if any, with flags set on the command line.
func (f flags) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		cfg, err = config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("max-symlinks") {
		cfg.MaxSymlinks = f.maxSymlinks
	}
	if changed("size") {
		cfg.Size = f.size
	}
	if changed("root") {
		cfg.Root = f.root
	}
	if changed("wd") {
		cfg.Wd = f.wd
	}
	if changed("table") {
		cfg.Table = f.table
	}
	if changed("partial") {
		cfg.Partial = f.partial
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	return cfg.Fill(), nil
}

func newResolver(cfg config.Config, logger *slog.Logger) *realpath.Resolver {
	var fsys realpath.Fs
	switch {
	case cfg.Root != "":
		fsys = aferofs.NewBasePath(cfg.Root, cfg.Wd)
	case cfg.Wd != "":
		fsys = aferofs.New(afero.NewOsFs(), cfg.Wd)
	}
	return realpath.New(realpath.Config{
		Fs:          fsys,
		MaxSymlinks: cfg.MaxSymlinks,
		Logger:      logger,
	})
}

type result struct {
	path     string
	resolved string
	err      error
}

func run(ctx context.Context, cfg config.Config, args []string, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	r := newResolver(cfg, logger)

	results := make([]result, 0, len(args))
	buf := make([]byte, cfg.Size)
	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Resolve(arg, buf)
		results = append(results, result{path: arg, resolved: string(buf[:n]), err: err})
		if err != nil {
			logger.Debug("failed", slog.String("path", arg), slog.Any("err", err))
		}
	}

	var err error
	if cfg.Table {
		err = writeTable(stdout, results, cfg.Partial)
	} else {
		err = writeLines(stdout, results, cfg.Partial)
	}
	if err != nil {
		return err
	}

	var errs []serr.PrefixErr
	for i, res := range results {
		if res.err != nil {
			errs = append(errs, serr.PrefixErr{P: fmt.Sprintf("arg %d: ", i), E: res.err})
		}
	}
	return serr.GatherPrefixed(errs)
}

func writeLines(w io.Writer, results []result, partial bool) error {
	for _, res := range results {
		if res.err != nil && !partial {
			continue
		}
		if _, err := fmt.Fprintln(w, res.resolved); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, results []result, partial bool) error {
	table := tablewriter.NewTable(w)
	table.Header("Path", "Resolved", "Error")

	rows := make([][]string, len(results))
	for i, res := range results {
		row := []string{res.path, res.resolved, ""}
		if res.err != nil {
			if kind := realpath.KindOf(res.err); kind == realpath.KindOther {
				row[2] = res.err.Error()
			} else {
				row[2] = kind.String()
			}
			if !partial {
				row[1] = ""
			}
		}
		rows[i] = row
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
