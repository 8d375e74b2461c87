// cmd/tada/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"tada/internal/config"
	"tada/internal/datadict"
	tadaerr "tada/internal/errors"
	"tada/internal/rolling"
	"tada/internal/source"
)

const version = "0.1.0"

// commandAliases mirrors sentra's single-letter command aliases, scaled
// down to the handful of subcommands this engine's CLI actually needs.
var commandAliases = map[string]string{
	"r": "rolling",
	"v": "version",
}

func main() {
	configureLogging()

	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		showVersion()
	case "rolling":
		if err := rollingCommand(args[1:]); err != nil {
			logrus.WithError(err).Error("rolling command failed")
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "tada: unknown command %q\n", cmd)
		showUsage()
		os.Exit(1)
	}
}

// configureLogging picks a structured-text or colorized formatter
// depending on whether stderr is an interactive terminal (sentra's CLI
// makes the same isatty-gated choice for its own diagnostic output).
func configureLogging() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   isatty.IsTerminal(os.Stderr.Fd()),
		FullTimestamp: true,
	})
}

func showVersion() {
	fmt.Printf("tada %s\n", version)
}

func showUsage() {
	fmt.Println("tada - lazy, typed, n-dimensional array engine")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tada rolling --db <dsn> --driver <name> --query <sql> --column <name>")
	fmt.Println("               --window <n> [--min-periods <n>] [--stable] [--preset <name> --config <file.yaml>]")
	fmt.Println("                                                      Load a SQL result set and print a rolling")
	fmt.Println("                                                      mean over one numeric column. (alias: r)")
	fmt.Println("  tada version                                       Print the engine version.   (alias: v)")
}

// rollingCommandArgs is the flag set rollingCommand parses by hand, in
// sentra CLI's style of a small dedicated parser rather than pulling in
// a flags framework for a handful of options.
type rollingCommandArgs struct {
	driver     string
	dsn        string
	query      string
	column     string
	window     int
	minPeriods int
	stable     bool
	configPath string
	preset     string
}

func parseRollingArgs(args []string) (*rollingCommandArgs, error) {
	out := &rollingCommandArgs{driver: "sqlite"}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--db":
			i++
			out.dsn = valueAt(args, i)
		case "--driver":
			i++
			out.driver = valueAt(args, i)
		case "--query":
			i++
			out.query = valueAt(args, i)
		case "--column":
			i++
			out.column = valueAt(args, i)
		case "--window":
			i++
			fmt.Sscanf(valueAt(args, i), "%d", &out.window)
		case "--min-periods":
			i++
			fmt.Sscanf(valueAt(args, i), "%d", &out.minPeriods)
		case "--stable":
			out.stable = true
		case "--config":
			i++
			out.configPath = valueAt(args, i)
		case "--preset":
			i++
			out.preset = valueAt(args, i)
		default:
			return nil, tadaerr.Newf(tadaerr.UnsupportedDtype, "rolling", "unrecognized flag %q", args[i])
		}
	}
	if out.dsn == "" || out.query == "" || out.column == "" {
		return nil, tadaerr.New(tadaerr.EmptyInput, "rolling", "--db, --query and --column are required")
	}
	return out, nil
}

func valueAt(args []string, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

// rollingCommand is the demo external-collaborator seam SPEC_FULL.md §1
// describes: it opens a real database/sql connection via
// internal/source, loads a DataDict, then drives the expression engine
// (internal/expr's RollingMean chain) over one column.
func rollingCommand(args []string) error {
	parsed, err := parseRollingArgs(args)
	if err != nil {
		return err
	}

	db, err := sql.Open(parsed.driver, parsed.dsn)
	if err != nil {
		return tadaerr.Wrap(tadaerr.CastFailure, "rolling", err, "opening database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dd, err := source.LoadColumns(ctx, db, parsed.query)
	if err != nil {
		return err
	}

	opt, err := resolveOptions(parsed)
	if err != nil {
		return err
	}

	col, err := dd.Get(datadict.Name(parsed.column))
	if err != nil {
		return err
	}
	if len(col) != 1 {
		return tadaerr.Newf(tadaerr.OutOfBounds, "rolling", "column %q did not resolve to exactly one expression", parsed.column)
	}

	result := col[0].CloneShell().RollingMean(opt)
	out, _, err := result.Eval(nil)
	if err != nil {
		return err
	}

	arr := out.Arr()
	f, err := arr.AsFloat()
	if err != nil {
		return err
	}
	n, err := dd.Len()
	if err != nil {
		return err
	}
	fmt.Printf("loaded %s rows; rolling mean of %q (window=%d, min_periods=%d, stable=%v):\n",
		humanize.Comma(int64(n)), parsed.column, opt.Window, opt.MinPeriods, opt.Stable)
	for i, v := range f.Slice() {
		fmt.Printf("  [%d] %.6f\n", i, v)
	}
	return nil
}

func resolveOptions(parsed *rollingCommandArgs) (rolling.Options, error) {
	if parsed.preset != "" {
		if parsed.configPath == "" {
			return rolling.Options{}, tadaerr.New(tadaerr.EmptyInput, "rolling", "--preset requires --config")
		}
		cfg, err := config.Load(parsed.configPath)
		if err != nil {
			return rolling.Options{}, err
		}
		preset, err := cfg.Preset(parsed.preset)
		if err != nil {
			return rolling.Options{}, err
		}
		return preset.ToOptions(), nil
	}
	return rolling.Options{Window: parsed.window, MinPeriods: parsed.minPeriods, Stable: parsed.stable}, nil
}
