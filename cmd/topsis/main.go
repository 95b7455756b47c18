// Command topsis ranks the alternatives in a CSV or XLSX file and writes
// the scored table as CSV.
//
//	topsis [-log-level info] <input> <weights> <impacts> <output>
//	topsis data.csv "1,1,1,2" "-,+,+,+" result.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MikeSquared-Agency/Topsis/internal/tabular"
	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}

func run(args []string, stderr io.Writer) int {
	fl := flag.NewFlagSet("topsis", flag.ContinueOnError)
	fl.SetOutput(stderr)
	level := fl.String("log-level", "info", "log level (debug, info, warn, error)")
	fl.Usage = func() {
		fmt.Fprintln(stderr, "usage: topsis [-log-level level] <input> <weights> <impacts> <output>")
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		return 2
	}

	lvl, err := parseLevel(*level)
	if err != nil {
		fmt.Fprintf(stderr, "invalid log level %q\n", *level)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))

	if fl.NArg() != 4 {
		fl.Usage()
		return 2
	}
	input, weights, impacts, output := fl.Arg(0), fl.Arg(1), fl.Arg(2), fl.Arg(3)

	table, err := tabular.Load(input)
	if err != nil {
		logger.Error("failed to load input", "input", input, "kind", topsis.KindOf(err), "error", err)
		return 1
	}
	logger.Debug("input loaded", "input", input, "rows", len(table.Rows), "columns", len(table.Header))

	res, err := topsis.Compute(table, weights, impacts)
	if err != nil {
		logger.Error("topsis failed", "kind", topsis.KindOf(err), "error", err)
		return 1
	}

	if err := tabular.SaveCSV(output, res); err != nil {
		logger.Error("failed to write result", "output", output, "error", err)
		return 1
	}

	attrs := []any{"output", output, "alternatives", len(res.Rows)}
	if best := res.Best(); best >= 0 && len(table.Rows[best]) > 0 {
		attrs = append(attrs, "best", table.Rows[best][0])
	}
	logger.Info("result written", attrs...)
	return 0
}
