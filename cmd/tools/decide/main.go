// Package main implements a command-line front end to the lunch officer.
//
// It scores the cafes of a catalog file for one day without running the API
// server. Weather is read from a YAML file; visit history is a comma separated
// list of cafe names.
//
// Usage:
//
//	go run ./cmd/tools/decide --catalog=configs/cafes.yaml
//	go run ./cmd/tools/decide --catalog=configs/cafes.yaml --weekday=4 --weather=today.yaml --lunched=Silva,Pihka
//	go run ./cmd/tools/decide --catalog=configs/cafes.yaml --explain --policy=good
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"lunchofficer/internal/catalog"
	"lunchofficer/internal/lunch"
	"lunchofficer/internal/types"
)

// options holds the parsed command-line flags.
type options struct {
	CatalogPath string
	WeatherPath string
	Weekday     int
	WeekdaySet  bool
	Lunched     string
	Policy      string
	Explain     bool
	Verbose     bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, types.RealClock{}); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, scores the catalog and writes the result to stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, clock types.Clock) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	file, err := catalog.Load(opts.CatalogPath)
	if err != nil {
		return err
	}

	req := lunch.Request{
		Weekday:     types.WeekdayFromTime(clock.Now().Weekday()),
		Preferences: file.Preferences,
		Cafes:       file.Cafes,
		Lunched:     splitNames(opts.Lunched),
	}
	if opts.WeekdaySet {
		req.Weekday = types.Weekday(opts.Weekday)
	}
	if opts.WeatherPath != "" {
		reading, err := loadWeather(opts.WeatherPath)
		if err != nil {
			return err
		}
		req.Weather = reading
	}

	policy, err := lunch.ParseUnknownWeatherPolicy(opts.Policy)
	if err != nil {
		return err
	}
	officer := lunch.NewOfficer(policy, logger)

	scores, err := officer.Score(ctx, req)
	if err != nil {
		return err
	}

	if !opts.Explain {
		_, err := fmt.Fprintln(stdout, lunch.Choice(scores))
		return err
	}
	return writeScores(stdout, req.Weekday, scores)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("decide", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.CatalogPath, "catalog", "", "Path to the YAML cafe catalog [required]")
	fs.StringVar(&opts.WeatherPath, "weather", "", "Path to a YAML weather reading (default: unknown weather)")
	fs.IntVar(&opts.Weekday, "weekday", 0, "Day to decide for, 0=Monday..6=Sunday (default: today)")
	fs.StringVar(&opts.Lunched, "lunched", "", "Comma separated cafes visited this week")
	fs.StringVar(&opts.Policy, "policy", string(lunch.UnknownWeatherBad), "Unknown weather policy (bad or good)")
	fs.BoolVar(&opts.Explain, "explain", false, "Print the full ranking with score components")
	fs.BoolVar(&opts.Verbose, "v", false, "Log the decision trace to stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Lunch Officer\n\n")
		fmt.Fprintf(stderr, "Scores the cafes of a catalog and prints the choice.\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  decide --catalog=PATH [--weekday=N] [--weather=PATH] [--lunched=A,B] [--explain]\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "weekday" {
			opts.WeekdaySet = true
		}
	})
	if opts.CatalogPath == "" {
		fs.Usage()
		return opts, errors.New("--catalog is required")
	}
	return opts, nil
}

// loadWeather reads a single weather document. Unknown keys and missing
// fields are rejected.
func loadWeather(path string) (*types.WeatherReading, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weather %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var in types.WeatherInput
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, types.NewAppError(types.ErrCodeValidationInvalidWeather, "weather document is empty", nil)
		}
		return nil, types.NewAppError(types.ErrCodeValidationInvalidWeather, "malformed weather document", err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	reading := in.Reading()
	return &reading, nil
}

func splitNames(s string) types.VisitHistory {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var names types.VisitHistory
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func writeScores(w io.Writer, day types.Weekday, scores []lunch.CafeScore) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s\n", day)
	fmt.Fprintln(tw, "RANK\tCAFE\tSCORE\tMENU\tWEATHER\tVISITS\tDAY")
	for i, s := range scores {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%d\t%.1f\t%d\t%d\n",
			i+1, s.Name, s.Score, s.Menu, s.WeatherPenalty, s.VisitPenalty, s.PreferredDayBonus)
	}
	if len(scores) == 0 {
		fmt.Fprintln(tw, "-\t"+lunch.NoIdea+"\t\t\t\t\t")
	}
	return tw.Flush()
}
