// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/tomtom215/curator/internal/catalog"
	"github.com/tomtom215/curator/internal/engine"
	"github.com/tomtom215/curator/internal/logging"
	"github.com/tomtom215/curator/internal/recommend"
)

func catalogFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "catalog",
		Aliases: []string{"c"},
		Usage:   "catalog JSON file (default: bundled sample)",
		Sources: cli.EnvVars("CATALOG_PATH"),
	}
}

// newApp builds the command tree. Results are written to out.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "curatorctl",
		Usage:  "Offline exhibit recommendations and tour planning",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "trace, debug, info, warn, error"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.Init(logging.Config{
				Level:  cmd.String("log-level"),
				Format: "console",
				Output: cmd.Root().ErrWriter,
			})
			return ctx, nil
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			catalogCommand(),
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Profile a visitor and print recommendations and a tour",
		Flags: []cli.Flag{
			catalogFlag(),
			&cli.StringFlag{Name: "age-group", Required: true, Usage: "kids, teens, adults or seniors"},
			&cli.StringFlag{Name: "group-type", Value: "individual", Usage: "individual, family, school or tourist"},
			&cli.StringFlag{Name: "time-slot", Value: "morning", Usage: "morning, afternoon or full-day"},
			&cli.BoolFlag{Name: "children", Usage: "the group includes children"},
			&cli.StringSliceFlag{Name: "interest", Aliases: []string{"i"}, Usage: "free-text interest (repeatable)"},
			&cli.StringSliceFlag{Name: "category", Usage: "preferred category (repeatable)"},
			&cli.StringFlag{Name: "learning-style", Usage: "visual, hands-on, interactive or passive"},
			&cli.StringFlag{Name: "energy", Usage: "low, medium or high"},
			&cli.StringFlag{Name: "crowd", Usage: "crowd tolerance: low, medium or high"},
			&cli.StringSliceFlag{Name: "accessibility", Usage: "accessibility need, e.g. wheelchair (repeatable)"},
			&cli.StringFlag{Name: "history", Usage: "JSON file with interaction events"},
			&cli.IntFlag{Name: "top-k", Usage: "number of recommendations (0: engine default)"},
			&cli.IntFlag{Name: "budget", Usage: "tour time budget in minutes (0: time slot default)"},
			&cli.FloatFlag{Name: "diversity", Value: -1, Usage: "diversity factor in [0,1] (default: engine setting)"},
			&cli.Int64Flag{Name: "seed", Usage: "tour search seed for reproducible output"},
			&cli.BoolFlag{Name: "compact", Usage: "print single-line JSON"},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	eng, err := loadEngine(cmd.String("catalog"))
	if err != nil {
		return err
	}

	sel := &recommend.UserSelections{
		AgeGroup:           recommend.AgeGroup(cmd.String("age-group")),
		GroupType:          recommend.GroupType(cmd.String("group-type")),
		HasChildren:        cmd.Bool("children"),
		TimeSlot:           recommend.TimeSlot(cmd.String("time-slot")),
		Interests:          cmd.StringSlice("interest"),
		LearningStyle:      recommend.LearningStyle(cmd.String("learning-style")),
		EnergyLevel:        recommend.Level(cmd.String("energy")),
		CrowdTolerance:     recommend.Level(cmd.String("crowd")),
		AccessibilityNeeds: cmd.StringSlice("accessibility"),
	}
	for _, c := range cmd.StringSlice("category") {
		sel.PreferredCategories = append(sel.PreferredCategories, recommend.Category(c))
	}

	opts := &recommend.Options{
		TopK:              cmd.Int("top-k"),
		TimeBudgetMinutes: cmd.Int("budget"),
	}
	if d := cmd.Float("diversity"); d >= 0 {
		opts.DiversityFactor = &d
	}
	if cmd.IsSet("seed") {
		seed := cmd.Int64("seed")
		opts.Seed = &seed
	}

	var history []recommend.InteractionEvent
	if path := cmd.String("history"); path != "" {
		history, err = readHistory(path)
		if err != nil {
			return err
		}
	}

	result, err := eng.Analyze(ctx, sel, history, opts)
	if err != nil {
		return err
	}
	return writeJSON(cmd.Root().Writer, result, !cmd.Bool("compact"))
}

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Inspect exhibit catalogs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List exhibits",
				Flags: []cli.Flag{
					catalogFlag(),
					&cli.StringFlag{Name: "category", Usage: "only this category"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: runCatalogList,
			},
			{
				Name:      "validate",
				Usage:     "Check a catalog file and print its fingerprint",
				ArgsUsage: "FILE",
				Action:    runCatalogValidate,
			},
		},
	}
}

func runCatalogList(_ context.Context, cmd *cli.Command) error {
	records, _, err := catalog.Load(cmd.String("catalog"))
	if err != nil {
		return err
	}
	cat, err := recommend.NewCatalog(records)
	if err != nil {
		return err
	}

	filter := recommend.Category(strings.ToLower(cmd.String("category")))
	var out []recommend.ExhibitRecord
	for _, rec := range cat.Records() {
		if filter == "" || rec.Category == filter {
			out = append(out, rec)
		}
	}

	w := cmd.Root().Writer
	if cmd.Bool("json") {
		return writeJSON(w, out, true)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tAGE\tMINUTES\tFLOOR")
	for _, rec := range out {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			rec.ID, rec.Name, rec.Category, rec.AgeGroup, rec.DurationMinutes, rec.Location.Floor)
	}
	return tw.Flush()
}

// CatalogReport is the output of catalog validate.
type CatalogReport struct {
	Path       string               `json:"path"`
	Exhibits   int                  `json:"exhibits"`
	Categories []recommend.Category `json:"categories"`
	Version    string               `json:"version"`
}

func runCatalogValidate(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("catalog validate: FILE argument is required")
	}
	records, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	cat, err := recommend.NewCatalog(records)
	if err != nil {
		return err
	}
	return writeJSON(cmd.Root().Writer, CatalogReport{
		Path:       path,
		Exhibits:   cat.Len(),
		Categories: cat.Categories(),
		Version:    cat.Version(),
	}, true)
}

func loadEngine(path string) (*engine.Engine, error) {
	records, source, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(nil, recommend.NewLogRecorder(logging.WithComponent("engine")))
	if err != nil {
		return nil, err
	}
	if err := eng.Initialize(records); err != nil {
		return nil, err
	}
	logging.Debug().Str("source", source).Int("exhibits", len(records)).Msg("catalog loaded")
	return eng, nil
}

func readHistory(path string) ([]recommend.InteractionEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var events []recommend.InteractionEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", path, err)
	}
	return events, nil
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
