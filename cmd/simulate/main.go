// Package main runs an offline Monte Carlo report for a configured pool.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xtding233/gacha-bot/internal/gacha"
	"github.com/xtding233/gacha-bot/internal/game"
)

type options struct {
	configDir string
	game      string
	pool      string
	trials    int
	batches   int
	draws     int
	seed      uint64
	asJSON    bool
}

type report struct {
	Game        string             `json:"game,omitempty"`
	Pool        string             `json:"pool,omitempty"`
	Frequencies map[string]float64 `json:"frequencies"`
	Expected    map[string]float64 `json:"expected"`
	FirstTier3  gacha.Stats        `json:"first_tier3"`
	FixedBudget gacha.Stats        `json:"fixed_budget"`
	Batches     int                `json:"batches"`
}

func main() {
	var opt options
	flag.StringVar(&opt.configDir, "config-dir", "configs", "directory holding games/")
	flag.StringVar(&opt.game, "game", "", "game name (default pool when empty)")
	flag.StringVar(&opt.pool, "pool", "", "pool name inside the game")
	flag.IntVar(&opt.trials, "trials", 20000, "Monte Carlo trials per goal")
	flag.IntVar(&opt.batches, "batches", 20, "ten-draws per fixed-budget trial")
	flag.IntVar(&opt.draws, "draws", 1000000, "draws for the tier frequency check")
	flag.Uint64Var(&opt.seed, "seed", 0, "random seed for reproducibility (0 = random)")
	flag.BoolVar(&opt.asJSON, "json", false, "print the report as JSON")
	flag.Parse()

	if err := run(opt, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opt options, out io.Writer) error {
	_, resolved, err := game.NewLoader(opt.configDir).Resolve(opt.game, opt.pool)
	if err != nil {
		return err
	}
	seed := opt.seed
	if seed == 0 {
		seed = gacha.NewSeed()
	}
	engine, err := gacha.NewEngine(resolved.Engine, gacha.NewSeededRNG(seed))
	if err != nil {
		return err
	}

	rep := report{
		Game:        opt.game,
		Pool:        opt.pool,
		Frequencies: map[string]float64{},
		Expected:    map[string]float64{},
		FirstTier3:  gacha.RunMonteCarlo(engine, gacha.GoalFirstTier3, opt.trials, nil),
		FixedBudget: gacha.RunMonteCarlo(engine, gacha.GoalFixedBudget, opt.trials, &gacha.SimBudget{NumBatches: opt.batches}),
		Batches:     opt.batches,
	}
	for t, f := range gacha.TierFrequencies(engine, opt.draws) {
		rep.Frequencies[t.String()] = f
		rep.Expected[t.String()] = resolved.Engine.Tiers[t].Probability
	}

	if opt.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return writeTable(out, rep)
}

func writeTable(out io.Writer, rep report) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Pool: %s\n\n", title(rep.Game, rep.Pool))
	fmt.Fprintln(tw, "TIER\tEXPECTED\tOBSERVED")
	for _, t := range gacha.Tiers() {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\n", t, rep.Expected[t.String()], rep.Frequencies[t.String()])
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "GOAL\tMEAN\tSTDDEV\tP50\tP90\tP99\tMAX")
	row := func(name string, s gacha.Stats) {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.0f\t%.0f\t%.0f\t%d\n", name, s.Mean, s.StdDev, s.P50, s.P90, s.P99, s.Max)
	}
	row("draws to first tier3", rep.FirstTier3)
	row(fmt.Sprintf("tier3 in %d ten-draws", rep.Batches), rep.FixedBudget)
	return tw.Flush()
}

func title(gameName, pool string) string {
	if gameName == "" {
		return "Default"
	}
	caser := cases.Title(language.English)
	if pool == "" {
		return caser.String(gameName)
	}
	return caser.String(gameName) + " / " + caser.String(pool)
}
