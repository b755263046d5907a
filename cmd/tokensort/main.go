package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tokensort/internal/automation"
	"github.com/san-kum/tokensort/internal/catalog"
	"github.com/san-kum/tokensort/internal/config"
	"github.com/san-kum/tokensort/internal/engine"
	"github.com/san-kum/tokensort/internal/geom"
	"github.com/san-kum/tokensort/internal/storage"
	"github.com/san-kum/tokensort/internal/tui"
)

var (
	dataDir     string
	configFile  string
	catalogFile string
	preset      string
	seed        int64
	scenario    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tokensort",
		Short: "physics-driven token sorting game",
		RunE:  runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tokensort", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "tuning file (yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "tuning preset")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "start an interactive sorting session",
		RunE:  runPlay,
	}

	autoCmd := &cobra.Command{
		Use:   "auto",
		Short: "replay a scripted session without a terminal",
		RunE:  runAuto,
	}
	autoCmd.Flags().StringVar(&scenario, "scenario", "", "scenario file (yaml)")

	bestCmd := &cobra.Command{
		Use:   "best",
		Short: "show the best completion time",
		RunE:  runBest,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "plot completion times",
		RunE:  runHistory,
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "list the items and categories in play",
		RunE:  runCatalog,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list tuning presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, autoCmd, bestCmd, historyCmd, catalogCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadTuning(cmd *cobra.Command) (*config.Tuning, error) {
	tuning := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		tuning = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load tuning: %w", err)
		}
		tuning = loaded
	}
	if cmd.Flags().Changed("seed") || seed != 0 {
		tuning.Seed = seed
	}
	return tuning, nil
}

func loadCatalog() (*catalog.Catalog, error) {
	if catalogFile == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(catalogFile)
}

func openLedger() (*storage.Ledger, error) {
	led := storage.New(dataDir)
	if err := led.Init(); err != nil {
		return nil, err
	}
	return led, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	tuning, err := loadTuning(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	led, err := openLedger()
	if err != nil {
		return err
	}
	return tui.Run(tuning, cat, led)
}

// autoLayout is the fixed virtual container for headless runs: a generous
// play area with the bucket row split evenly along the bottom.
func autoLayout(cats int) (geom.Rect, []geom.Rect) {
	bounds := geom.NewRect(0, 0, 120, 40)
	bw := bounds.W / float64(cats)
	rects := make([]geom.Rect, cats)
	for i := range rects {
		rects[i] = geom.NewRect(float64(i)*bw, 34, bw, 6)
	}
	return bounds, rects
}

func runAuto(cmd *cobra.Command, args []string) error {
	tuning, err := loadTuning(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	led, err := openLedger()
	if err != nil {
		return err
	}

	s := automation.DefaultScenario(cat)
	if scenario != "" {
		s, err = automation.LoadScenario(scenario)
		if err != nil {
			return err
		}
	}

	eng, err := engine.New(engine.Options{Tuning: tuning, Catalog: cat, Ledger: led})
	if err != nil {
		return err
	}
	bounds, rects := autoLayout(len(cat.Categories))
	if err := eng.Start(bounds, rects); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("replaying %s (%d moves)...\n", s.Name, len(s.Moves))
	report, err := automation.Run(ctx, eng, s)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tOUTCOME\tSORTED")
	for _, mv := range report.Moves {
		fmt.Fprintf(w, "%s\t%s\t%v\n", mv.Item, mv.Outcome, mv.Sorted)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nsorted %d/%d in %dms\n", report.Sorted, report.Total, report.ElapsedMs)
	if report.NewBest {
		fmt.Println("new best time")
	}
	return nil
}

func runBest(cmd *cobra.Command, args []string) error {
	led, err := openLedger()
	if err != nil {
		return err
	}
	best, ok := led.Best()
	if !ok {
		fmt.Println("no completions recorded yet")
		return nil
	}
	fmt.Printf("best: %dms (%.1fs)\n", best, float64(best)/1000)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	led, err := openLedger()
	if err != nil {
		return err
	}
	records := led.History()
	if len(records) == 0 {
		fmt.Println("no completions recorded yet")
		return nil
	}

	data := make([]float64, len(records))
	for i, rec := range records {
		data[i] = float64(rec.ElapsedMs) / 1000
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("completion time (s)"),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTIME\tBEST")
	for _, rec := range records {
		marker := ""
		if rec.NewBest {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%.1fs\t%s\n",
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			float64(rec.ElapsedMs)/1000,
			marker,
		)
	}
	return w.Flush()
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	fmt.Printf("%d items in %d categories\n\n", len(cat.Items), len(cat.Categories))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tCATEGORY")
	for _, it := range cat.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", it.ID, it.Label, it.Category)
	}
	return w.Flush()
}
