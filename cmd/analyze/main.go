package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"catalyst/internal/engine"
	"catalyst/internal/infra"
	"catalyst/internal/providers/suggest"
)

// analyze runs the pipeline against one local file and prints the payload,
// the same JSON the upload endpoint would answer with.
func main() {
	_ = godotenv.Load()

	var (
		path   = flag.String("file", "", "tabular file to analyze (.csv, .xlsx or .json)")
		pretty = flag.Bool("pretty", false, "indent the payload JSON")
	)
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -file data.csv [-pretty]")
		os.Exit(2)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open input")
	}
	defer f.Close()

	eng := engine.New(engine.Options{
		NumericImputation: cfg.NumericImputation,
		TextLengthMin:     cfg.TextLengthMin,
		BarTopCategories:  cfg.BarTopCategories,
		TimeSeriesMax:     cfg.TimeSeriesMax,
		PreviewRows:       cfg.PreviewRows,
		Suggester:         suggest.NewFromConfig(cfg, logger),
		SuggestTimeout:    cfg.SuggestTimeout,
		Logger:            &logger,
	})

	payload, err := eng.Analyze(context.Background(), *path, f)
	if err != nil {
		logger.Fatal().Err(err).Msg("analysis failed")
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(payload); err != nil {
		logger.Fatal().Err(err).Msg("failed to encode payload")
	}
}
