// Command salesboard-seed validates the processed sales files and loads
// them into postgres and/or clickhouse
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"salesboard/internal/modkit/repokit"
	"salesboard/internal/platform/config"
	"salesboard/internal/platform/logger"
	"salesboard/internal/platform/store"
	"salesboard/internal/services/facts/repo"
	"salesboard/internal/services/facts/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "salesboard-seed:", err)
		os.Exit(1)
	}
}

func run() error {
	envErr := godotenv.Load()

	root := config.New()
	sc := root.Prefix("SALES_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	var (
		factsPath    string
		stationsPath string
		targets      []string
		noSchema     bool
		dryRun       bool
	)
	flagSet := pflag.NewFlagSet("salesboard-seed", pflag.ContinueOnError)
	flagSet.StringVar(&factsPath, "facts", sc.MayString("FACTS_PATH", "data/sales_processed.csv"), "processed sales csv")
	flagSet.StringVar(&stationsPath, "stations", sc.MayString("STATIONS_PATH", ""), "station registry csv (optional)")
	flagSet.StringSliceVarP(&targets, "target", "t", []string{"pg"}, "backends to seed: pg, ch")
	flagSet.BoolVar(&noSchema, "no-schema", false, "skip CREATE TABLE IF NOT EXISTS")
	flagSet.BoolVarP(&dryRun, "dry-run", "n", false, "validate the files and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	l := logger.Get()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		l.Warn().Err(envErr).Msg("failed to read .env")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := service.NewCSV(repo.NewCSV(factsPath, stationsPath), *l)
	ds, err := src.Load(ctx)
	if err != nil {
		return err
	}
	if dryRun {
		info := ds.Info()
		l.Info().Int("rows", info.Rows).Int("stations", info.Stations).Ints("years", info.Years).Msg("dry run: files are valid")
		return nil
	}

	var cfg store.Config
	for _, t := range targets {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "pg":
			cfg.PG = store.PGFromConf(pgCfg)
		case "ch":
			cfg.CH = store.CHFromConf(chCfg, "seed")
		default:
			return fmt.Errorf("unknown target %q (want pg or ch)", t)
		}
	}

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var sinks []*service.Service
	if st.PG != nil {
		sinks = append(sinks, service.NewPG(repokit.WithBeginHooks(st.PG, repo.BulkLoadHook), repo.NewPG(), *l))
	}
	if st.CH != nil {
		sinks = append(sinks, service.NewCH(repo.NewCH(st.CH), *l))
	}

	rows, stations := ds.Table.Rows(), ds.Registry.Names()
	for _, s := range sinks {
		if !noSchema {
			if err := s.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("%s schema: %w", s.Source(), err)
			}
		}
		if err := s.Replace(ctx, rows, stations); err != nil {
			return fmt.Errorf("%s seed: %w", s.Source(), err)
		}
	}
	return nil
}
