// @title         Salesboard API
// @version       0.1.0
// @description   Cascading filters and summary tables over daily ticket sales

package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"salesboard/internal/modkit"
	"salesboard/internal/platform/config"
	"salesboard/internal/platform/logger"
	phttp "salesboard/internal/platform/net/http"
	"salesboard/internal/platform/store"
	"salesboard/internal/services/facts/domain"

	"salesboard/internal/services/api"
	factsmod "salesboard/internal/services/facts/module"
)

func main() {
	// .env is optional; real env vars win
	envErr := godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		l.Warn().Err(envErr).Msg("failed to read .env")
	}

	// only the backend the fact store reads from is opened
	factsOpts := factsmod.FromConfig(root)
	var cfg store.Config
	switch factsOpts.Source {
	case domain.SourcePostgres:
		cfg.PG = store.PGFromConf(pgCfg)
	case domain.SourceClickhouse:
		cfg.CH = store.CHFromConf(chCfg, "api")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Log: *l, Cfg: root, PG: st.PG, CH: st.CH}
	facts := factsmod.NewWithOptions(deps, factsOpts)
	if factsOpts.Preload {
		if _, err := facts.Service().Load(ctx); err != nil {
			l.Panic().Err(err).Msg("fact store load failed")
		}
	}

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Facts:          facts,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run until SIGINT or SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
