// Package api provides the HTTP API for the application
package api

import (
	"slices"

	"salesboard/internal/platform/config"
	"salesboard/internal/platform/logger"
	phttp "salesboard/internal/platform/net/http"
	"salesboard/internal/platform/store"

	"salesboard/internal/modkit"
	"salesboard/internal/modkit/httpkit"
	"salesboard/internal/modkit/swaggerkit"

	dashhttp "salesboard/internal/services/api/dashboard/http"
	dashmod "salesboard/internal/services/api/dashboard/module"
	metahttp "salesboard/internal/services/api/meta/http"
	metamod "salesboard/internal/services/api/meta/module"

	// facts owns the dataset ports
	factsmod "salesboard/internal/services/facts/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	// Store may be nil when the csv source needs no database
	Store  *store.Store
	Logger *logger.Logger
	// Facts is the already constructed facts module; nil builds one from config
	Facts          *factsmod.Module
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		if opt.Store.PG != nil {
			deps.PG = opt.Store.PG
		}
		if opt.Store.CH != nil {
			deps.CH = opt.Store.CH
		}
	}

	// construct facts first and extract its ports
	facts := opt.Facts
	if facts == nil {
		facts = factsmod.New(deps)
	}
	fp := modkit.MustPortsOf[factsmod.Ports](facts)

	mods := []modkit.Module{
		facts,
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Facts: facts.Service()})),
		dashmod.New(deps, modkit.WithPorts(dashmod.Ports{Provider: fp.Provider})),
	}

	swaggerkit.Mount(r, opt.EnableSwagger, httpkit.V1, slices.Concat(metahttp.Docs, dashhttp.Docs)...)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
