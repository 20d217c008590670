package module

import (
	"salesboard/internal/platform/config"
	"salesboard/internal/services/facts/domain"
)

// Options holds configuration settings for the facts module
type Options struct {
	Source       domain.Source
	FactsPath    string
	StationsPath string
	Preload      bool
}

// FromConfig reads SALES_* settings
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("SALES_")
	return Options{
		Source:       domain.Source(sc.MayEnum("SOURCE", "csv", "csv", "pg", "ch")),
		FactsPath:    sc.MayString("FACTS_PATH", "data/sales_processed.csv"),
		StationsPath: sc.MayString("STATIONS_PATH", ""),
		Preload:      sc.MayBool("PRELOAD", true),
	}
}
