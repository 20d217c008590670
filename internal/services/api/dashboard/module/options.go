package module

import (
	"time"

	"salesboard/internal/core/aggregate"
	"salesboard/internal/core/report"
	"salesboard/internal/platform/config"
	"salesboard/internal/platform/logger"
	dashsvc "salesboard/internal/services/api/dashboard/service"
)

// FromConfig reads SALES_* report defaults; a bad trend window falls back to
// the default window with a warning
func FromConfig(cfg config.Conf) dashsvc.Config {
	sc := cfg.Prefix("SALES_")
	def := report.DefaultOptions()

	out := dashsvc.Config{
		Defaults: report.Options{
			Compare: aggregate.Comparison{
				Previous: sc.MayIntIn("PREV_YEAR", def.Compare.Previous, 1900, 2100),
				Current:  sc.MayIntIn("CUR_YEAR", def.Compare.Current, 1900, 2100),
			},
			Trend: def.Trend,
		},
		Currency: sc.MayString("CURRENCY", "£"),
	}

	start := sc.MayString("TREND_START", def.Trend.Start.Format(time.DateOnly))
	end := sc.MayString("TREND_END", def.Trend.End.Format(time.DateOnly))
	w, err := dashsvc.ParseWindow(start, end)
	if err != nil {
		logger.Get().Warn().Err(err).Str("start", start).Str("end", end).Msg("invalid trend window; using default")
		return out
	}
	out.Defaults.Trend = w
	return out
}
