package store

import (
	"time"

	"salesboard/internal/platform/config"
)

// Config selects the backends to open; disabled ones stay nil on the Store
type Config struct {
	PG PGConfig
	CH CHConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
	LogSQL   bool
	Slow     time.Duration
	Retries  int
}

// CHConfig configures the clickhouse connection
type CHConfig struct {
	Enabled bool
	URL     string
	LogSQL  bool
	Tag     string
}

// PGFromConf reads DBURL, MAX_CONNS, SLOW_MS, LOG_SQL and CONNECT_RETRIES under c
func PGFromConf(c config.Conf) PGConfig {
	return PGConfig{
		Enabled:  true,
		URL:      c.MustString("DBURL"),
		MaxConns: int32(c.MayIntIn("MAX_CONNS", 4, 1, 64)),
		LogSQL:   c.MayBool("LOG_SQL", false),
		Slow:     time.Duration(c.MayInt("SLOW_MS", 500)) * time.Millisecond,
		Retries:  c.MayIntIn("CONNECT_RETRIES", 10, 1, 100),
	}
}

// CHFromConf reads DBURL and LOG_SQL under c; tag names the calling process
func CHFromConf(c config.Conf, tag string) CHConfig {
	return CHConfig{
		Enabled: true,
		URL:     c.MustString("DBURL"),
		LogSQL:  c.MayBool("LOG_SQL", false),
		Tag:     tag,
	}
}
