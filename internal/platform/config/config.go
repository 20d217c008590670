// Package config reads settings from prefixed environment variables.
// Must* accessors log and panic on a missing or bad value, May* accessors
// log and fall back to the default.
package config

import (
	"os"
	"strconv"
	"strings"

	"salesboard/internal/platform/logger"
)

// Conf is a view over the environment under a key prefix such as "SALES_"
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix returns a child view; prefixes nest
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the full variable name for key
func (c Conf) Key(key string) string { return c.prefix + key }

func (c Conf) get(key string) string { return strings.TrimSpace(os.Getenv(c.Key(key))) }

// MustString returns the value of key or panics when it is unset or blank
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the value of key or def
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayBool returns the value of key or def; unparsable values warn
func (c Conf) MayBool(key string, def bool) bool {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.fallback(key, s, strconv.FormatBool(def))
		return def
	}
	return v
}

// MayInt returns the value of key or def; unparsable values warn
func (c Conf) MayInt(key string, def int) int {
	return c.MayIntIn(key, def, minInt, maxInt)
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)

// MayIntIn is MayInt restricted to [lo, hi]; out of range values warn and
// fall back to def
func (c Conf) MayIntIn(key string, def, lo, hi int) int {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < lo || v > hi {
		c.fallback(key, s, strconv.Itoa(def))
		return def
	}
	return v
}

// MayEnum returns the allowed value matching key case-insensitively, def
// when unset, and panics on anything else
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.get(key)
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

func (c Conf) fallback(key, got, def string) {
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", got).Str("default", def).Msg("invalid env value; using default")
}
