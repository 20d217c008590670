package ch

import (
	"os"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"

	"salesboard/internal/core/version"
)

// BuildClientInfo names this process in clickhouse's system.query_log
// name is the product ("salesboard") and tag the role ("api", "seed")
func BuildClientInfo(name, tag string) clickhouse.ClientInfo {
	bi := version.Info()
	host, _ := os.Hostname()
	return clickhouse.ClientInfo{
		Products: []struct{ Name, Version string }{
			{Name: orUnknown(name), Version: orUnknown(tag)},
			{Name: "build", Version: orUnknown(bi.Version + "+" + bi.Commit)},
			{Name: "host", Version: orUnknown(host)},
		},
	}
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return "unknown"
}
