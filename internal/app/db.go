package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/knight-arena/internal/config"
)

const (
	tracedQueryLimit       = 512
	preparedBinaryParam    = "disable_prepared_binary_result"
	dsnDatabaseNameKeyword = "dbname="
)

var (
	sqlWhitespace    = regexp.MustCompile(`\s+`)
	sqlStringLiteral = regexp.MustCompile(`'(?:[^']|'')*'`)
)

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(dsn)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// postgresDSN turns off binary results for prepared statements unless the
// URL already says otherwise. Keyword/value DSNs are returned as given.
func postgresDSN(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	q := parsed.Query()
	if q.Get(preparedBinaryParam) != "" {
		return raw
	}
	q.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

// databaseName reads the database from either a postgres:// URL or a
// keyword/value DSN.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/ ")
	}
	for _, field := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(field, dsnDatabaseNameKeyword); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// traceQuery flattens a statement onto one line and masks inline string
// literals so seed data and comment bodies stay out of span attributes.
func traceQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	query = sqlWhitespace.ReplaceAllString(query, " ")
	query = sqlStringLiteral.ReplaceAllString(query, "'?'")
	if len(query) <= tracedQueryLimit {
		return query
	}

	cut := tracedQueryLimit
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
