package source

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"job-charts/internal/dataset"
	"job-charts/internal/infra/config"
	logging "job-charts/internal/infra/log"

	"github.com/lib/pq"
	_ "github.com/tursodatabase/go-libsql"
	"go.uber.org/zap"
)

// Query runs the fixed analysis queries over one shared connection
type Query struct {
	db      *sql.DB
	queries map[string]string
}

// Open connects to the configured store and pings it.
// Any failure here is ErrSourceUnavailable.
func Open(ctx context.Context, cfg config.DBConfig) (*Query, error) {
	logging.LogInfo("Connecting to database...", zap.String("driver", cfg.Driver), zap.String("dsn", cfg.Redacted()))

	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w: %v", cfg.Driver, ErrSourceUnavailable, err)
	}

	// queries run one after another
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	start := time.Now()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach %s: %w: %v", cfg.Redacted(), ErrSourceUnavailable, err)
	}
	logging.LogSuccess("Connected to database", zap.String("driver", cfg.Driver), zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	return NewQuery(db), nil
}

// NewQuery wraps an already opened database
func NewQuery(db *sql.DB) *Query {
	return &Query{db: db, queries: queries}
}

func (q *Query) Close() error {
	return q.db.Close()
}

func (q *Query) Load(ctx context.Context, name string) (*dataset.Dataset, error) {
	text, ok := q.queries[name]
	if !ok {
		return nil, fmt.Errorf("query %s: %w", name, ErrUnknownDataset)
	}

	start := time.Now()
	rows, err := q.db.QueryContext(ctx, text)
	if err != nil {
		return nil, wrapQueryError(name, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, wrapQueryError(name, err)
	}

	var raw [][]any
	for rows.Next() {
		cells := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, wrapQueryError(name, err)
		}
		raw = append(raw, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError(name, err)
	}

	columns := make([]dataset.Column, len(types))
	for i, ct := range types {
		columns[i] = dataset.Column{Name: ct.Name(), Kind: columnKind(ct.DatabaseTypeName(), raw, i)}
	}

	ds, err := dataset.New(name, columns, raw)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}

	logging.LogInfo("Query finished",
		zap.String("dataset", name),
		zap.Int("rows", ds.Len()),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return ds, nil
}

// columnKind trusts the declared database type when it is numeric or textual,
// otherwise (SQLite expressions have no declared type) looks at the scanned values.
func columnKind(typeName string, raw [][]any, col int) dataset.Kind {
	t := strings.ToUpper(typeName)
	switch {
	case t == "":
	case strings.Contains(t, "INT"), strings.Contains(t, "NUMERIC"), strings.Contains(t, "DECIMAL"),
		strings.Contains(t, "FLOAT"), strings.Contains(t, "DOUBLE"), strings.Contains(t, "REAL"):
		return dataset.KindNumber
	case strings.Contains(t, "CHAR"), strings.Contains(t, "TEXT"), strings.Contains(t, "CLOB"):
		return dataset.KindString
	}

	seen := false
	for _, row := range raw {
		switch row[col].(type) {
		case nil:
		case int64, float64, int32, float32, int:
			seen = true
		default:
			return dataset.KindString
		}
	}
	if !seen {
		return dataset.KindString
	}
	return dataset.KindNumber
}

func wrapQueryError(name string, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("query %s: %w: %v", name, ErrSourceUnavailable, err)
	}
	return fmt.Errorf("query %s: %w", name, err)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 08xxx connection_exception, 57P0x operator intervention (shutdown)
		return pqErr.Code.Class() == "08" || strings.HasPrefix(string(pqErr.Code), "57P")
	}
	return false
}
