// Package output provides the Postgres telemetry sink. Events land in
// per-topic fact tables, batched into COPY round trips.
package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// flushThreshold is how many rows a table buffers before a COPY.
const flushThreshold = 100

const schema = `
CREATE TABLE IF NOT EXISTS fact_visit (
    id BIGSERIAL PRIMARY KEY,
    timestamp BIGINT NOT NULL,
    event_type TEXT,
    customer_id TEXT,
    customer_name TEXT,
    relationship_level TEXT,
    visit_count INTEGER,
    is_returning BOOLEAN,
    persona TEXT
);

CREATE TABLE IF NOT EXISTS fact_order (
    id BIGSERIAL PRIMARY KEY,
    timestamp BIGINT NOT NULL,
    event_type TEXT,
    customer_id TEXT,
    customer_name TEXT,
    order_id TEXT,
    description TEXT,
    item_count INTEGER,
    subtotal DOUBLE PRECISION,
    tax DOUBLE PRECISION,
    total DOUBLE PRECISION,
    status TEXT
);

CREATE TABLE IF NOT EXISTS fact_brew (
    id BIGSERIAL PRIMARY KEY,
    timestamp BIGINT NOT NULL,
    event_type TEXT,
    customer_id TEXT,
    customer_name TEXT,
    order_id TEXT,
    drink TEXT,
    grind TEXT,
    water_temp DOUBLE PRECISION,
    brew_time DOUBLE PRECISION,
    quality DOUBLE PRECISION,
    temperature_score DOUBLE PRECISION,
    timing_score DOUBLE PRECISION,
    grind_score DOUBLE PRECISION,
    milk_score DOUBLE PRECISION,
    duration DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS fact_serve (
    id BIGSERIAL PRIMARY KEY,
    timestamp BIGINT NOT NULL,
    event_type TEXT,
    customer_id TEXT,
    customer_name TEXT,
    order_id TEXT,
    quality DOUBLE PRECISION,
    satisfaction DOUBLE PRECISION,
    mood TEXT,
    payment DOUBLE PRECISION,
    tip DOUBLE PRECISION,
    wait_minutes DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS fact_comment (
    id BIGSERIAL PRIMARY KEY,
    timestamp BIGINT NOT NULL,
    event_type TEXT,
    customer_id TEXT,
    customer_name TEXT,
    comment TEXT,
    liked BOOLEAN,
    satisfaction DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS fact_purchase (
    id BIGSERIAL PRIMARY KEY,
    timestamp BIGINT NOT NULL,
    event_type TEXT,
    item_id TEXT,
    item_name TEXT,
    category TEXT,
    tier INTEGER,
    price DOUBLE PRECISION,
    money_after DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS fact_day_summary (
    id BIGSERIAL PRIMARY KEY,
    timestamp BIGINT NOT NULL,
    event_type TEXT,
    day INTEGER,
    customers_served INTEGER,
    drinks_served INTEGER,
    revenue DOUBLE PRECISION,
    tips DOUBLE PRECISION,
    avg_quality DOUBLE PRECISION,
    avg_satisfaction DOUBLE PRECISION,
    returning_rate DOUBLE PRECISION,
    closing_money DOUBLE PRECISION,
    reputation DOUBLE PRECISION
);
`

// tableKeys fixes the JSON field order copied into each table. Missing
// fields land as NULL, so omitempty payloads stay loadable.
var tableKeys = map[string][]string{
	"fact_visit":       {"timestamp", "eventType", "customerId", "customerName", "relationshipLevel", "visitCount", "isReturning", "persona"},
	"fact_order":       {"timestamp", "eventType", "customerId", "customerName", "orderId", "description", "itemCount", "subtotal", "tax", "total", "status"},
	"fact_brew":        {"timestamp", "eventType", "customerId", "customerName", "orderId", "drink", "grind", "waterTemp", "brewTime", "quality", "temperatureScore", "timingScore", "grindScore", "milkScore", "duration"},
	"fact_serve":       {"timestamp", "eventType", "customerId", "customerName", "orderId", "quality", "satisfaction", "mood", "payment", "tip", "waitMinutes"},
	"fact_comment":     {"timestamp", "eventType", "customerId", "customerName", "comment", "liked", "satisfaction"},
	"fact_purchase":    {"timestamp", "eventType", "itemId", "itemName", "category", "tier", "price", "moneyAfter"},
	"fact_day_summary": {"timestamp", "eventType", "day", "customersServed", "drinksServed", "revenue", "tips", "avgQuality", "avgSatisfaction", "returningRate", "closingMoney", "reputation"},
}

// integerKeys marks fields stored in integer columns. JSON numbers
// decode as float64 and COPY wants the real column type.
var integerKeys = map[string]bool{
	"timestamp":       true,
	"visitCount":      true,
	"itemCount":       true,
	"tier":            true,
	"day":             true,
	"customersServed": true,
	"drinksServed":    true,
}

type PostgresOutput struct {
	pool    *pgxpool.Pool
	mu      sync.Mutex
	pending map[string][]map[string]interface{}

	// copyFn performs one table's COPY round trip; tests stub it out.
	copyFn func(ctx context.Context, table string, events []map[string]interface{}) error
}

func NewPostgresOutput(connStr string) (*PostgresOutput, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	p := &PostgresOutput{
		pool:    pool,
		pending: make(map[string][]map[string]interface{}),
	}
	p.copyFn = p.copyBatch

	if _, err := pool.Exec(context.Background(), schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error creating telemetry tables: %w", err)
	}

	return p, nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}

	table := topicToTable(topic)
	if _, ok := tableKeys[table]; !ok {
		return fmt.Errorf("no table mapping for topic %s", topic)
	}

	p.mu.Lock()
	p.pending[table] = append(p.pending[table], event)
	flush := len(p.pending[table]) >= flushThreshold
	p.mu.Unlock()

	if flush {
		return p.Flush()
	}
	return nil
}

// Flush copies every pending batch into its table, one attempt per table.
// A failing copy drops only its own rows; the remaining tables still
// flush, and the failures come back joined.
func (p *PostgresOutput) Flush() error {
	p.mu.Lock()
	batches := p.pending
	p.pending = make(map[string][]map[string]interface{})
	p.mu.Unlock()

	ctx := context.Background()
	var errs []error
	for table, events := range batches {
		if len(events) == 0 {
			continue
		}
		if err := p.copyFn(ctx, table, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *PostgresOutput) copyBatch(ctx context.Context, table string, events []map[string]interface{}) error {
	keys := tableKeys[table]
	columns := make([]string, len(keys))
	for i, key := range keys {
		columns[i] = snakeCaseKey(key)
	}

	_, err := p.pool.CopyFrom(
		ctx,
		pgx.Identifier{table},
		columns,
		pgx.CopyFromSlice(len(events), func(i int) ([]interface{}, error) {
			row := make([]interface{}, len(keys))
			for j, key := range keys {
				value := events[i][key]
				if f, ok := value.(float64); ok && integerKeys[key] {
					value = int64(f)
				}
				row[j] = value
			}
			return row, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy batch into %s: %w", table, err)
	}
	return nil
}

func (p *PostgresOutput) Close() error {
	if err := p.Flush(); err != nil {
		log.Printf("Error flushing pending events: %v", err)
	}
	p.pool.Close()
	return nil
}

func topicToTable(topic string) string {
	tableMap := map[string]string{
		"cafe_visit_events":       "fact_visit",
		"cafe_order_events":       "fact_order",
		"cafe_brew_events":        "fact_brew",
		"cafe_serve_events":       "fact_serve",
		"cafe_comment_events":     "fact_comment",
		"cafe_purchase_events":    "fact_purchase",
		"cafe_day_summary_events": "fact_day_summary",
	}

	if table, ok := tableMap[topic]; ok {
		return table
	}
	// fall back to the topic name without its _events suffix
	tableName := strings.TrimSuffix(strings.TrimPrefix(topic, "cafe_"), "_events")
	return "fact_" + tableName
}

func snakeCaseKey(key string) string {
	var result strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}
