// SPDX-License-Identifier: MIT

package sqlitestore

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/inventory"
)

// ErrUnencodable signals an exchange distribution that has no portable record.
var ErrUnencodable = errors.New("sqlitestore: distribution has no portable record")

// schema is executed on every Open; IF NOT EXISTS keeps it idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS activities (
    id       INTEGER PRIMARY KEY,
    code     TEXT NOT NULL UNIQUE,
    name     TEXT NOT NULL DEFAULT '',
    db_name  TEXT NOT NULL DEFAULT '',
    kind     TEXT NOT NULL,
    static   BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS exchanges (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    input        INTEGER NOT NULL REFERENCES activities(id),
    output       INTEGER NOT NULL REFERENCES activities(id),
    kind         TEXT NOT NULL,
    amount       REAL NOT NULL,
    distribution TEXT
);

CREATE INDEX IF NOT EXISTS exchanges_pair ON exchanges (input, output);

CREATE TABLE IF NOT EXISTS method (
    flow   INTEGER PRIMARY KEY REFERENCES activities(id),
    factor REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS demand (
    process INTEGER PRIMARY KEY REFERENCES activities(id),
    amount  REAL NOT NULL
);
`

// Options configures a Store.
type Options struct {
	Logger *zap.Logger
}

// Option is a functional option for Open and New.
type Option func(*Options)

// WithLogger sets the logger. A nil logger means no logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
	}
}

// Store is a SQLite-backed inventory. It implements traversal.ExchangeStore.
type Store struct {
	db  *sql.DB
	reg distribution.Registry
	log *zap.Logger
}

// Open opens (or creates) the database at path and creates the schema.
// Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string, reg distribution.Registry, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "sqlitestore: open %s", path)
	}
	// One connection: SQLite has a single writer, and ":memory:" databases
	// are per connection.
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "sqlitestore: set busy timeout")
	}
	s := New(db, reg, opts...)
	if err = s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// New wraps an open database. Call Init before first use on a fresh database.
func New(db *sql.DB, reg distribution.Registry, opts ...Option) *Store {
	cfg := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if reg == nil {
		reg = distribution.NewRegistry()
	}

	return &Store{db: db, reg: reg, log: cfg.Logger}
}

// Init creates the schema.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "sqlitestore: create schema")
	}

	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save replaces the stored inventory with inv in one transaction.
func (s *Store) Save(ctx context.Context, inv *inventory.Inventory) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "sqlitestore: begin")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"demand", "method", "exchanges", "activities"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "sqlitestore: clear %s", table)
		}
	}

	const insertActivity = `INSERT INTO activities (id, code, name, db_name, kind, static) VALUES (?, ?, ?, ?, ?, ?)`
	for _, a := range inv.Activities {
		if _, err = tx.ExecContext(ctx, insertActivity, a.ID, a.Code, a.Name, a.Database, string(a.Kind), a.Static); err != nil {
			return errors.Wrapf(err, "sqlitestore: insert activity %d", a.ID)
		}
	}

	const insertExchange = `INSERT INTO exchanges (input, output, kind, amount, distribution) VALUES (?, ?, ?, ?, ?)`
	for _, e := range inv.Exchanges {
		var raw sql.NullString
		if raw, err = encode(e); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, insertExchange, e.Input, e.Output, string(e.Kind), e.Amount, raw); err != nil {
			return errors.Wrapf(err, "sqlitestore: insert exchange %d -> %d", e.Input, e.Output)
		}
	}

	for flow, factor := range inv.Method {
		if _, err = tx.ExecContext(ctx, `INSERT INTO method (flow, factor) VALUES (?, ?)`, flow, factor); err != nil {
			return errors.Wrapf(err, "sqlitestore: insert factor of flow %d", flow)
		}
	}
	for process, amount := range inv.Demand {
		if _, err = tx.ExecContext(ctx, `INSERT INTO demand (process, amount) VALUES (?, ?)`, process, amount); err != nil {
			return errors.Wrapf(err, "sqlitestore: insert demand of process %d", process)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "sqlitestore: commit")
	}
	s.log.Info("inventory saved",
		zap.Int("activities", len(inv.Activities)),
		zap.Int("exchanges", len(inv.Exchanges)),
	)

	return nil
}

func encode(e inventory.Exchange) (sql.NullString, error) {
	if e.Distribution == nil {
		return sql.NullString{}, nil
	}
	rec, ok := e.Distribution.(distribution.Recorder)
	if !ok {
		return sql.NullString{}, errors.Wrapf(ErrUnencodable, "exchange %d -> %d: %T", e.Input, e.Output, e.Distribution)
	}
	b, err := distribution.Encode(rec)
	if err != nil {
		return sql.NullString{}, err
	}

	return sql.NullString{String: string(b), Valid: true}, nil
}

const selectExchanges = `SELECT input, output, kind, amount, distribution FROM exchanges`

// Exchanges returns every exchange from input to output in insertion order,
// without the output's production of its own product.
func (s *Store) Exchanges(ctx context.Context, input, output int) ([]inventory.Exchange, error) {
	rows, err := s.db.QueryContext(ctx,
		selectExchanges+` WHERE input = ? AND output = ? AND NOT (kind = 'production' AND input = output) ORDER BY id`,
		input, output)
	if err != nil {
		return nil, errors.Wrapf(err, "sqlitestore: query exchanges %d -> %d", input, output)
	}

	return s.scanExchanges(rows)
}

func (s *Store) scanExchanges(rows *sql.Rows) ([]inventory.Exchange, error) {
	defer rows.Close()

	var out []inventory.Exchange
	for rows.Next() {
		var (
			e    inventory.Exchange
			kind string
			raw  sql.NullString
		)
		if err := rows.Scan(&e.Input, &e.Output, &kind, &e.Amount, &raw); err != nil {
			return nil, errors.Wrap(err, "sqlitestore: scan exchange")
		}
		e.Kind = inventory.ExchangeKind(kind)
		if raw.Valid {
			f, err := s.reg.Decode([]byte(raw.String))
			if err != nil {
				return nil, errors.Wrapf(err, "sqlitestore: exchange %d -> %d", e.Input, e.Output)
			}
			e.Distribution = f
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "sqlitestore: read exchanges")
	}

	return out, nil
}

// Load reads the whole stored inventory back.
func (s *Store) Load(ctx context.Context) (*inventory.Inventory, error) {
	inv := &inventory.Inventory{Method: make(map[int]float64), Demand: make(map[int]float64)}

	rows, err := s.db.QueryContext(ctx, `SELECT id, code, name, db_name, kind, static FROM activities ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "sqlitestore: query activities")
	}
	for rows.Next() {
		var (
			a    inventory.Activity
			kind string
		)
		if err = rows.Scan(&a.ID, &a.Code, &a.Name, &a.Database, &kind, &a.Static); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "sqlitestore: scan activity")
		}
		a.Kind = inventory.ActivityKind(kind)
		inv.Activities = append(inv.Activities, a)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "sqlitestore: read activities")
	}

	rows, err = s.db.QueryContext(ctx, selectExchanges+` ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "sqlitestore: query exchanges")
	}
	if inv.Exchanges, err = s.scanExchanges(rows); err != nil {
		return nil, err
	}

	if err = s.loadMap(ctx, `SELECT flow, factor FROM method`, inv.Method); err != nil {
		return nil, err
	}
	if err = s.loadMap(ctx, `SELECT process, amount FROM demand`, inv.Demand); err != nil {
		return nil, err
	}
	if err = inv.Validate(); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Store) loadMap(ctx context.Context, query string, into map[int]float64) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrapf(err, "sqlitestore: %s", query)
	}
	defer rows.Close()

	var (
		id int
		v  float64
	)
	for rows.Next() {
		if err = rows.Scan(&id, &v); err != nil {
			return errors.Wrapf(err, "sqlitestore: scan %s", query)
		}
		into[id] = v
	}

	return errors.Wrapf(rows.Err(), "sqlitestore: %s", query)
}
