package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gteKit/internal/model"
	"gteKit/internal/storage"
)

var _ storage.Storage = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS tx_journal (
	id BIGSERIAL PRIMARY KEY,
	chain_id BIGINT NOT NULL,
	kind TEXT NOT NULL,
	to_address TEXT NOT NULL,
	calldata TEXT NOT NULL,
	value NUMERIC(78, 0) NOT NULL,
	deadline BIGINT,
	path TEXT[],
	amount_in NUMERIC(78, 0),
	amount_out NUMERIC(78, 0),
	slippage_bps INTEGER,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (chain_id, calldata, created_at)
)`

// Store persists built transactions in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the journal table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// PutTransactions inserts records, ignoring rows already journaled.
func (s *Store) PutTransactions(ctx context.Context, records []model.TxRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("parse created_at %q: %w", r.CreatedAt, err)
		}
		batch.Queue(`
			INSERT INTO tx_journal (
				chain_id, kind, to_address, calldata, value, deadline, path,
				amount_in, amount_out, slippage_bps, created_at
			) VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8::numeric, $9::numeric, $10, $11)
			ON CONFLICT (chain_id, calldata, created_at) DO NOTHING
		`,
			int64(r.ChainID),
			r.Kind,
			r.To,
			r.Data,
			r.Value,
			nullableInt64(r.Deadline),
			r.Path,
			nullableString(r.AmountIn),
			nullableString(r.AmountOut),
			nullableInt32(r.SlippageBps, r.Kind),
			createdAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// RecentTransactions returns the newest records for a chain.
func (s *Store) RecentTransactions(ctx context.Context, chainID uint64, limit int) ([]model.TxRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT kind, chain_id, to_address, calldata, value::text, COALESCE(deadline, 0),
			COALESCE(path, '{}'), COALESCE(amount_in::text, ''), COALESCE(amount_out::text, ''),
			COALESCE(slippage_bps, 0), created_at
		FROM tx_journal
		WHERE chain_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, int64(chainID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TxRecord
	for rows.Next() {
		var (
			r         model.TxRecord
			chain     int64
			slippage  int32
			createdAt time.Time
		)
		if err := rows.Scan(&r.Kind, &chain, &r.To, &r.Data, &r.Value, &r.Deadline,
			&r.Path, &r.AmountIn, &r.AmountOut, &slippage, &createdAt); err != nil {
			return nil, err
		}
		r.ChainID = uint64(chain)
		r.SlippageBps = uint32(slippage)
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullableInt64(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func nullableString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// Approvals carry no slippage; swaps may legitimately use 0 bps.
func nullableInt32(v uint32, kind string) *int32 {
	if kind == storage.KindApprove {
		return nil
	}
	n := int32(v)
	return &n
}
