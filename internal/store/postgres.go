package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"

	"github.com/punchamoorthee/txnproc/internal/models"
)

// SnapshotStore exports finished account snapshots to Postgres. It is an
// output sink only: the engine never reads state back from it.
type SnapshotStore struct {
	Db *pgxpool.Pool
}

func NewSnapshotStore(connString string) (*SnapshotStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &SnapshotStore{Db: pool}, nil
}

func (s *SnapshotStore) Close() {
	s.Db.Close()
}

// SaveSnapshot bulk-inserts one row per account under a fresh run id and
// returns that id. Uses CopyFrom, the fastest bulk path pgx offers.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, accounts []models.AccountState) (uuid.UUID, error) {
	runID := uuid.New()
	now := time.Now().UTC()

	rows := make([][]interface{}, 0, len(accounts))
	for _, acc := range accounts {
		rows = append(rows, []interface{}{
			runID, int64(acc.Client), acc.Available, acc.Held, acc.Total, acc.Locked, now,
		})
	}

	_, err := s.Db.CopyFrom(
		ctx,
		pgx.Identifier{"account_snapshots"},
		[]string{"run_id", "client_id", "available", "held", "total", "locked", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("snapshot insert failed: %w", err)
	}
	return runID, nil
}
