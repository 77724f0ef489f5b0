package pg

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/varlopecar/react-form/shared/config"
	"github.com/varlopecar/react-form/shared/logger"
	sharedpg "github.com/varlopecar/react-form/shared/storage/pg"
)

//go:embed migrations/init.sql
var schema string

type Storage struct {
	db *sqlx.DB
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Public.Pg.Host, "dbname", cfg.Public.Pg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg.PgDSN(), sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")

	storage := &Storage{db: db}
	if err := storage.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return storage, nil
}

// Migrate creates the schema if it does not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
