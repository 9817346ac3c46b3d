// Package postgres implements storage.Storage on PostgreSQL through gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/qna-forum/backend/internal/config"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
)

type Store struct {
	db *gorm.DB
}

var _ storage.Storage = (*Store)(nil)

// New opens the connection pool described by cfg and pings the server.
func New(ctx context.Context, cfg config.DatabaseConfig, verbose bool) (*Store, error) {
	return Open(ctx, cfg.DSN(), cfg, verbose)
}

// Open is New with an explicit DSN, used by tests against throwaway servers.
func Open(ctx context.Context, dsn string, cfg config.DatabaseConfig, verbose bool) (*Store, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate creates or updates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Answer{},
		&models.Reply{},
		&models.Comment{},
		&models.Vote{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Tag filtering uses "? = ANY(tags)".
	if err := s.db.WithContext(ctx).Exec(
		`CREATE INDEX IF NOT EXISTS idx_questions_tags ON questions USING GIN (tags)`,
	).Error; err != nil {
		return fmt.Errorf("failed to create tag index: %w", err)
	}

	if err := s.db.WithContext(ctx).Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_answers_one_accepted ON answers (question_id) WHERE accepted`,
	).Error; err != nil {
		return fmt.Errorf("failed to create accepted answer index: %w", err)
	}

	return nil
}

// Health checks the health of the database connection by pinging the database.
func (s *Store) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stats := make(map[string]string)
	stats["driver"] = config.DriverPostgres

	sqlDB, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db error: %v", err)
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"

	dbStats := sqlDB.Stats()
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)

	return stats
}

// Close closes the database connection.
func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// mapErr converts driver errors into storage sentinels. A malformed uuid can
// never match a row, so it is reported as not found.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", storage.ErrConflict, pgErr.ConstraintName)
		case pgerrcode.InvalidTextRepresentation:
			return storage.ErrNotFound
		}
	}
	return err
}
