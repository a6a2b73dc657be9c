package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wordle-bot/internal/config"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLConnection manages the MySQL database connection
type MySQLConnection struct {
	db     *sql.DB
	logger *zap.Logger
}

// buildDSN renders the go-sql-driver DSN for cfg
func buildDSN(cfg config.MySQLConfig) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)
	return dsn + "?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci"
}

// NewMySQLConnection opens a connection pool and verifies it with a ping
func NewMySQLConnection(ctx context.Context, cfg config.MySQLConfig, logger *zap.Logger) (*MySQLConnection, error) {
	logger.Info("Connecting to MySQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("username", cfg.Username),
		zap.String("database", cfg.Database))

	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	// The dictionary is read once at startup, so the pool stays small
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	logger.Info("MySQL connection established successfully")
	return &MySQLConnection{
		db:     db,
		logger: logger,
	}, nil
}

// GetDB returns the underlying sql.DB connection
func (m *MySQLConnection) GetDB() *sql.DB {
	return m.db
}

// Close closes the database connection
func (m *MySQLConnection) Close() error {
	if m.db != nil {
		m.logger.Info("Closing MySQL connection")
		return m.db.Close()
	}
	return nil
}
