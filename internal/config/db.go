package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewDB opens a pgx-backed pool and fails fast when the database is
// unreachable; a service that cannot store accounts has nothing to serve.
func NewDB(dsn string, debug bool) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty DB DSN")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if debug {
		var user, name, version string
		_ = db.QueryRowContext(ctx, "SELECT current_user").Scan(&user)
		_ = db.QueryRowContext(ctx, "SELECT current_database()").Scan(&name)
		_ = db.QueryRowContext(ctx, "SHOW server_version").Scan(&version)
		log.Debug().Str("user", user).Str("db", name).Str("version", version).Msg("database connected")
	}

	return db, nil
}
