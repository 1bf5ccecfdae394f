// Command migrate applies the embedded postgres schema migrations without
// starting the HTTP server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/smallbiznis/boardinghouse/internal/config"
	"github.com/smallbiznis/boardinghouse/internal/migration"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"go.uber.org/zap"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "connection timeout")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	dbCfg := db.NewConfig(cfg)
	if dbCfg.Type != db.TypePostgres {
		logger.Fatal("migrate only supports postgres; other dialects migrate on server start", zap.String("db_type", dbCfg.Type))
	}

	conn, err := sql.Open("postgres", db.PostgresDSN(dbCfg))
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		logger.Fatal("ping database", zap.Error(err))
	}

	logger.Info("running migrations", zap.String("host", dbCfg.Host), zap.String("name", dbCfg.Name))
	if err := migration.RunMigrations(conn); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	logger.Info("migrations complete")
}
