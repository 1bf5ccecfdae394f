package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/config"
	"github.com/smallbiznis/boardinghouse/internal/migration"
	"github.com/smallbiznis/boardinghouse/internal/observability"
	"github.com/smallbiznis/boardinghouse/internal/server"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
