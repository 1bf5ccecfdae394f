package migration

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/auth"
	"github.com/smallbiznis/boardinghouse/internal/config"
	"github.com/smallbiznis/boardinghouse/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node, log *zap.Logger) error {
		if err := Apply(conn, cfg.DBType); err != nil {
			return err
		}
		log.Info("schema up to date", zap.String("db_type", cfg.DBType))

		if !cfg.SeedDemoData {
			return nil
		}
		ctx := auth.WithPrincipal(context.Background(), auth.System)
		return seed.EnsureDemoData(ctx, conn, node, log)
	}),
)
