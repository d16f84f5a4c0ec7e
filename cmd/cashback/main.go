package main

import (
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/config"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/migration"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/server"
	"github.com/LSC-ship-it/luxem-lsc-cashback/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,

		// Schema is provisioned before the HTTP server accepts traffic.
		fx.Invoke(func(conn *gorm.DB) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return migration.RunMigrations(sqlDB)
		}),

		cashback.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
