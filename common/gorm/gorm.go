package gorm

import (
	"log/slog"
	"os"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/sunthewhat/certgen-api/common"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

func InitGorm() {
	db, err := Open(*common.Config.Postgres, common.Config.PostgresReplicas)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	slog.Info("GORM Connected!", "replicas", len(common.Config.PostgresReplicas))

	common.Gorm = db
}

// Open connects to postgres and, when replica DSNs are given, routes reads
// to them through dbresolver.
func Open(dsn string, replicas []string) (*gorm.DB, error) {
	// Configure slog-gorm logger
	lg := slogGorm.New(
		slogGorm.WithHandler(slog.Default().Handler()),
		slogGorm.WithSlowThreshold(100*time.Millisecond),
	)

	// Config GORM Connector
	connector := postgres.New(
		postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		},
	)

	db, connectionErr := gorm.Open(connector, &gorm.Config{
		Logger: lg,
	})
	if connectionErr != nil {
		return nil, connectionErr
	}

	if len(replicas) == 0 {
		return db, nil
	}

	dialectors := make([]gorm.Dialector, 0, len(replicas))
	for _, replica := range replicas {
		dialectors = append(dialectors, postgres.New(postgres.Config{
			DSN:                  replica,
			PreferSimpleProtocol: true,
		}))
	}

	resolverErr := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: dialectors,
		Policy:   dbresolver.RandomPolicy{},
	}).SetMaxOpenConns(25).SetConnMaxIdleTime(5 * time.Minute))
	if resolverErr != nil {
		return nil, resolverErr
	}

	return db, nil
}
