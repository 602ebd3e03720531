package gorm

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/sunthewhat/certgen-api/api/model/userModel"
	"github.com/sunthewhat/certgen-api/common"
	"github.com/sunthewhat/certgen-api/common/util"
	"github.com/sunthewhat/certgen-api/type/shared/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Push_db() {
	lg := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             100 * time.Millisecond,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	dialector := postgres.New(
		postgres.Config{
			DSN: *common.Config.Postgres,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: lg,
	})

	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := Migrate(db); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	if common.Config.AdminEmail != nil && common.Config.AdminPassword != nil {
		if err := SeedAdmin(db, *common.Config.AdminEmail, *common.Config.AdminPassword); err != nil {
			slog.Error("Failed to seed admin user", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Database migration completed successfully")
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		new(model.User),
		new(model.Template),
		new(model.TemplateField),
		new(model.Certificate),
	)
}

// SeedAdmin creates the admin account once; an existing account is left as is.
func SeedAdmin(db *gorm.DB, email string, password string) error {
	users := userModel.NewUserRepository(db)

	existing, err := users.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := users.CreateNewUser("Admin", email, hashed, model.RoleAdmin); err != nil {
		return err
	}

	slog.Info("Admin user seeded", "email", email)
	return nil
}
