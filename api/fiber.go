package api

import (
	"log/slog"
	"os"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sunthewhat/certgen-api/api/handler"
	"github.com/sunthewhat/certgen-api/api/middleware"
	"github.com/sunthewhat/certgen-api/api/routes"
	"github.com/sunthewhat/certgen-api/common"
	"github.com/sunthewhat/certgen-api/internal/storage"
)

// NewApp builds the HTTP application without starting it.
func NewApp(deps *routes.Dependencies) *fiber.App {
	cfg := fiber.Config{
		AppName:       "certgen api",
		ErrorHandler:  handler.HandleError,
		Prefork:       false,
		StrictRouting: true,
		Network:       fiber.NetworkTCP,
		BodyLimit:     50 * 1024 * 1024,
		JSONEncoder:   sonic.Marshal,
		JSONDecoder:   sonic.Unmarshal,
	}
	app := fiber.New(cfg)

	app.Use(logger.New())
	app.Use(middleware.Recover())
	app.Use(middleware.Cors(common.Config.Cors))

	app.Static(storage.DefaultPublicPrefix, deps.Files.Root())

	routes.Init(app, deps)

	app.Use(handler.HandleNotFound)

	return app
}

func InitFiber() {
	files, err := storage.NewLocal(*common.Config.GeneratedDir)
	if err != nil {
		slog.Error("Failed to prepare generated directory", "error", err)
		os.Exit(1)
	}

	app := NewApp(routes.NewDependencies(files))

	slog.Info("Starting server", "port", *common.Config.Port)
	err = app.Listen(*common.Config.Port)

	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
