package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"s3lib/core/loader"
	"s3lib/core/logger"
	"s3lib/core/middleware/auth"
	"s3lib/core/middleware/rayid"
	"s3lib/feature/browse"
	"s3lib/feature/mirror"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "s3lib/docs/swagger"
)

// @title s3lib API
// @version 1.0
// @description Filesystem-style access to S3 paths.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve path operations over HTTP",
	Long:  `Starts the HTTP server exposing path operations on s3:// URIs and tree reconciliation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		logg := e.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app, err := newApp(e)
		if err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", e.cfg.Server.Port),
				zap.String("driver", e.cfg.Storage.Driver),
			)
			if err := app.Listen(e.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

// newApp builds the fiber application with middleware and features.
func newApp(e *env) (*fiber.App, error) {
	logg := e.logger

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             e.cfg.Server.BodyLimit(),
	})

	// RayID first so every log line of a request carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: e.cfg.Server.ApiKey}))

	mgr := loader.NewManager(logg)
	mgr.Register(browse.NewFeature(e.fs, logg))
	mgr.Register(mirror.NewFeature(e.fs, logg))
	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
