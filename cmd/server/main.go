package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"github.com/yukikurage/studio-ops-api/internal/config"
	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/database"
	"github.com/yukikurage/studio-ops-api/internal/realtime"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "serve")
	}

	root := &cli.Command{
		Name:  "server",
		Usage: "Studio operations dashboard API",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "HTTP listen address"},
			&cli.BoolFlag{Name: "auto-migrate", Usage: "create or update tables from the models before serving (development only)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.String("addr"), c.Bool("auto-migrate"))
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or inspect the SQL migrations",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := connect()
					if err != nil {
						return err
					}
					return database.RunMigrations(ctx, database.GetDB(), cfg.DBDriver)
				},
			},
			{
				Name:  "status",
				Usage: "Show which migrations are applied",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := connect()
					if err != nil {
						return err
					}
					return database.MigrationStatus(ctx, database.GetDB(), cfg.DBDriver)
				},
			},
		},
	}
}

func connect() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := database.Connect(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(ctx context.Context, addr string, autoMigrate bool) error {
	cfg, err := connect()
	if err != nil {
		return err
	}
	if cfg.AuthJWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	gin.SetMode(cfg.GinMode)

	if autoMigrate {
		if err := database.Migrate(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	broker := realtime.NewBroker()
	if cfg.RealtimePGListen {
		listener := realtime.NewPGListener(cfg.PostgresDSN(), constants.TopicTeamActivity, broker)
		go func() {
			if err := listener.Run(ctx); err != nil {
				log.Printf("[realtime] listener stopped: %v", err)
			}
		}()
	}

	router, err := newRouter(cfg, database.GetDB(), broker)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
