package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mimihimesama/item-simulator/internal/config"
	"github.com/mimihimesama/item-simulator/internal/handlers/rest"
	"github.com/mimihimesama/item-simulator/internal/orchestrators/equipment"
	"github.com/mimihimesama/item-simulator/internal/pkg/idgen"
	redisclient "github.com/mimihimesama/item-simulator/internal/redis"
	characterrepo "github.com/mimihimesama/item-simulator/internal/repositories/character"
	itemrepo "github.com/mimihimesama/item-simulator/internal/repositories/item"
)

var httpPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the item simulator HTTP server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "port", 0, "HTTP server port (overrides PORT)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if httpPort != 0 {
		cfg.HTTPPort = httpPort
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}

	charRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create character repository: %w", err)
	}

	itmRepo, err := itemrepo.NewRedis(&itemrepo.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create item repository: %w", err)
	}

	orchestrator, err := equipment.New(&equipment.Config{
		CharacterRepo: charRepo,
		ItemRepo:      itmRepo,
		IDAllocator:   idgen.NewSequence(charRepo),
	})
	if err != nil {
		return fmt.Errorf("failed to create equipment orchestrator: %w", err)
	}

	handler, err := rest.NewHandler(&rest.Config{Service: orchestrator})
	if err != nil {
		return fmt.Errorf("failed to create REST handler: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	engine.Use(cors.New(corsConfig))

	engine.Use(rest.ErrorHandler())

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the item simulator!"})
	})
	handler.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}

		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
