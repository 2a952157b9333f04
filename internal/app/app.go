package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/snipcast/server/internal/controller"
	transcriptRedis "github.com/snipcast/server/internal/repository/transcript/redis"
	"github.com/snipcast/server/internal/service/session"
	"github.com/snipcast/server/pkg/ctxlogger"
	"github.com/snipcast/server/pkg/redisclient"
)

type AppConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	LogLevel string `json:"log_level"`

	RedisHost     string `json:"redis_host"`
	RedisPort     int    `json:"redis_port"`
	RedisPassword string `json:"-"`

	TranscriptTTLHours int `json:"transcript_ttl_hours"`

	SegmentGapMs          int `json:"segment_gap_ms"`
	TransitionToleranceMs int `json:"transition_tolerance_ms"`
	TransitionCooldownMs  int `json:"transition_cooldown_ms"`
	TimeUpdateThrottleMs  int `json:"timeupdate_throttle_ms"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be in [1,65535]")
	}
	if cfg.SegmentGapMs < 0 {
		return fmt.Errorf("segment gap must not be negative")
	}
	if cfg.TransitionToleranceMs < 0 {
		return fmt.Errorf("transition tolerance must not be negative")
	}
	if cfg.TransitionCooldownMs < 0 {
		return fmt.Errorf("transition cooldown must not be negative")
	}
	if cfg.TimeUpdateThrottleMs < 0 {
		return fmt.Errorf("timeupdate throttle must not be negative")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}),
	}
	logger := slog.New(&h)

	rc, err := redisclient.NewRedisClient(ctx, &redisclient.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	transcriptRepo := transcriptRedis.NewRepo(rc, time.Duration(cfg.TranscriptTTLHours)*time.Hour)
	sessionService := session.NewService(transcriptRepo, &session.Config{
		SegmentGap:          float64(cfg.SegmentGapMs) / 1000,
		TransitionTolerance: float64(cfg.TransitionToleranceMs) / 1000,
		TransitionCooldown:  time.Duration(cfg.TransitionCooldownMs) * time.Millisecond,
		TimeUpdateThrottle:  time.Duration(cfg.TimeUpdateThrottleMs) * time.Millisecond,
	}, logger)
	controller := controller.NewController(sessionService, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: controller.GetMux(),
	}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
