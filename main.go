package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riyan-hx/Lumid.ai/internal/adapter/answer"
	"github.com/riyan-hx/Lumid.ai/internal/adapter/upstream"
	"github.com/riyan-hx/Lumid.ai/internal/config"
	"github.com/riyan-hx/Lumid.ai/internal/fallback"
	"github.com/riyan-hx/Lumid.ai/internal/hub"
	"github.com/riyan-hx/Lumid.ai/internal/logging"
	"github.com/riyan-hx/Lumid.ai/internal/metrics"
	"github.com/riyan-hx/Lumid.ai/internal/policy"
	"github.com/riyan-hx/Lumid.ai/internal/service"
	"github.com/riyan-hx/Lumid.ai/internal/session"
	handler "github.com/riyan-hx/Lumid.ai/internal/transport/http"
	"github.com/riyan-hx/Lumid.ai/internal/transport/http/proxy"
	"github.com/riyan-hx/Lumid.ai/internal/transport/ws"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("starting lumid",
		"http_port", cfg.HTTPPort,
		"answer_url", cfg.AnswerURL,
		"mode", cfg.Mode,
		"upstream_provider", cfg.UpstreamProvider,
	)

	m := metrics.New()

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy, cfg.MaxQuestionLength)
	if err != nil {
		log.Error("failed to initialize policy engine", "error", err)
		os.Exit(1)
	}

	// Upstream behind /api/chat
	up, err := upstream.New(upstream.Options{
		Provider:     cfg.UpstreamProvider,
		URL:          cfg.UpstreamURL,
		Timeout:      cfg.UpstreamTimeout(),
		APIKey:       cfg.OpenAIAPIKey,
		BaseURL:      cfg.OpenAIBaseURL,
		Model:        cfg.OpenAIModel,
		SystemPrompt: cfg.OpenAISystemPrompt,
	})
	if err != nil {
		log.Error("failed to initialize upstream", "error", err)
		os.Exit(1)
	}

	// Initialize hub and service
	h := hub.NewHub(log)
	go h.Run()

	answers := answer.NewAnswerClient(cfg.Mode, cfg.AnswerURL, cfg.AnswerTimeout())
	svc := service.New(session.NewStore(), answers, fallback.NewResponder(),
		service.WithNotifier(h),
		service.WithMetrics(m),
		service.WithLogger(log),
	)

	e := handler.NewServer(svc,
		proxy.NewHandler(up, policyEngine, m, log),
		ws.NewServer(cfg, h, svc, log),
		m,
	)

	go func() {
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()
	log.Info("server started", "addr", cfg.Addr())

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server gracefully", "error", err)
	}
	h.Stop()

	log.Info("stopped")
}
