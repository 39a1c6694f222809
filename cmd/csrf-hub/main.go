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

	"csrf-hub/config"
	"csrf-hub/internal/adapter/gateway"
	adapterhandler "csrf-hub/internal/adapter/handler"
	infracache "csrf-hub/internal/infrastructure/cache"
	infratoken "csrf-hub/internal/infrastructure/token"
	"csrf-hub/internal/usecase"
	appmiddleware "csrf-hub/middleware"
	"csrf-hub/utils/logger"
	"csrf-hub/utils/otel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Load .env if present (local development)
	_ = godotenv.Load()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
	}

	// Initialize structured logger
	logger.Init(otelCfg.Enabled)

	// Load configuration; a missing or short CSRF secret is fatal and
	// the process refuses to serve.
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"kratos_url", cfg.KratosURL,
		"port", cfg.Port,
		"session_cookie", cfg.SessionCookieName,
		"cache_ttl", cfg.CacheTTL)

	// Infrastructure
	sessionCache := infracache.NewSessionCache(cfg.CacheTTL)
	kratosGateway := gateway.NewKratosGateway(cfg.KratosURL, 5*time.Second)
	codec := infratoken.NewHMACCodec(cfg.CSRFSecret)

	// Usecases
	generateUC := usecase.NewGenerateCSRF(kratosGateway, sessionCache, codec, slog.Default())
	verifyUC := usecase.NewVerifyCSRF(codec, slog.Default())

	// Handlers
	csrfHandler := adapterhandler.NewCSRFHandler(generateUC, cfg.SessionCookieName)
	verifyHandler := adapterhandler.NewVerifyHandler(verifyUC)
	healthHandler := adapterhandler.NewHealthHandler()

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// CSRF request guard on every route. Issuance must be reachable
	// before a token exists, health is unauthenticated, and internal
	// routes authenticate via shared secret instead of cookies.
	guard := appmiddleware.NewCSRFGuard(verifyUC, &appmiddleware.GuardConfig{
		TokenHeader: "X-CSRF-Token",
		CookieName:  cfg.SessionCookieName,
		SkipPaths:   []string{"/health", "/csrf", "/internal/"},
	}, slog.Default())
	e.Use(guard.Middleware())

	// Rate limiters per endpoint group
	csrfRL := appmiddleware.NewRateLimiter(10.0/60.0, 3)       // 10 req/min
	internalRL := appmiddleware.NewRateLimiter(100.0/60.0, 10) // 100 req/min

	// Public routes
	e.POST("/csrf", csrfHandler.Handle, csrfRL.Middleware())
	e.GET("/health", healthHandler.Handle)

	// Internal routes (protected by shared secret)
	internalGroup := e.Group("/internal",
		internalRL.Middleware(),
	)
	if cfg.AuthSharedSecret != "" {
		internalGroup.Use(appmiddleware.InternalAuth(cfg.AuthSharedSecret))
	}
	internalGroup.POST("/verify", verifyHandler.Handle)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting csrf-hub server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8890"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
