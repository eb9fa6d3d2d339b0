package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/brunobiangulo/contractreview"
	"github.com/brunobiangulo/contractreview/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (JSON)")
	addr := flag.String("addr", "", "Listen address (overrides config/env)")
	flag.Parse()

	// Structured JSON logging.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("loading .env file", "error", err)
	}

	v := viper.New()
	v.SetEnvPrefix("CONTRACTREVIEW")
	v.AutomaticEnv()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("api_key", "")
	v.SetDefault("jwt_signing_key", "")
	v.SetDefault("cors_origins", "")
	v.SetDefault("otel_endpoint", "")
	v.SetDefault("otel_insecure", true)
	v.SetDefault("drift_min_similarity", contractreview.DefaultConfig().DriftMinSimilarity)
	v.SetDefault("issue_align_min_score", contractreview.DefaultConfig().IssueAlignMinScore)

	if *configPath != "" {
		v.SetConfigFile(*configPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			slog.Error("reading config file", "error", err)
			os.Exit(1)
		}
	}

	reviewCfg := contractreview.DefaultConfig()
	reviewCfg.DriftMinSimilarity = v.GetFloat64("drift_min_similarity")
	reviewCfg.IssueAlignMinScore = v.GetFloat64("issue_align_min_score")

	listenAddr := v.GetString("listen_addr")
	if *addr != "" {
		listenAddr = *addr
	}
	apiKey := v.GetString("api_key")
	jwtSigningKey := v.GetString("jwt_signing_key")
	corsOrigins := v.GetString("cors_origins")
	otelEndpoint := v.GetString("otel_endpoint")
	otelInsecure := v.GetBool("otel_insecure")

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Init(ctx, otelEndpoint, "contractreview-server", "v1", otelInsecure)
	if err != nil {
		slog.Error("initializing telemetry", "error", err)
		os.Exit(1)
	}

	h := newHandler(reviewCfg)
	router := newRouter(h)

	// Middleware chain: recovery -> cors -> auth -> logging -> router
	var handler http.Handler = router
	handler = logMiddleware(handler)
	handler = authMiddleware(apiKey, jwtSigningKey, handler)
	handler = corsMiddleware(corsOrigins, handler)
	handler = recoveryMiddleware(handler)

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", listenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("telemetry shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

// jsonDecoderDisallowUnknown exists so handlers.go's request decoding can
// reject unrecognised fields without repeating the setup at each call site.
func jsonDecoderDisallowUnknown(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
