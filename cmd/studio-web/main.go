package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pixelforge/fusion-studio/internal/auth"
	"github.com/pixelforge/fusion-studio/internal/config"
	"github.com/pixelforge/fusion-studio/internal/gemini"
	"github.com/pixelforge/fusion-studio/internal/generate"
	"github.com/pixelforge/fusion-studio/internal/logging"
	"github.com/pixelforge/fusion-studio/internal/workspace"
)

// CLI flags
var (
	portFlag        int
	validateKeyFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "studio-web",
	Short: "Web UI for AI image composites",
	Long: `Studio Web starts a local web server for composing AI image results.
Blend two to five photos into one generated image under a chosen style, or
swap a face into a scene from a reference photo, all from your browser.

Examples:
  studio-web
  studio-web --port 9090
  studio-web --validate-key=false`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (overrides STUDIO_PORT; default 8080)")
	rootCmd.Flags().BoolVar(&validateKeyFlag, "validate-key", true, "Probe the API key with a minimal request at startup")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the server's dependencies for the handlers.
type app struct {
	store          *workspace.Store
	orch           *generate.Orchestrator
	maxUploadBytes int64
}

func runMain(cmd *cobra.Command, args []string) {
	logging.Init()
	start := time.Now()

	cfg := config.Load()
	if cmd.Flags().Changed("port") {
		cfg.Port = strconv.Itoa(portFlag)
	}

	apiKey, err := auth.GetAPIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get API key")
	}

	ctx := context.Background()
	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	if validateKeyFlag {
		if err := auth.ValidateAPIKey(ctx, client.Raw(), gemini.DescribeModel()); err != nil {
			log.Fatal().Err(err).Msg("Invalid API key")
		}
	}

	a := &app{
		store:          workspace.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute),
		orch:           generate.NewOrchestrator(client, generate.ModelConfig{Edit: gemini.EditModel()}),
		maxUploadBytes: cfg.MaxUploadBytes,
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(a),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Shutdown did not complete cleanly")
		}
	}()

	logging.NewStartupLogger("studio-web").
		Addr(addr).
		Model("describe", gemini.DescribeModel()).
		Model("generate", gemini.DefaultImageModel()).
		Model("edit", gemini.EditModel()).
		Feature("keyValidation", validateKeyFlag).
		Config("maxUploadBytes", strconv.FormatInt(cfg.MaxUploadBytes, 10)).
		Config("sessionTTLMinutes", strconv.Itoa(cfg.SessionTTLMinutes)).
		InitDuration(time.Since(start)).
		Log()
	fmt.Printf("\n  Fusion Studio: http://localhost:%s\n\n", cfg.Port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
