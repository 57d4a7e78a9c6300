package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MeKo-Tech/huequiz/assets"
	"github.com/MeKo-Tech/huequiz/internal/scores"
	"github.com/MeKo-Tech/huequiz/internal/server"
	"github.com/MeKo-Tech/huequiz/internal/swatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz web UI and JSON API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().String("web-dir", "", "Serve the web UI from this directory instead of the embedded copy")
	serveCmd.Flags().Duration("session-ttl", 30*time.Minute, "Evict sessions idle for longer than this")
	serveCmd.Flags().Duration("sweep-interval", time.Minute, "How often idle sessions are evicted")
	serveCmd.Flags().Int("max-sessions", 1000, "Maximum number of live sessions")
	serveCmd.Flags().String("cache-control", "public, max-age=86400", "Cache-Control header for swatch images")
	serveCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")
	serveCmd.Flags().Int("swatch-size", 96, "Default swatch edge in pixels")
	serveCmd.Flags().Float32("paper", 0.6, "Paper grain behind question boards, 0..1")
	serveCmd.Flags().Uint64("seed", 0, "Deterministic seed for question streams (0 picks a random seed per session)")

	bindFlags(serveCmd, "serve",
		"addr", "web-dir", "session-ttl", "sweep-interval", "max-sessions",
		"cache-control", "png-compression", "swatch-size", "paper", "seed")
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	webDir := viper.GetString("serve.web_dir")
	sweepInterval := viper.GetDuration("serve.sweep_interval")

	store, err := openStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	opts := swatch.DefaultOptions()
	opts.Size = viper.GetInt("serve.swatch_size")
	opts.Paper = float32(viper.GetFloat64("serve.paper"))

	static := assets.Web()
	if webDir != "" {
		static = os.DirFS(webDir)
	}

	srv, err := server.New(server.Config{
		Static:         static,
		PNGCompression: viper.GetString("serve.png_compression"),
		CacheControl:   viper.GetString("serve.cache_control"),
		Swatch:         opts,
		SessionTTL:     viper.GetDuration("serve.session_ttl"),
		MaxSessions:    viper.GetInt("serve.max_sessions"),
		Seed:           viper.GetUint64("serve.seed"),
	}, store, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if sweepInterval > 0 {
		go srv.SweepLoop(ctx, sweepInterval)
	}

	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("quiz server listening",
		"addr", addr,
		"web_dir", webDir,
		"scores", store != nil,
	)

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("quiz server stopped")
	return nil
}

// openStore opens the scores database named by --scores-db. An empty path
// disables scores and returns a nil store.
func openStore() (*scores.Store, error) {
	path := viper.GetString("scores-db")
	if path == "" {
		return nil, nil
	}
	store, err := scores.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scores database: %w", err)
	}
	logger.Debug("scores database opened", "path", store.Path())
	return store, nil
}
