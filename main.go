package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Zachkp/termfolio/internal/config"
	"github.com/Zachkp/termfolio/internal/contact"
	"github.com/Zachkp/termfolio/internal/content"
	"github.com/Zachkp/termfolio/internal/http/handler"
	"github.com/Zachkp/termfolio/internal/http/middleware"
	"github.com/Zachkp/termfolio/internal/logger"
	"github.com/Zachkp/termfolio/internal/store"
	"github.com/Zachkp/termfolio/internal/terminal"
)

const (
	// sessionIdle is how long an untouched session stays in memory.
	sessionIdle     = 30 * time.Minute
	sweepInterval   = 5 * time.Minute
	cleanupInterval = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

// configFile is set by the --config flag.
var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termfolio",
	Short: "A portfolio site that behaves like a terminal",
	Long: `termfolio serves an interactive terminal-style portfolio over HTTP.
Output is typed out character by character and streamed to the browser.
Run "termfolio shell" to use the same terminal in a local console.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server (default)",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the site version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", cfg.Site.Name, cfg.Site.Version)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (environment variables take precedence)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(versionCmd)
}

func identity(cfg *config.AppConfig) terminal.Identity {
	return terminal.Identity{
		Name:      cfg.Site.Name,
		ShortName: cfg.Site.ShortName,
		Version:   cfg.Site.Version,
	}
}

func mailer(cfg *config.AppConfig, log logrus.FieldLogger) *contact.SMTPMailer {
	return contact.NewSMTPMailer(contact.SMTPConfig{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		To:   cfg.SMTP.To,
	}, log)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	site, err := content.Load(cfg.ContentFile)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	sender := mailer(cfg, log)
	mgr := terminal.NewManager(terminal.NewDispatcher(site, sender), st, identity(cfg), cfg.DefaultTheme, log)
	mgr.Observe = metrics.ObserveCommand

	router, err := handler.NewRouter(handler.Config{
		Manager:       mgr,
		Sender:        sender,
		Store:         st,
		Gatherer:      reg,
		Metrics:       metrics,
		Tracker:       middleware.NewVisitorTracker(st, log),
		Admin:         handler.Credentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password},
		Site:          identity(cfg),
		DefaultTheme:  cfg.DefaultTheme,
		FrameInterval: cfg.FrameRate,
		TypeSpeed:     cfg.TypeSpeed,
		Log:           log,
	})
	if err != nil {
		return err
	}

	go maintain(ctx, mgr, st, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// maintain evicts idle sessions from memory and runs the privacy cleanup
// once at startup and then daily.
func maintain(ctx context.Context, mgr *terminal.Manager, st handler.Store, log logrus.FieldLogger) {
	cleanup := func() {
		visitors, sessions, err := handler.Cleanup(ctx, st, time.Now())
		if err != nil {
			log.WithError(err).Warn("privacy cleanup")
			return
		}
		if visitors > 0 || sessions > 0 {
			log.WithFields(logrus.Fields{
				"visitors": visitors,
				"sessions": sessions,
			}).Info("privacy cleanup")
		}
	}
	cleanup()

	sweep := time.NewTicker(sweepInterval)
	defer sweep.Stop()
	daily := time.NewTicker(cleanupInterval)
	defer daily.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sweep.C:
			if n := mgr.Sweep(sessionIdle); n > 0 {
				log.WithFields(logrus.Fields{"evicted": n, "live": mgr.Live()}).Debug("session sweep")
			}
		case <-daily.C:
			cleanup()
		}
	}
}
