package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/regnotify/internal/api"
	"github.com/shaharia-lab/regnotify/internal/build"
	"github.com/shaharia-lab/regnotify/internal/config"
	"github.com/shaharia-lab/regnotify/internal/logger"
	"github.com/shaharia-lab/regnotify/internal/metrics"
	"github.com/shaharia-lab/regnotify/internal/notification"
	"github.com/shaharia-lab/regnotify/internal/scheduler"
	"github.com/shaharia-lab/regnotify/internal/server"
	"github.com/shaharia-lab/regnotify/internal/service"
	"github.com/shaharia-lab/regnotify/internal/telemetry"
)

// NewServeCmd returns the "serve" subcommand that starts the HTTP API.
func NewServeCmd(cfg *config.AppConfig) *cobra.Command {
	var port int
	var channel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the registration HTTP API",
		Long: `Start the HTTP server exposing POST /api/registrations, the delivery log,
/health and /metrics. Notification lines are written to stdout; structured
logs go to <data dir>/logs/system.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// CLI flags override env config.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("channel") {
				cfg.Channel = channel
			}

			logFile := filepath.Join(cfg.LogDir(), "system.log")
			printBanner(cmd.ErrOrStderr(), cfg, logFile)

			if err := runServe(cmd, cfg); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "An error occurred. Please check the logs at: %s\n", logFile)
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", cfg.Port, "HTTP server port (overrides PORT env var)")
	cmd.Flags().StringVar(&channel, "channel", cfg.Channel, "Notification channel (email, sms)")
	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.AppConfig) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sysLogger, logCloser, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logCloser.Close() }()

	sysLogger.Info("regnotify starting",
		slog.Int("port", cfg.Port),
		slog.String("channel", cfg.Channel),
		slog.String("data_dir", cfg.DataDir),
		slog.String("version", build.Version),
		slog.String("commit", build.CommitSHA),
		slog.String("build_date", build.BuildDate),
	)

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
		ServiceVersion: build.Version,
	}, sysLogger)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			sysLogger.Warn("tracing shutdown failed", slog.Any("error", err))
		}
	}()

	a := newApp(cfg, sysLogger)
	defer a.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	bus := a.startBus()
	bus.Subscribe(m.Listener(service.EventUserRegistered))

	out := notification.NewSyncWriter(cmd.OutOrStdout())
	notifier, err := a.notifier(cfg.Channel, out, cfg.RecordDeliveries)
	if err != nil {
		return err
	}

	regSvc, err := service.NewRegistrationService(notifier, out, bus, sysLogger)
	if err != nil {
		return err
	}

	var deliverySvc service.DeliveryLogService
	if cfg.RecordDeliveries {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		deliverySvc = service.NewDeliveryLogService(store)
	}

	if cfg.PruningEnabled() {
		sched, err := scheduler.New(scheduler.Config{
			Pruner:         deliverySvc,
			Retention:      cfg.DeliveryRetention,
			Interval:       cfg.PruneInterval,
			Logger:         sysLogger,
			EventPublisher: bus,
		})
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				sysLogger.Warn("scheduler shutdown failed", slog.Any("error", err))
			}
		}()
	}

	apiSrv := api.New(regSvc, deliverySvc, sysLogger)
	srv := server.New(apiSrv, server.Options{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		Gatherer:    reg,
	}, sysLogger)

	sysLogger.Info("server ready", slog.String("url", fmt.Sprintf("http://localhost:%d", cfg.Port)))
	return srv.Run(ctx)
}

// printBanner writes the startup banner to w. Stdout is reserved for
// notification lines, so w is normally stderr.
func printBanner(w io.Writer, cfg *config.AppConfig, logFile string) {
	st := newStyles(w, false)
	fmt.Fprintln(w, st.Title.Render("regnotify "+build.Version))
	fmt.Fprintf(w, "Listening on http://localhost:%d (channel: %s)\n", cfg.Port, cfg.Channel)
	fmt.Fprintln(w, st.Faint.Render("Logs: "+logFile))
	fmt.Fprintln(w)
}
