package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/devicedesk-notifier/internal/api"
	"github.com/shaharia-lab/devicedesk-notifier/internal/config"
	"github.com/shaharia-lab/devicedesk-notifier/internal/eventbus"
	"github.com/shaharia-lab/devicedesk-notifier/internal/logger"
	"github.com/shaharia-lab/devicedesk-notifier/internal/metrics"
	"github.com/shaharia-lab/devicedesk-notifier/internal/notification"
	"github.com/shaharia-lab/devicedesk-notifier/internal/server"
	"github.com/shaharia-lab/devicedesk-notifier/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the notifier",
	Long:  "Start the HTTP server that ingests reservation events and dispatches email notifications.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP server port (overrides PORT env var)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	log, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := storage.NewSQLiteDB(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Warn("closing database", "error", cerr.Error())
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	dispatchMetrics := metrics.New(registry)

	store := storage.NewSQLiteNotificationStore(db)
	transport := notification.NewSMTPTransport(cfg.SMTP())
	dispatcher := notification.NewDispatcher(transport, store, log, dispatchMetrics)
	handler := notification.NewHandler(dispatcher, log)

	bus := eventbus.New(cfg.EventWorkers, log)
	bus.Subscribe(handler.Handle)
	defer bus.Close()

	apiSrv := api.New(store, bus, log)
	srv := server.New(apiSrv, registry, cfg.Port, log)

	fmt.Fprintf(os.Stderr, "DeviceDesk notifier running on http://localhost:%d\n", cfg.Port)
	log.Info("starting notifier",
		"port", cfg.Port,
		"database", cfg.DatabasePath(),
		"smtp_host", cfg.SMTPHost,
	)

	return srv.Run(ctx)
}
