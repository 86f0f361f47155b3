package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"finanzapp/internal/amqp"
	"finanzapp/internal/config"
	"finanzapp/internal/export"
	"finanzapp/internal/notify"
	"finanzapp/internal/services"
	"finanzapp/internal/storage"
	"finanzapp/internal/worker"
)

func main() {
	// Load .env for local development; absent file is fine in containers.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting finanzapp-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Spreadsheet exporter is optional; without it movements stay pending.
	var exporter worker.MovementExporter
	if cfg.SheetsSpreadsheetID != "" {
		sheetsExporter, err := export.NewSheetsExporter(ctx,
			cfg.SheetsSpreadsheetID, cfg.SheetsSheetName, cfg.SheetsCredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize Sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = sheetsExporter
		logger.Info("Sheets exporter initialized", "spreadsheet_id", cfg.SheetsSpreadsheetID)
	} else {
		logger.Info("Sheets export disabled - no SHEETS_SPREADSHEET_ID provided")
	}

	// Reminder mail is optional; without SMTP the sweep logs instead of sending.
	var sender services.ReminderSender
	if cfg.SMTPHost != "" {
		sender = notify.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
			cfg.MailFrom, cfg.MailTo)
		logger.Info("SMTP reminder sending enabled", "host", cfg.SMTPHost)
	} else {
		logger.Info("SMTP disabled - reminders will be logged only")
	}

	reminderSvc := services.NewReminderService(repo, sender)
	exportWorker := worker.NewExportWorker(repo, exporter, reminderSvc, cfg.ExportBatchSize)

	// Catch up on anything missed while the worker was down.
	if err := exportWorker.ProcessPendingExports(ctx); err != nil {
		logger.Error("Startup export check failed", "error", err)
	}

	// Consume queued export messages when a broker is configured.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			err := amqpClient.ConsumeExports(ctx, func(msg *amqp.ExportMessage) error {
				return exportWorker.HandleExportMessage(ctx, msg)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", "error", err)
				cancel()
			}
		}()
	} else {
		logger.Info("AMQP disabled - relying on periodic export scan only")
	}

	// Periodic scan for exports the queue never delivered.
	ticker := time.NewTicker(cfg.ExportInterval)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := exportWorker.ProcessPendingExports(ctx); err != nil {
					logger.Error("Periodic export scan failed", "error", err)
				}
			}
		}
	}()

	// Daily reminder sweep on a cron schedule.
	c := cron.New()
	if _, err := c.AddFunc(cfg.ReminderCron, func() { exportWorker.SweepReminders(ctx) }); err != nil {
		logger.Error("Failed to schedule reminder sweep", "error", err, "cron", cfg.ReminderCron)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker shutdown complete")
}
