package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/eridani8/MassEmailSender/internal/config"
	"github.com/eridani8/MassEmailSender/internal/dispatch"
	"github.com/eridani8/MassEmailSender/internal/loader"
	"github.com/eridani8/MassEmailSender/internal/logging"
	"github.com/eridani8/MassEmailSender/internal/mail"
	"github.com/eridani8/MassEmailSender/internal/storage"
	"github.com/eridani8/MassEmailSender/internal/ui"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config yaml/json")
	flag.Parse()

	if err := run(cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, closeLog, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		ErrorFile: cfg.Logging.ErrorFile,
	})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closeLog()

	theme := ui.NewTheme(cfg.Colors.Message, cfg.Colors.Value, cfg.Colors.Error)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(storage.Config{Path: cfg.DBPath}, log)
	if err != nil {
		return fmt.Errorf("history db: %w", err)
	}
	defer store.Close()

	src, err := selectLoader(cfg)
	if err != nil {
		return err
	}

	body, err := os.ReadFile(cfg.BodyFile)
	if err != nil {
		return fmt.Errorf("reading message body: %w", err)
	}
	theme.Messagef("Message body loaded: %s characters", theme.Valuef("%d", len(body)))
	theme.Messagef("Recipient source: %s", theme.Valuef("%s", cfg.Loader.Type))

	raw, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading recipients: %w", err)
	}
	theme.Messagef("Loaded addresses: %s", theme.Valuef("%d", len(raw)))

	queue, skipped, err := dispatch.Plan(ctx, raw, dispatch.PlanOptions{
		Subject: cfg.Subject,
		Dedup:   cfg.CheckSubjects,
		Shuffle: cfg.Shuffle,
	}, store, log)
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	if cfg.CheckSubjects {
		theme.Messagef("Already sent this subject: %s", theme.Valuef("%d", len(skipped)))
	}
	if cfg.Shuffle {
		theme.Messagef("Recipient order shuffled")
	}

	timeout, err := cfg.SMTP.SMTPTimeout(30 * time.Second)
	if err != nil {
		return err
	}
	transport, err := mail.NewSMTP(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Timeout:  timeout,
	})
	if err != nil {
		return err
	}

	progress, finish := ui.NewProgress(len(queue))
	engine := dispatch.NewEngine(dispatch.Config{
		Subject:   cfg.Subject,
		HTMLBody:  string(body),
		Limit:     cfg.Limit,
		FromName:  cfg.Sender.Name,
		FromAddr:  cfg.Sender.Address,
		PerSecond: cfg.RatePerSec,
	}, transport, store,
		dispatch.WithLogger(log),
		dispatch.WithConfirm(ui.Confirm(os.Stdin, theme)),
		dispatch.WithProgress(progress),
	)

	sum, err := engine.Run(ctx, queue, len(skipped))
	finish()
	if err != nil {
		return err
	}
	printSummary(theme, cfg, sum)
	return nil
}

func selectLoader(cfg *config.Config) (loader.Loader, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Loader.Type)) {
	case "txt":
		return loader.NewTxt(cfg.Loader.TxtPath), nil
	case "csv":
		return loader.NewCsv(cfg.Loader.CsvPath), nil
	case "sql":
		return loader.NewSQL(cfg.Loader.SQLConn), nil
	default:
		return nil, fmt.Errorf("unknown loader type %q", cfg.Loader.Type)
	}
}

func printSummary(theme ui.Theme, cfg *config.Config, sum dispatch.Summary) {
	theme.Messagef("Sent: %s", theme.Valuef("%d", sum.Sent))
	if sum.Failed > 0 {
		theme.Errorf("Failed: %d (details in the error log)", sum.Failed)
	}
	if sum.Skipped > 0 {
		theme.Messagef("Skipped: %s", theme.Valuef("%d", sum.Skipped))
	}
	if sum.LimitReached {
		theme.Messagef("Send limit reached: %s", theme.Valuef("%d", cfg.Limit))
	}
	if sum.Canceled {
		theme.Messagef("Run canceled")
	}
}
