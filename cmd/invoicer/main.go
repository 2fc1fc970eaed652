package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"snackspace/internal/batch"
	"snackspace/internal/config"
	"snackspace/internal/email"
	"snackspace/internal/invoice"
	"snackspace/internal/logging"
	"snackspace/internal/mysql"
	"snackspace/internal/outbox"
	"snackspace/internal/telemetry"
)

// invoicer runs one billing batch: prepare the period's invoices, generate
// their emails, commit, and optionally dispatch the outbox. Intended to be
// cron-invoked once per billing cycle; concurrent runs are excluded by the
// database's row locks, not by this process.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "invoicer:", err)
		os.Exit(1)
	}
}

func run() error {
	send := flag.Bool("send", false, "dispatch pending emails after generating invoices")
	sendOnly := flag.Bool("send-only", false, "skip generation and only dispatch pending emails")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	batchLog := logging.NewBatchLog(cfg.BatchLogFile)

	ctx := context.Background()
	db, err := mysql.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	// The batch is strictly sequential; one session is all it may use.
	db.SetMaxOpenConns(1)

	queries := mysql.New(db)
	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)

	var sender email.Sender = email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
	}, logger)
	if cfg.Env == "dev" {
		// Never hit a real relay from a dev environment.
		sender = &email.LogSender{Logger: logger}
	}

	gen := invoice.NewGenerator(logger, batchLog, metrics)
	disp := outbox.NewDispatcher(queries, sender, logger, batchLog, metrics)
	runner := batch.NewRunner(queries, gen, disp, logger, batchLog, metrics)

	return runner.Run(ctx, batch.Options{Send: *send, SendOnly: *sendOnly})
}
