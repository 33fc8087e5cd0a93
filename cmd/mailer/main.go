package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/email"
	"storefront/internal/messaging"
	contactrepo "storefront/internal/repository/contact"
	"storefront/internal/telemetry"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[mailer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracerProvider(ctx, cfg.ServiceName+"-mailer", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatalf("init tracing: %v", err)
	}

	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.WithMaxConns(cfg.DBMaxConns))
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	handler := email.NewContactHandler(
		contactrepo.NewPostgres(dbpool, logger),
		email.NewSender(cfg.EmailAPIBaseURL, cfg.EmailAPIKey),
		cfg.ContactFrom,
		cfg.ContactEmail,
		logger,
	)

	consumer := messaging.NewConsumer(cfg.KafkaBrokers, cfg.ContactTopic, cfg.MailerGroupID, logger)
	defer consumer.Close()

	logger.Printf("consuming %s as %s", cfg.ContactTopic, cfg.MailerGroupID)
	if err := consumer.Consume(ctx, handler.Handle); err != nil {
		logger.Printf("consumer stopped: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Printf("shutdown tracing: %v", err)
	}
	logger.Printf("mailer stopped")
}
