package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netrahoni/SmartPayroll/internal/employee"
	"github.com/Netrahoni/SmartPayroll/internal/events"
	"github.com/Netrahoni/SmartPayroll/internal/messaging/kafka"
	"github.com/Netrahoni/SmartPayroll/internal/messaging/kafka/consumer"
	"github.com/Netrahoni/SmartPayroll/internal/settings"
	"github.com/Netrahoni/SmartPayroll/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer seeds pay snapshots for newly created employees from the
// employee lifecycle topic.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeRepo := employee.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	settingsService := settings.NewService(settingsRepo, nil)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	employeeService := employee.NewServiceWithOutbox(
		gormDB, employeeRepo, outboxRepo, settingsService, ratesFromEnv(),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "smartpayroll-pay-snapshot",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, reader, employeeService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
