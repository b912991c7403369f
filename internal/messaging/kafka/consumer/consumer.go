package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Netrahoni/SmartPayroll/internal/employee"
	employeeerrors "github.com/Netrahoni/SmartPayroll/internal/employee/errors"
	"github.com/Netrahoni/SmartPayroll/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle seeds the pay snapshot of every newly created
// employee by running the calculator once. Recalculation is a pure write of
// derived fields, so replays are harmless.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	employeeService employee.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = employeeService.CalculatePay(ctx, event.EmployeeID)
		if err != nil {
			if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
				log.Warn("employee no longer exists for event, skipping",
					zap.String("employee_id", event.EmployeeID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("seed pay snapshot failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("pay snapshot seeded from employee_created event",
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
