package app

import (
	"os"

	"github.com/Netrahoni/SmartPayroll/internal/auth"
	"github.com/Netrahoni/SmartPayroll/internal/employee"
	"github.com/Netrahoni/SmartPayroll/internal/paycalc"
	"github.com/Netrahoni/SmartPayroll/internal/payroll"
	"github.com/Netrahoni/SmartPayroll/internal/settings"
	"github.com/Netrahoni/SmartPayroll/internal/shared/connection"
	"github.com/Netrahoni/SmartPayroll/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id VARCHAR(64),
	aggregate_type VARCHAR(64) NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type VARCHAR(64) NOT NULL,
	topic VARCHAR(128) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message VARCHAR(500),
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
	ON outbox_events (status, created_at);
`

func BuildApp(router *gin.Engine) error {
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

	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&payroll.PayrollRun{},
		&payroll.PayrollRunLine{},
		&settings.CompanySettings{},
		&auth.User{},
		&task.Task{},
	); err != nil {
		return err
	}
	// The outbox is plain SQL, not a gorm entity.
	return gormDB.Exec(outboxTableDDL).Error
}

// ratesFromEnv starts from the statutory defaults and lets deployments
// override single figures without a rebuild.
func ratesFromEnv() paycalc.Rates {
	rates := paycalc.DefaultRates()

	override := func(key string, dst *decimal.Decimal) {
		raw := os.Getenv(key)
		if raw == "" {
			return
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			zap.L().Warn("ignoring malformed rate override",
				zap.String("key", key), zap.String("value", raw))
			return
		}
		*dst = v
	}

	override("PAY_MONTHLY_ALLOWANCE", &rates.MonthlyAllowance)
	override("PAY_INCOME_TAX_RATE", &rates.IncomeTaxRate)
	override("PAY_NI_THRESHOLD", &rates.NIThreshold)
	override("PAY_NI_RATE", &rates.NIRate)
	override("PAY_PENSION_RATE", &rates.PensionRate)

	return rates
}
