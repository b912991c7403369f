package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	settingserrors "github.com/Netrahoni/SmartPayroll/internal/settings/errors"
	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	cacheKey = "settings:company"
	cacheTTL = 10 * time.Minute
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (CompanySettingsResponse, error)
	Update(ctx context.Context, req UpdateCompanySettingsRequest) (CompanySettingsResponse, error)
	OvertimeMultiplier(ctx context.Context) (decimal.Decimal, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

// Get is lazy-create: the first read seeds the singleton row with defaults.
// Concurrent first reads collapse onto one DB round trip via singleflight, so
// exactly one row is ever created.
func (s *service) Get(ctx context.Context) (CompanySettingsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp CompanySettingsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		return s.loadOrCreate(ctx)
	})
	if err != nil {
		return CompanySettingsResponse{}, err
	}

	resp := mapToResponse(*v.(*CompanySettings))
	s.writeCache(ctx, resp)
	return resp, nil
}

func (s *service) loadOrCreate(ctx context.Context) (*CompanySettings, error) {
	current, err := s.repo.Get(ctx)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("load company settings failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}

	defaults := DefaultCompanySettings()
	if err := s.repo.Create(ctx, &defaults); err != nil {
		// Lost a cross-process race on the singleton row: read the winner.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return s.repo.Get(ctx)
		}
		s.logger.Error("create default company settings failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}

	s.logger.Info("company settings created with defaults")
	return &defaults, nil
}

func (s *service) Update(ctx context.Context, req UpdateCompanySettingsRequest) (CompanySettingsResponse, error) {
	if !req.OvertimeRateMultiplier.IsPositive() {
		return CompanySettingsResponse{}, settingserrors.ErrInvalidOvertimeMultiplier
	}

	updated := CompanySettings{
		ID:                     1,
		CompanyName:            req.CompanyName,
		CompanyEmail:           req.CompanyEmail,
		CompanyPhone:           req.CompanyPhone,
		CompanyAddress:         req.CompanyAddress,
		Timezone:               req.Timezone,
		WorkStartTime:          req.WorkStartTime,
		WorkEndTime:            req.WorkEndTime,
		Currency:               req.Currency,
		PayrollFrequency:       req.PayrollFrequency,
		OvertimeRateMultiplier: req.OvertimeRateMultiplier,
		DefaultBreakDuration:   req.DefaultBreakDuration,
	}

	if err := s.repo.Upsert(ctx, &updated); err != nil {
		s.logger.Error("update company settings failed", zap.Error(err))
		return CompanySettingsResponse{}, apperror.Persistence(err)
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Warn("settings cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("company settings updated",
		zap.String("overtime_rate_multiplier", updated.OvertimeRateMultiplier.String()),
	)

	return mapToResponse(updated), nil
}

// OvertimeMultiplier feeds the pay calculator's overtime rate.
func (s *service) OvertimeMultiplier(ctx context.Context) (decimal.Decimal, error) {
	resp, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return resp.OvertimeRateMultiplier, nil
}

func (s *service) writeCache(ctx context.Context, resp CompanySettingsResponse) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey, string(payload), cacheTTL).Err(); err != nil {
		s.logger.Warn("settings cache write failed", zap.Error(err))
	}
}

func mapToResponse(s CompanySettings) CompanySettingsResponse {
	resp := CompanySettingsResponse{
		CompanyName:            s.CompanyName,
		CompanyEmail:           s.CompanyEmail,
		CompanyPhone:           s.CompanyPhone,
		CompanyAddress:         s.CompanyAddress,
		Timezone:               s.Timezone,
		WorkStartTime:          s.WorkStartTime,
		WorkEndTime:            s.WorkEndTime,
		Currency:               s.Currency,
		PayrollFrequency:       s.PayrollFrequency,
		OvertimeRateMultiplier: s.OvertimeRateMultiplier,
		DefaultBreakDuration:   s.DefaultBreakDuration,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
