package settings_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Netrahoni/SmartPayroll/internal/settings"
	settingserrors "github.com/Netrahoni/SmartPayroll/internal/settings/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSettingsRepository struct {
	getFn    func(ctx context.Context) (*settings.CompanySettings, error)
	createFn func(ctx context.Context, s *settings.CompanySettings) error
	upsertFn func(ctx context.Context, s *settings.CompanySettings) error
}

func (f *fakeSettingsRepository) Get(ctx context.Context) (*settings.CompanySettings, error) {
	if f.getFn != nil {
		return f.getFn(ctx)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSettingsRepository) Create(ctx context.Context, s *settings.CompanySettings) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeSettingsRepository) Upsert(ctx context.Context, s *settings.CompanySettings) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, s)
	}
	return nil
}

func TestSettingsService_Get_LazyCreatesDefaults(t *testing.T) {
	ctx := context.Background()

	var created *settings.CompanySettings
	repo := &fakeSettingsRepository{
		getFn: func(ctx context.Context) (*settings.CompanySettings, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, s *settings.CompanySettings) error {
			created = s
			return nil
		},
	}
	svc := settings.NewService(repo, nil)

	resp, err := svc.Get(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "Example Corp", resp.CompanyName)
	assert.Equal(t, "Bi-Weekly", resp.PayrollFrequency)
	assert.True(t, resp.OvertimeRateMultiplier.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, 60, resp.DefaultBreakDuration)
}

func TestSettingsService_Get_ConcurrentFirstReadsCreateOnce(t *testing.T) {
	ctx := context.Background()

	var creates int64
	repo := &fakeSettingsRepository{
		getFn: func(ctx context.Context) (*settings.CompanySettings, error) {
			// Holds all concurrent callers inside one singleflight round.
			time.Sleep(50 * time.Millisecond)
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, s *settings.CompanySettings) error {
			atomic.AddInt64(&creates, 1)
			return nil
		},
	}
	svc := settings.NewService(repo, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Get(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&creates))
}

func TestSettingsService_Get_CacheHitSkipsRepo(t *testing.T) {
	ctx := context.Background()

	cached := settings.CompanySettingsResponse{
		CompanyName:            "Cached Corp",
		OvertimeRateMultiplier: decimal.RequireFromString("2"),
	}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("settings:company").SetVal(string(payload))

	repo := &fakeSettingsRepository{
		getFn: func(ctx context.Context) (*settings.CompanySettings, error) {
			t.Fatal("repo must not be hit on a cache hit")
			return nil, nil
		},
	}
	svc := settings.NewService(repo, rdb)

	resp, err := svc.Get(ctx)

	assert.NoError(t, err)
	assert.Equal(t, "Cached Corp", resp.CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_Get_CacheMissFillsCache(t *testing.T) {
	ctx := context.Background()

	stored := settings.DefaultCompanySettings()
	stored.CompanyName = "Stored Corp"

	repo := &fakeSettingsRepository{
		getFn: func(ctx context.Context) (*settings.CompanySettings, error) {
			return &stored, nil
		},
	}

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("settings:company").RedisNil()
	mock.Regexp().ExpectSet("settings:company", `.*Stored Corp.*`, 10*time.Minute).SetVal("OK")

	svc := settings.NewService(repo, rdb)

	resp, err := svc.Get(ctx)

	assert.NoError(t, err)
	assert.Equal(t, "Stored Corp", resp.CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()

	var saved *settings.CompanySettings
	repo := &fakeSettingsRepository{
		upsertFn: func(ctx context.Context, s *settings.CompanySettings) error {
			saved = s
			return nil
		},
	}

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("settings:company").SetVal(1)

	svc := settings.NewService(repo, rdb)

	resp, err := svc.Update(ctx, settings.UpdateCompanySettingsRequest{
		CompanyName:            "Acme Payroll",
		CompanyEmail:           "ops@acme.test",
		PayrollFrequency:       "Monthly",
		OvertimeRateMultiplier: decimal.RequireFromString("2"),
		DefaultBreakDuration:   45,
	})

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, uint(1), saved.ID)
	assert.Equal(t, "Acme Payroll", resp.CompanyName)
	assert.True(t, resp.OvertimeRateMultiplier.Equal(decimal.RequireFromString("2")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_Update_RejectsNonPositiveMultiplier(t *testing.T) {
	ctx := context.Background()

	svc := settings.NewService(&fakeSettingsRepository{}, nil)

	_, err := svc.Update(ctx, settings.UpdateCompanySettingsRequest{
		CompanyName:            "Acme Payroll",
		CompanyEmail:           "ops@acme.test",
		OvertimeRateMultiplier: decimal.Zero,
	})

	assert.ErrorIs(t, err, settingserrors.ErrInvalidOvertimeMultiplier)
}

func TestSettingsService_OvertimeMultiplier(t *testing.T) {
	ctx := context.Background()

	stored := settings.DefaultCompanySettings()
	repo := &fakeSettingsRepository{
		getFn: func(ctx context.Context) (*settings.CompanySettings, error) {
			return &stored, nil
		},
	}
	svc := settings.NewService(repo, nil)

	m, err := svc.OvertimeMultiplier(ctx)

	assert.NoError(t, err)
	assert.True(t, m.Equal(decimal.RequireFromString("1.5")))
}
