package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Netrahoni/SmartPayroll/internal/middleware"
	"github.com/Netrahoni/SmartPayroll/internal/payroll"
	payrollerrors "github.com/Netrahoni/SmartPayroll/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeRunService struct {
	runFn     func(ctx context.Context, req payroll.RunPayrollRequest) (payroll.PayrollRunResponse, error)
	getAllFn  func(ctx context.Context) ([]payroll.PayrollRunResponse, error)
	getByIDFn func(ctx context.Context, id string) (payroll.PayrollRunResponse, error)
}

func (f *fakeRunService) Run(ctx context.Context, req payroll.RunPayrollRequest) (payroll.PayrollRunResponse, error) {
	return f.runFn(ctx, req)
}

func (f *fakeRunService) GetAll(ctx context.Context) ([]payroll.PayrollRunResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakeRunService) GetByID(ctx context.Context, id string) (payroll.PayrollRunResponse, error) {
	return f.getByIDFn(ctx, id)
}

func TestPayrollHandler_Run(t *testing.T) {
	svc := &fakeRunService{
		runFn: func(ctx context.Context, req payroll.RunPayrollRequest) (payroll.PayrollRunResponse, error) {
			assert.Equal(t, "February 2026", req.PayPeriod)
			assert.Equal(t, "2026-02-01", req.PeriodStart)
			assert.Equal(t, "2026-02-28", req.PeriodEnd)
			return payroll.PayrollRunResponse{
				ID:            uuid.New().String(),
				PayPeriod:     req.PayPeriod,
				PeriodStart:   req.PeriodStart,
				PeriodEnd:     req.PeriodEnd,
				TotalGrossPay: decimal.RequireFromString("4500"),
				TotalTaxes:    decimal.RequireFromString("675"),
				TotalNetPay:   decimal.RequireFromString("3825"),
				EmployeeCount: 3,
			}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"payPeriod":"February 2026","periodStart":"2026-02-01","periodEnd":"2026-02-28"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/run", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Run(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrollHandler_Run_NoEmployees(t *testing.T) {
	svc := &fakeRunService{
		runFn: func(ctx context.Context, req payroll.RunPayrollRequest) (payroll.PayrollRunResponse, error) {
			return payroll.PayrollRunResponse{}, payrollerrors.ErrNoEmployees
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"payPeriod":"February 2026","periodStart":"2026-02-01","periodEnd":"2026-02-28"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/run", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Run(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "No employees to run payroll for.", env.Error.Message)
}

func TestPayrollHandler_Run_IdempotencyFinalize(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	runResp := payroll.PayrollRunResponse{
		ID:            uuid.New().String(),
		PayPeriod:     "February 2026",
		EmployeeCount: 3,
		TotalGrossPay: decimal.RequireFromString("4500"),
		TotalTaxes:    decimal.RequireFromString("675"),
		TotalNetPay:   decimal.RequireFromString("3825"),
	}
	svc := &fakeRunService{
		runFn: func(ctx context.Context, req payroll.RunPayrollRequest) (payroll.PayrollRunResponse, error) {
			return runResp, nil
		},
	}

	payload, err := json.Marshal(runResp)
	assert.NoError(t, err)
	mock.ExpectSet("idemp:/payroll/run:user-1:key-1", payload, 24*time.Hour).SetVal("OK")
	mock.ExpectDel("idemp:/payroll/run:user-1:key-1:lock").SetVal(1)

	h := payroll.NewHandlerWithRedis(svc, rdb)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"payPeriod":"February 2026","periodStart":"2026-02-01","periodEnd":"2026-02-28"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/run", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.IdempotencyCacheKey, "idemp:/payroll/run:user-1:key-1")
	c.Set(middleware.IdempotencyLockKey, "idemp:/payroll/run:user-1:key-1:lock")

	h.Run(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollHandler_GetById_NotFound(t *testing.T) {
	svc := &fakeRunService{
		getByIDFn: func(ctx context.Context, id string) (payroll.PayrollRunResponse, error) {
			return payroll.PayrollRunResponse{}, payrollerrors.ErrRunNotFound
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/runs/123", nil)
	c.Params = []gin.Param{{Key: "id", Value: "123"}}

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestPayrollHandler_GetAll(t *testing.T) {
	svc := &fakeRunService{
		getAllFn: func(ctx context.Context) ([]payroll.PayrollRunResponse, error) {
			return []payroll.PayrollRunResponse{{ID: uuid.New().String(), PayPeriod: "January 2026"}}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/runs", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var runs []payroll.PayrollRunResponse
	assert.NoError(t, json.Unmarshal(env.Data, &runs))
	assert.Len(t, runs, 1)
	assert.Equal(t, "January 2026", runs[0].PayPeriod)
}
