package leavebalance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/leavebalance"
	leavebalanceerrors "go-ems/internal/leavebalance/errors"
	"go-ems/internal/role"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type apiError struct {
	Code string `json:"code"`
}

type apiEnvelope struct {
	Ok      bool            `json:"ok"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeLeaveBalanceService struct {
	recordFn func(ctx context.Context, req leavebalance.RecordUsageRequest) (leavebalance.MonthUsage, error)
	getFn    func(ctx context.Context, employeeID string) (leavebalance.LeaveBalanceResponse, error)
}

func (f *fakeLeaveBalanceService) WithTx(*gorm.DB) leavebalance.Service { return f }
func (f *fakeLeaveBalanceService) Initialize(context.Context, string, int) (bool, error) {
	return false, nil
}
func (f *fakeLeaveBalanceService) RecordMonthlyUsage(ctx context.Context, req leavebalance.RecordUsageRequest) (leavebalance.MonthUsage, error) {
	return f.recordFn(ctx, req)
}
func (f *fakeLeaveBalanceService) LookupMonthEntry(context.Context, string, string, int) (leavebalance.MonthUsage, error) {
	return leavebalance.MonthUsage{}, nil
}
func (f *fakeLeaveBalanceService) GetByEmployee(ctx context.Context, employeeID string) (leavebalance.LeaveBalanceResponse, error) {
	return f.getFn(ctx, employeeID)
}
func (f *fakeLeaveBalanceService) SoftDelete(context.Context, string) error { return nil }

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestLeaveBalanceHandler_GetByEmployee(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("hr can read any ledger", func(t *testing.T) {
		h := leavebalance.NewHandler(&fakeLeaveBalanceService{
			getFn: func(_ context.Context, id string) (leavebalance.LeaveBalanceResponse, error) {
				return leavebalance.LeaveBalanceResponse{EmployeeID: id, Leave: 10, Remaining: 10}, nil
			},
		})
		c, w := newContext(http.MethodGet, "/api/v1/leave-balances/"+employeeID, "")
		c.Params = gin.Params{{Key: "employeeId", Value: employeeID}}
		c.Set("role", role.HR)
		c.Set("employee_id", uuid.New().String())

		h.GetByEmployee(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), employeeID)
	})

	t.Run("employee cannot read another ledger", func(t *testing.T) {
		h := leavebalance.NewHandler(&fakeLeaveBalanceService{})
		c, w := newContext(http.MethodGet, "/api/v1/leave-balances/"+employeeID, "")
		c.Params = gin.Params{{Key: "employeeId", Value: employeeID}}
		c.Set("role", role.Employee)
		c.Set("employee_id", uuid.New().String())

		h.GetByEmployee(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		h := leavebalance.NewHandler(&fakeLeaveBalanceService{
			getFn: func(context.Context, string) (leavebalance.LeaveBalanceResponse, error) {
				return leavebalance.LeaveBalanceResponse{}, leavebalanceerrors.ErrLeaveBalanceNotFound
			},
		})
		c, w := newContext(http.MethodGet, "/api/v1/leave-balances/"+employeeID, "")
		c.Params = gin.Params{{Key: "employeeId", Value: employeeID}}
		c.Set("role", role.Employee)
		c.Set("employee_id", employeeID)

		h.GetByEmployee(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestLeaveBalanceHandler_RecordUsage(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		h := leavebalance.NewHandler(&fakeLeaveBalanceService{
			recordFn: func(_ context.Context, req leavebalance.RecordUsageRequest) (leavebalance.MonthUsage, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, "October", req.Month)
				assert.Equal(t, 2, req.UnpaidLeaveUsed)
				return leavebalance.MonthUsage{Month: "October", Year: 2026, UnpaidLeaveUsed: 2}, nil
			},
		})
		c, w := newContext(http.MethodPost, "/api/v1/leave-balances/"+employeeID+"/usage",
			`{"month":"October","year":2026,"paidLeaveUsed":0,"unpaidLeaveUsed":2}`)
		c.Params = gin.Params{{Key: "employeeId", Value: employeeID}}

		h.RecordUsage(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing month", func(t *testing.T) {
		h := leavebalance.NewHandler(&fakeLeaveBalanceService{})
		c, w := newContext(http.MethodPost, "/api/v1/leave-balances/"+employeeID+"/usage", `{"year":2026}`)
		c.Params = gin.Params{{Key: "employeeId", Value: employeeID}}

		h.RecordUsage(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
