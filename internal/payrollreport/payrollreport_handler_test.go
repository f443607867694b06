package payrollreport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/payrollreport"
	payrollreporterrors "go-ems/internal/payrollreport/errors"
	payrollreportMock "go-ems/internal/payrollreport/mock"
	"go-ems/internal/role"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Ok      bool            `json:"ok"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
	} `json:"meta"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := payrollreportMock.NewMockService(ctrl)
	empID := uuid.NewString()

	svc.EXPECT().
		List(gomock.Any(), payrollreport.Viewer{EmployeeID: empID, Role: role.Employee}, payrollreport.ListParams{
			Search: "asha",
			Month:  "March",
			Sort:   "net_salary",
			Desc:   false,
			Page:   1,
			Limit:  100,
		}).
		Return([]payrollreport.SalaryResponse{{ID: uuid.NewString(), EmployeeFullName: "Asha Rao"}}, int64(1), nil)

	h := payrollreport.NewHandler(svc)
	c, w := newContext(http.MethodGet, "/api/v1/salaries?search=asha&month=March&sort=net_salary&order=asc&limit=250", "")
	c.Set("employee_id", empID)
	c.Set("role", role.Employee)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Ok)
	assert.Equal(t, "Salary list fetched successfully", env.Message)
	require.NotNil(t, env.Meta)
	assert.EqualValues(t, 1, env.Meta.Total)
}

func TestHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := payrollreportMock.NewMockService(ctrl)
		id := uuid.NewString()
		svc.EXPECT().
			GetByID(gomock.Any(), payrollreport.Viewer{Role: role.HR}, id).
			Return(payrollreport.SalaryResponse{ID: id, Month: "March"}, nil)

		h := payrollreport.NewHandler(svc)
		c, w := newContext(http.MethodGet, "/api/v1/salaries/"+id, "")
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("role", role.HR)

		h.GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Salary fetched successfully", decode(t, w).Message)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := payrollreportMock.NewMockService(ctrl)
		svc.EXPECT().
			GetByID(gomock.Any(), gomock.Any(), "missing").
			Return(payrollreport.SalaryResponse{}, payrollreporterrors.ErrSalaryNotFound)

		h := payrollreport.NewHandler(svc)
		c, w := newContext(http.MethodGet, "/api/v1/salaries/missing", "")
		c.Params = gin.Params{{Key: "id", Value: "missing"}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, decode(t, w).Ok)
	})
}

func TestHandler_Export(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := payrollreportMock.NewMockService(ctrl)
		svc.EXPECT().
			Export(gomock.Any(), payrollreport.ExportRequest{Month: "March", Year: 2025, Format: "xlsx"}).
			Return(payrollreport.ExportResponse{URL: "https://example.test/r.xlsx", Format: payrollreport.FormatXLSX, Rows: 3}, nil)

		h := payrollreport.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/api/v1/salaries/export", `{"month":"March","year":2025,"format":"xlsx"}`)

		h.Export(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decode(t, w)
		assert.Equal(t, "XLSX file has been generated successfully", env.Message)
		var data payrollreport.ExportResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "https://example.test/r.xlsx", data.URL)
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := payrollreportMock.NewMockService(ctrl)

		h := payrollreport.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/api/v1/salaries/export", `{"year":"soon"}`)

		h.Export(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing period", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := payrollreportMock.NewMockService(ctrl)
		svc.EXPECT().
			Export(gomock.Any(), payrollreport.ExportRequest{}).
			Return(payrollreport.ExportResponse{}, payrollreporterrors.ErrPeriodRequired)

		h := payrollreport.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/api/v1/salaries/export", `{}`)

		h.Export(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
