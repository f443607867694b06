package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/role"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	ListFn    func(ctx context.Context, params employee.ListParams) ([]employee.EmployeeResponse, int64, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) List(ctx context.Context, params employee.ListParams) ([]employee.EmployeeResponse, int64, error) {
	return f.ListFn(ctx, params)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

type listEnvelope struct {
	Ok   bool                        `json:"ok"`
	Data []employee.EmployeeResponse `json:"data"`
	Meta struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
		Page       int   `json:"page"`
		PageSize   int   `json:"pageSize"`
	} `json:"meta"`
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func TestEmployeeHandler_List(t *testing.T) {
	t.Run("passes search and pagination", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(_ context.Context, params employee.ListParams) ([]employee.EmployeeResponse, int64, error) {
				assert.Equal(t, "asha", params.Search)
				assert.Equal(t, 2, params.Page)
				assert.Equal(t, 100, params.Limit)
				return []employee.EmployeeResponse{{ID: uuid.NewString(), FullName: "Asha Rao"}}, 101, nil
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees?q=asha&page=2&limit=500")

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var env listEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.Len(t, env.Data, 1)
		assert.Equal(t, int64(101), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.TotalPages)
	})

	t.Run("defaults", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(_ context.Context, params employee.ListParams) ([]employee.EmployeeResponse, int64, error) {
				assert.Equal(t, employee.ListParams{Page: 1, Limit: 10}, params)
				return nil, 0, nil
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees?page=abc")

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEmployeeHandler_ListFilters(t *testing.T) {
	roleID := uuid.NewString()

	t.Run("role and inactive", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(_ context.Context, params employee.ListParams) ([]employee.EmployeeResponse, int64, error) {
				assert.Equal(t, "ravi", params.Search)
				assert.Equal(t, roleID, params.RoleID)
				if assert.NotNil(t, params.IsActive) {
					assert.False(t, *params.IsActive)
				}
				assert.False(t, params.Unpaginated)
				return nil, 0, nil
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees?search=ravi&role="+roleID+"&isActive=false")

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("pagination false returns everything on one page", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(_ context.Context, params employee.ListParams) ([]employee.EmployeeResponse, int64, error) {
				assert.Equal(t, employee.ListParams{Unpaginated: true}, params)
				return []employee.EmployeeResponse{{FullName: "Priya Menon"}, {FullName: "Kiran Das"}}, 2, nil
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees?pagination=false")

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var env listEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Len(t, env.Data, 2)
		assert.Equal(t, 1, env.Meta.Page)
		assert.Equal(t, 1, env.Meta.TotalPages)
		assert.Equal(t, 2, env.Meta.PageSize)
	})

	t.Run("invalid isActive", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		c, w := newTestContext(http.MethodGet, "/api/v1/employees?isActive=maybe")

		h.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	selfID := uuid.NewString()

	t.Run("employee reads own record", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(_ context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{ID: id, EmployeeCode: "EMP001"}, nil
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees/"+selfID)
		c.Params = gin.Params{{Key: "id", Value: selfID}}
		c.Set("role", role.Employee)
		c.Set("employee_id", selfID)

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employeeId":"EMP001"`)
	})

	t.Run("employee cannot read another record", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		other := uuid.NewString()
		c, w := newTestContext(http.MethodGet, "/api/v1/employees/"+other)
		c.Params = gin.Params{{Key: "id", Value: other}}
		c.Set("role", role.Employee)
		c.Set("employee_id", selfID)

		h.GetById(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(context.Context, string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		h := employee.NewHandler(svc)
		id := uuid.NewString()
		c, w := newTestContext(http.MethodGet, "/api/v1/employees/"+id)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("role", role.HR)

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found.")
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		var deleted string
		svc := &fakeEmployeeService{
			DeleteFn: func(_ context.Context, target string) error {
				deleted = target
				return nil
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodDelete, "/api/v1/employees/"+id)
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, deleted)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(context.Context, string) error { return employeeerrors.ErrInvalidEmployeeID },
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodDelete, "/api/v1/employees/x")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Delete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
