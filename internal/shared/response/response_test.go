package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	meta := response.NewPaginationMeta(21, 2, 10)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)

	empty := response.NewPaginationMeta(0, 1, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Success(c, http.StatusOK, "Step 2 completed", gin.H{"employeeId": "x"}, nil)

		var body response.ApiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.Equal(t, "Step 2 completed", body.Message)
	})

	t.Run("error aborts", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Error(c, http.StatusConflict, "CONFLICT", "User already exists.", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.True(t, c.IsAborted())
		assert.Contains(t, w.Body.String(), `"code":"CONFLICT"`)
	})
}
