package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCacheKey = "idemp:/onboarding:user-1:key-1"
	testLockKey  = testCacheKey + ":lock"
)

func idempotencyRouter(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/onboarding",
		func(c *gin.Context) { c.Set("user_id", "user-1") },
		Idempotency(rdb),
		func(c *gin.Context) {
			*calls++
			c.Data(http.StatusCreated, "application/json", []byte(`{"id":1}`))
		},
	)
	return r, mock
}

func post(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/onboarding", nil)
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("first request runs and caches the response", func(t *testing.T) {
		calls := 0
		r, mock := idempotencyRouter(t, &calls)
		payload, err := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: []byte(`{"id":1}`)})
		require.NoError(t, err)

		mock.ExpectGet(testCacheKey).RedisNil()
		mock.ExpectSetNX(testLockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(testCacheKey, payload, idempotencyTTL).SetVal("OK")
		mock.ExpectDel(testLockKey).SetVal(1)

		w := post(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat replays the cached response", func(t *testing.T) {
		calls := 0
		r, mock := idempotencyRouter(t, &calls)
		payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: []byte(`{"id":1}`)})

		mock.ExpectGet(testCacheKey).SetVal(string(payload))

		w := post(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get(idempotencyReplayed))
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate conflicts", func(t *testing.T) {
		calls := 0
		r, mock := idempotencyRouter(t, &calls)

		mock.ExpectGet(testCacheKey).RedisNil()
		mock.ExpectSetNX(testLockKey, "locked", idempotencyLockTTL).SetVal(false)

		w := post(r, "key-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
	})

	t.Run("redis failure falls through", func(t *testing.T) {
		calls := 0
		r, mock := idempotencyRouter(t, &calls)

		mock.ExpectGet(testCacheKey).SetErr(errors.New("connection refused"))

		w := post(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("no key skips redis", func(t *testing.T) {
		calls := 0
		r, mock := idempotencyRouter(t, &calls)

		w := post(r, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
