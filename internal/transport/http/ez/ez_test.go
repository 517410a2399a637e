package ez

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-todo/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetupValidator()
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"conflict", domain.Conflict("Email already registered"), 409, "Email already registered"},
		{"wrapped unauthorized", fmt.Errorf("login: %w", domain.Unauthorized("Invalid Email or Password")), 401, "Invalid Email or Password"},
		{"not found", domain.NotFound("Todo not found"), 404, "Todo not found"},
		{"bare sentinel", domain.ErrNotFound, 404, ""},
		{"throttled", domain.TooManyAttempts("slow down"), 429, "slow down"},
		{"action error", BadRequest("missing id"), 400, "missing id"},
		{"internal hides cause", Internal("db exploded", errors.New("dial tcp")), 500, "Internal Server Error"},
		{"unknown", errors.New("sql: connection refused"), 500, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestIsClock(t *testing.T) {
	for _, ok := range []string{"00:00", "09:30", "23:59", "12:00:59"} {
		assert.True(t, IsClock(ok), ok)
	}
	for _, bad := range []string{"", "24:00", "9:30", "12:60", "12:00:60", "noon", "12:00:00:00"} {
		assert.False(t, IsClock(bad), bad)
	}
}

type echoIn struct {
	Name string `json:"name" binding:"required,notblank"`
	At   string `json:"at"   binding:"omitempty,clock"`
}

func serve(r *gin.Engine, method, path, body string, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	r := gin.New()
	// 模拟 AuthJWT 写入的上下文
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Uid"); uid != "" {
			c.Set(CtxUserID, uid)
			c.Set(CtxRole, c.GetHeader("X-Role"))
		}
	})
	e := New(r.Group("/v"))

	Register(e, Action[echoIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/echo",
		Binder: BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *echoIn) (gin.H, error) {
			return gin.H{"name": in.Name, "uid": UserID(c)}, nil
		},
	})
	Register(e, Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/admin",
		Roles:  []string{"admin"},
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			return gin.H{}, nil
		},
	})
	Register(e, Action[struct{}, any]{
		Method: http.MethodDelete,
		Path:   "/fail",
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			return nil, errors.New("secret cause")
		},
	})

	asUser := func(req *http.Request) { req.Header.Set("X-Uid", "u1"); req.Header.Set("X-Role", "user") }
	asAdmin := func(req *http.Request) { req.Header.Set("X-Uid", "u2"); req.Header.Set("X-Role", "admin") }

	w := serve(r, http.MethodPost, "/v/echo", `{"name":"x"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodPost, "/v/echo", `{"name":"x","at":"10:00"}`, asUser)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"code":0,"msg":"OK","data":{"name":"x","uid":"u1"}}`, w.Body.String())

	w = serve(r, http.MethodPost, "/v/echo", `{}`, asUser)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")

	w = serve(r, http.MethodPost, "/v/echo", `{"name":"  \t "}`, asUser)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")

	w = serve(r, http.MethodPost, "/v/echo", `{"name":"x","at":"lunch"}`, asUser)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at must be a time of day")

	w = serve(r, http.MethodPost, "/v/echo", `{"name":`, asUser)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/v/admin", "", asUser).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/v/admin", "", asAdmin).Code)

	w = serve(r, http.MethodDelete, "/v/fail", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret cause")
}
