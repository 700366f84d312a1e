package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appctx "stocktrack/internal/core/context"
	"stocktrack/internal/domain/auth"
)

type stubValidator struct {
	user *appctx.UserContext
	err  error
}

func (s stubValidator) ValidateToken(token string) (*appctx.UserContext, error) {
	return s.user, s.err
}

func newGateRouter(validator JWTValidator, op auth.Operation) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/gated", Auth(validator), RequireOperation(op), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGated(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader(t *testing.T) {
	r := newGateRouter(stubValidator{}, auth.OpInventoryRead)
	w := doGated(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	r := newGateRouter(stubValidator{}, auth.OpInventoryRead)
	for _, header := range []string{"token-only", "Basic abc123"} {
		w := doGated(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	r := newGateRouter(stubValidator{err: errors.New("bad signature")}, auth.OpInventoryRead)
	w := doGated(r, "Bearer whatever")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireOperation_RoleGate(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		op       auth.Operation
		wantCode int
	}{
		{"employee reads inventory", "employee", auth.OpInventoryRead, http.StatusOK},
		{"employee blocked from writes", "employee", auth.OpInventoryWrite, http.StatusForbidden},
		{"manager writes inventory", "manager", auth.OpInventoryWrite, http.StatusOK},
		{"manager blocked from deletes", "manager", auth.OpInventoryDelete, http.StatusForbidden},
		{"administrator deletes", "administrator", auth.OpInventoryDelete, http.StatusOK},
		{"forged role blocked", "superuser", auth.OpInventoryRead, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := stubValidator{user: &appctx.UserContext{
				UserID:   "u-1",
				Username: "tester",
				Role:     tt.role,
			}}
			r := newGateRouter(validator, tt.op)
			w := doGated(r, "Bearer valid")
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
