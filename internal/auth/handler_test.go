package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "moviehub-test",
		Duration: time.Hour,
	}
	h := NewHandler(tokens, "letmein")

	router := gin.New()
	h.RegisterRoutes(router.Group("/auth"))
	return router, tokens
}

func postToken(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTokenExchange(t *testing.T) {
	router, tokens := newAuthRouter(t)

	w := postToken(router, `{"key":"letmein"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenExchangeRejectsBadKey(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := postToken(router, `{"key":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postToken(router, `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
