package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

type stubParser struct {
	claims *domain.AccessClaims
	err    error
	got    string
}

func (p *stubParser) ParseAccessToken(token string) (*domain.AccessClaims, error) {
	p.got = token
	return p.claims, p.err
}

func newAuthRouter(parser AccessTokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Correlate())
	router.GET("/me", RequireAuth(parser), func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sub": claims.Subject, "email": claims.Email})
	})
	return router
}

func decodeCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return body.Code
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	parser := &stubParser{claims: &domain.AccessClaims{Subject: 7, Email: "a@b.com"}}
	router := newAuthRouter(parser)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer abc.def")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if parser.got != "abc.def" {
		t.Fatalf("unexpected token %q", parser.got)
	}
	if !strings.Contains(rr.Body.String(), `"sub":7`) {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestRequireAuthRejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
		code   string
	}{
		{"missing header", "", nil, "PKL_JWT_INVALID"},
		{"wrong scheme", "Basic abc", nil, "PKL_JWT_INVALID"},
		{"empty token", "Bearer  ", nil, "PKL_JWT_INVALID"},
		{"expired", "Bearer tok", domain.ErrJWTExpired, "PKL_JWT_EXPIRED"},
		{"invalid", "Bearer tok", errors.New("bad signature"), "PKL_JWT_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &stubParser{err: tt.err, claims: &domain.AccessClaims{Subject: 1}}
			router := newAuthRouter(parser)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
			if got := decodeCode(t, rr); got != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, got)
			}
		})
	}
}

func TestLoginBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":" a@b.com ","password":"pw"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	body, err := LoginBody(c)
	if err != nil {
		t.Fatalf("LoginBody returned error: %v", err)
	}
	if body.Email != "a@b.com" || body.Password != "pw" {
		t.Fatalf("unexpected body %+v", body)
	}

	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	if _, err := LoginBody(c); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestCurrentUserWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Fatalf("expected no current user")
	}
}
