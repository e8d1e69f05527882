package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

const claimsKey = "claims"

// AccessTokenParser validates bearer tokens.
type AccessTokenParser interface {
	ParseAccessToken(token string) (*domain.AccessClaims, error)
}

// LoginCredentials is the body accepted by the login endpoint.
type LoginCredentials struct {
	Email    string `json:"email" binding:"required,email" example:"user@parkit.co"`
	Password string `json:"password" binding:"required" example:"Sup3rSecret!"`
}

// RequireAuth validates the Authorization header and stores the token claims
// on the request.
func RequireAuth(parser AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithKind(c, domain.KindJWTInvalid)
			return
		}

		claims, err := parser.ParseAccessToken(token)
		if err != nil {
			if errors.Is(err, domain.ErrJWTExpired) {
				abortWithKind(c, domain.KindJWTExpired)
				return
			}
			abortWithKind(c, domain.KindJWTInvalid)
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(claimsKey, claims)
		if reqCtx := GetRequestContext(c); reqCtx != nil {
			reqCtx.UserID = claims.Subject
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortWithKind(c *gin.Context, kind domain.Kind) {
	out := domain.Failure(kind, nil)
	c.AbortWithStatusJSON(out.HTTPStatus(), out)
}

// CurrentUser returns the claims of the authenticated caller.
func CurrentUser(c *gin.Context) (*domain.AccessClaims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*domain.AccessClaims)
	return claims, ok && claims != nil
}

// LoginBody binds and validates the login credentials from the request body.
func LoginBody(c *gin.Context) (LoginCredentials, error) {
	var body LoginCredentials
	if err := c.ShouldBindJSON(&body); err != nil {
		return LoginCredentials{}, err
	}
	body.Email = strings.TrimSpace(body.Email)
	return body, nil
}
