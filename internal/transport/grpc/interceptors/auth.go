package interceptors

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

const (
	authorizationKey = "authorization"
	bearerPrefix     = "bearer "
)

// TokenParser validates bearer access tokens.
type TokenParser interface {
	ParseAccessToken(token string) (*domain.AccessClaims, error)
}

// AuthOptions fine-tunes interceptor behaviour.
type AuthOptions struct {
	// PublicPrefixes lists full method prefixes served without a token,
	// e.g. "/grpc.health.v1.Health/".
	PublicPrefixes []string
	Logger         *zap.Logger
}

// AuthInterceptor validates incoming calls using JWT access tokens.
type AuthInterceptor struct {
	parser TokenParser
	logger *zap.Logger
	public []string
}

// NewAuthInterceptor constructs a new AuthInterceptor instance.
func NewAuthInterceptor(parser TokenParser, opts AuthOptions) *AuthInterceptor {
	public := make([]string, 0, len(opts.PublicPrefixes))
	for _, prefix := range opts.PublicPrefixes {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			public = append(public, prefix)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthInterceptor{parser: parser, logger: logger, public: public}
}

// Unary enforces authentication on unary calls.
func (ai *AuthInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, err := ai.authorize(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// Stream enforces authentication on streaming calls.
func (ai *AuthInterceptor) Stream() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := ai.authorize(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &claimsStream{ServerStream: ss, ctx: ctx})
	}
}

func (ai *AuthInterceptor) authorize(ctx context.Context, method string) (context.Context, error) {
	if ai == nil || ai.parser == nil || ai.isPublic(method) {
		return ctx, nil
	}

	token, err := tokenFromMetadata(ctx)
	if err != nil {
		ai.logger.Warn("gRPC authentication failed", zap.String("method", method), zap.Error(err))
		return ctx, status.Error(codes.Unauthenticated, err.Error())
	}

	claims, err := ai.parser.ParseAccessToken(token)
	if err != nil {
		ai.logger.Warn("gRPC token validation failed", zap.String("method", method), zap.Error(err))
		if errors.Is(err, domain.ErrJWTExpired) {
			return ctx, status.Error(codes.Unauthenticated, domain.KindJWTExpired.Info().Message)
		}
		return ctx, status.Error(codes.Unauthenticated, domain.KindJWTInvalid.Info().Message)
	}

	return WithClaims(ctx, claims), nil
}

func (ai *AuthInterceptor) isPublic(method string) bool {
	for _, prefix := range ai.public {
		if strings.HasPrefix(method, prefix) {
			return true
		}
	}
	return false
}

type claimsStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *claimsStream) Context() context.Context {
	return s.ctx
}

type claimsContextKey struct{}

// WithClaims returns a derived context containing token claims.
func WithClaims(ctx context.Context, claims *domain.AccessClaims) context.Context {
	if claims == nil {
		return ctx
	}
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts token claims from context when available.
func ClaimsFromContext(ctx context.Context) (*domain.AccessClaims, bool) {
	if ctx == nil {
		return nil, false
	}
	claims, ok := ctx.Value(claimsContextKey{}).(*domain.AccessClaims)
	return claims, ok && claims != nil
}

func tokenFromMetadata(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("missing metadata")
	}

	values := md.Get(authorizationKey)
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return "", errors.New("authorization token required")
	}

	value := strings.TrimSpace(values[0])
	if !strings.HasPrefix(strings.ToLower(value), bearerPrefix) {
		return "", errors.New("invalid authorization header")
	}

	token := strings.TrimSpace(value[len(bearerPrefix):])
	if token == "" {
		return "", errors.New("authorization token required")
	}
	return token, nil
}
