package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"menurate/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var errMissingToken = errors.New("missing authorization token")

// ErrEmptySecret is returned when no signing secret is configured. An empty
// HMAC key would accept tokens anyone can mint.
var ErrEmptySecret = errors.New("jwt secret is not configured")

// TokenVerifier checks HS256 bearer tokens issued by the auth service. The
// subject claim carries the numeric user id.
type TokenVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(config utils.JWTConfig) (*TokenVerifier, error) {
	if strings.TrimSpace(config.Secret) == "" {
		return nil, ErrEmptySecret
	}
	return &TokenVerifier{
		secret: []byte(config.Secret),
		issuer: config.Issuer,
	}, nil
}

// Verify validates the token and returns the user id in its subject.
func (v *TokenVerifier) Verify(tokenString string) (int64, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return 0, err
	}

	return subjectID(claims["sub"])
}

// subjectID accepts sub as a JSON number or a decimal string.
func subjectID(sub any) (int64, error) {
	var id int64
	switch s := sub.(type) {
	case float64:
		id = int64(s)
		if float64(id) != s {
			return 0, fmt.Errorf("subject %v is not an integer", s)
		}
	case string:
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("subject %q is not numeric: %w", s, err)
		}
		id = parsed
	default:
		return 0, errors.New("subject claim missing")
	}

	if id <= 0 {
		return 0, fmt.Errorf("subject %d is not a valid user id", id)
	}
	return id, nil
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("invalid token format. Use: Bearer <token>")
	}

	return strings.TrimSpace(token), nil
}

// Auth middleware rejects requests without a valid bearer token
func Auth(verifier *TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				utils.ResponseUnauthorized(w, capitalize(err.Error()))
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("Invalid bearer token",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), userID)))
		})
	}
}

// OptionalAuth lets anonymous requests through and identifies the viewer when a
// token is sent. A token that is present but invalid is still rejected.
func OptionalAuth(verifier *TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if errors.Is(err, errMissingToken) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				utils.ResponseUnauthorized(w, capitalize(err.Error()))
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("Invalid bearer token on optional route",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), userID)))
		})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
