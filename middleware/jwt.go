package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pocketledger/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserIDKey is where the authenticated user id is stored on the gin context.
const ContextUserIDKey = "userID"

// Unauthenticated messages
const (
	MsgNoToken      = "no token, authorization denied"
	MsgTokenFormat  = "token format is not valid"
	MsgTokenInvalid = "token is not valid"
)

// ErrTokenInvalid is returned for any token that fails verification.
var ErrTokenInvalid = errors.New("token is not valid")

// ClaimsUser is the user part of the token payload.
type ClaimsUser struct {
	ID uint `json:"id"`
}

// Claims token payload: {"user": {"id": ...}} plus expiry.
type Claims struct {
	User ClaimsUser `json:"user"`
	jwt.RegisteredClaims
}

// JWT signs and verifies HS256 bearer tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWT creates the token manager from configuration.
func NewJWT(cfg config.JWTConfig) *JWT {
	ttl := cfg.ExpireTime
	if ttl <= 0 {
		ttl = 5 * time.Hour
	}
	return &JWT{secret: []byte(cfg.Secret), ttl: ttl, now: time.Now}
}

// GenerateToken issues a token for userID expiring after the configured window.
func (j *JWT) GenerateToken(userID uint) (string, error) {
	now := j.now()
	claims := Claims{
		User: ClaimsUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// ParseToken verifies signature, algorithm and expiry.
func (j *JWT) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, errors.Join(ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User.ID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Auth rejects requests without a valid "Authorization: Bearer <token>" header
// and stores the user id for downstream handlers.
func (j *JWT) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": MsgNoToken})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": MsgTokenFormat})
			return
		}

		claims, err := j.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": MsgTokenInvalid})
			return
		}

		c.Set(ContextUserIDKey, claims.User.ID)
		c.Next()
	}
}

// GetCurrentUserID returns the authenticated user id, 0 when absent.
func GetCurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
