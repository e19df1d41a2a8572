package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenDomain selects the signing secret. Access and refresh tokens are
// independent signing domains with their own expiry policies.
type TokenDomain string

const (
	DomainAccess  TokenDomain = "access"
	DomainRefresh TokenDomain = "refresh"
)

// Principal type discriminators carried in the role claim.
const (
	RoleClaimCustomer = "Customer"
	RoleClaimGuest    = "Guest"
)

// ErrInvalidToken is the single outcome for every verification failure:
// malformed, expired, bad signature. Callers learn nothing more.
var ErrInvalidToken = errors.New("invalid or expired token")

var (
	accessSecret  []byte
	refreshSecret []byte

	AccessTokenTTL       = 15 * time.Minute
	RefreshTokenTTL      = 7 * 24 * time.Hour
	GuestAccessTokenTTL  = 2 * time.Hour
	GuestRefreshTokenTTL = 7 * 24 * time.Hour
)

func init() {
	accessSecret = []byte(envOr("ACCESS_TOKEN_SECRET", "your-access-token-secret"))
	refreshSecret = []byte(envOr("REFRESH_TOKEN_SECRET", "your-refresh-token-secret"))

	AccessTokenTTL = envSeconds("ACCESS_TOKEN_EXPIRES_IN", AccessTokenTTL)
	RefreshTokenTTL = envSeconds("REFRESH_TOKEN_EXPIRES_IN", RefreshTokenTTL)
	GuestAccessTokenTTL = envSeconds("GUEST_ACCESS_TOKEN_EXPIRES_IN", GuestAccessTokenTTL)
	GuestRefreshTokenTTL = envSeconds("GUEST_REFRESH_TOKEN_EXPIRES_IN", GuestRefreshTokenTTL)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

// Claims carry the subject id plus a role/type discriminator. TenantID and
// CustomerID are explicit because a guest's subject is the guest row id and
// a customer token's subject duplicates CustomerID by construction.
type Claims struct {
	Role       string `json:"role"`
	TenantID   *uint  `json:"tenant_id,omitempty"`
	CustomerID uint   `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

func secretFor(domain TokenDomain) []byte {
	if domain == DomainRefresh {
		return refreshSecret
	}
	return accessSecret
}

func ttlFor(domain TokenDomain, isGuest bool) time.Duration {
	switch {
	case domain == DomainRefresh && isGuest:
		return GuestRefreshTokenTTL
	case domain == DomainRefresh:
		return RefreshTokenTTL
	case isGuest:
		return GuestAccessTokenTTL
	default:
		return AccessTokenTTL
	}
}

// SignClaims signs already-populated claims in the given domain. Callers
// normally go through GenerateToken, which also stamps iat/exp.
func SignClaims(domain TokenDomain, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretFor(domain))
}

// GenerateToken issues a token for subject id with the domain's expiry
// policy. Guest principals get the shorter guest access TTL.
func GenerateToken(domain TokenDomain, subjectID uint, role string, tenantID *uint, customerID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:       role,
		TenantID:   tenantID,
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every issued token distinct, which refresh
			// rotation relies on.
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttlFor(domain, role == RoleClaimGuest))),
		},
	}
	return SignClaims(domain, claims)
}

// ParseToken verifies a token against the domain's secret. Every failure
// mode collapses to ErrInvalidToken.
func ParseToken(tokenString string, domain TokenDomain) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secretFor(domain), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SubjectID decodes the numeric subject id from verified claims.
func SubjectID(claims *Claims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
