package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "shelf-test-secret"

// signClaims 用指定载荷签发令牌
func signClaims(t *testing.T, claims Claims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestGenerateToken_Claims(t *testing.T) {
	before := time.Now().Add(-time.Second)

	token, err := GenerateToken(42, testSecret, 168)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.True(t, claims.IssuedAt.After(before))
	assert.WithinDuration(t, claims.IssuedAt.Add(168*time.Hour), claims.ExpiresAt.Time, time.Second)

	// jti 是注销黑名单的键
	_, err = uuid.Parse(claims.ID)
	assert.NoError(t, err)
}

func TestGenerateToken_UniqueTokenIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		token, err := GenerateToken(7, testSecret, 24)
		require.NoError(t, err)

		claims, err := ParseToken(token, testSecret)
		require.NoError(t, err)
		assert.False(t, seen[claims.ID], "duplicate jti %s", claims.ID)
		seen[claims.ID] = true
	}
}

func TestParseToken_Rejected(t *testing.T) {
	valid, err := GenerateToken(1, testSecret, 24)
	require.NoError(t, err)

	expired := signClaims(t, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, jwt.SigningMethodHS256, []byte(testSecret))

	unsigned := signClaims(t, Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString()},
	}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		token  string
		secret string
		err    error
	}{
		{"wrong secret", valid, "other-secret", ErrInvalidToken},
		{"expired", expired, testSecret, ErrExpiredToken},
		{"alg none", unsigned, testSecret, ErrInvalidToken},
		{"garbage", "not-a-token", testSecret, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, claims)
		})
	}
}

func TestClaims_TTL(t *testing.T) {
	token, err := GenerateToken(1, testSecret, 2)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	// 黑名单条目的过期时间跟随令牌剩余有效期
	ttl := claims.TTL()
	assert.Greater(t, ttl, time.Hour)
	assert.LessOrEqual(t, ttl, 2*time.Hour)

	past := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}}
	assert.Equal(t, time.Duration(0), past.TTL())
	assert.Equal(t, time.Duration(0), (&Claims{}).TTL())
}
