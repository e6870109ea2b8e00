package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokens(t *testing.T, secret string, clock *fakeClock) *TokenService {
	t.Helper()
	svc, err := NewTokenService(secret, "finance-tracker", WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("", "finance-tracker")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokenRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens := newTestTokens(t, "s3cret", clock)

	token, err := tokens.Issue(Claims{UserID: "user-1", Name: "Ada"})
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "user-1", Name: "Ada"}, claims)
}

func TestTokenExpiresAfterOneHour(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	tokens := newTestTokens(t, "s3cret", clock)

	token, err := tokens.Issue(Claims{UserID: "user-1", Name: "Ada"})
	require.NoError(t, err)

	clock.now = issuedAt.Add(59 * time.Minute)
	_, err = tokens.Verify(token)
	assert.NoError(t, err)

	clock.now = issuedAt.Add(61 * time.Minute)
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenVerifyFailures(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	tokens := newTestTokens(t, "s3cret", clock)
	other := newTestTokens(t, "different", clock)

	foreign, err := other.Issue(Claims{UserID: "user-1", Name: "Ada"})
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id":  "user-1",
		"iss": "finance-tracker",
		"exp": clock.now.Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-1",
		"iss": "finance-tracker",
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "finance-tracker",
		"exp": clock.now.Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not-a-token", ErrTokenMalformed},
		{"empty", "", ErrTokenMalformed},
		{"foreign secret", foreign, ErrTokenSignatureInvalid},
		{"unexpected algorithm", hs512, ErrTokenSignatureInvalid},
		{"missing expiry", noExpiry, ErrTokenMalformed},
		{"missing user id", noUser, ErrTokenMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tokens.Verify(tc.token)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
