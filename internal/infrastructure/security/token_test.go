package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault/movies-api/internal/core/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager(clock *fakeClock) *JWTManager {
	return NewJWTManager("test-secret", time.Hour, WithClock(clock.Now))
}

var alice = &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser}

func TestJWTManager_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)

	token, exp, err := m.Issue(alice)
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(time.Hour), exp)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, clock.t, claims.IssuedAt.UTC())
	assert.Equal(t, exp, claims.ExpiresAt.UTC())
}

func TestJWTManager_ExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	m := newTestManager(clock)

	token, _, err := m.Issue(alice)
	require.NoError(t, err)

	for _, offset := range []time.Duration{0, time.Second, 30 * time.Minute, time.Hour - time.Second, time.Hour - time.Nanosecond} {
		clock.t = issuedAt.Add(offset)
		_, err := m.Verify(token)
		assert.NoError(t, err, "offset %s must be accepted", offset)
	}

	for _, offset := range []time.Duration{time.Hour, time.Hour + time.Nanosecond, 2 * time.Hour} {
		clock.t = issuedAt.Add(offset)
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired, "offset %s must be rejected", offset)
	}
}

func TestJWTManager_IssueTruncatesSubSecond(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 900_000_000, time.UTC)}
	m := newTestManager(clock)

	token, exp, err := m.Issue(alice)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC), exp)

	_, err = m.Verify(token)
	assert.NoError(t, err)
}

func TestJWTManager_TamperedTokenRejected(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)

	token, _, err := m.Issue(alice)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	for i := range parts {
		for _, pos := range []int{0, len(parts[i]) / 2, len(parts[i]) - 2} {
			mutated := make([]string, 3)
			copy(mutated, parts)
			b := []byte(mutated[i])
			if b[pos] == 'A' {
				b[pos] = 'B'
			} else {
				b[pos] = 'A'
			}
			mutated[i] = string(b)

			_, err := m.Verify(strings.Join(mutated, "."))
			assert.Error(t, err, "segment %d pos %d", i, pos)
			assert.True(t, domain.IsTokenError(err), "segment %d pos %d: %v", i, pos, err)
		}
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	token, _, err := NewJWTManager("other-secret", time.Hour, WithClock(clock.Now)).Issue(alice)
	require.NoError(t, err)

	_, err = newTestManager(clock).Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTManager_Malformed(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := m.Verify(tok)
		assert.True(t, domain.IsTokenError(err), "token %q: %v", tok, err)
	}
	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenMalformed)
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(clock.t),
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
		UserID: 1, Username: "mallory", Role: domain.RoleAdmin,
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Verify(hs512)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verify(none)
	assert.True(t, domain.IsTokenError(err))
}

func TestJWTManager_RequiresExpiry(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	claims := sessionClaims{UserID: 1, Username: "eve", Role: domain.RoleUser}
	claims.IssuedAt = jwt.NewNumericDate(time.Now())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTManager_RejectsIncompleteClaims(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(clock.t),
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
		UserID: 1, Username: "eve", Role: "superuser",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
