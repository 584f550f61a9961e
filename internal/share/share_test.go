package share

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dividizky/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, ttl)
	require.NoError(t, err)
	return m
}

func TestManager_RoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour)
	req := NewRequest([]models.Participant{
		{Name: "Alice", Expense: 90.25},
		{Name: "Bob", Expense: 30},
		models.NewAnonymousParticipant(),
	}, 2)

	token, expiresAt, err := m.Issue(req)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, req, got)
	assert.Len(t, got.People, 2, "anonymous entries are not carried")
	assert.Equal(t, []models.Participant{
		{Name: "Alice", Expense: 90.25},
		{Name: "Bob", Expense: 30},
	}, got.Participants())
}

func TestManager_TokensAreUnique(t *testing.T) {
	m := newTestManager(t, time.Hour)
	req := Request{People: []Person{{Name: "A", Expense: 1}}, Additional: 1}

	first, _, err := m.Issue(req)
	require.NoError(t, err)
	second, _, err := m.Issue(req)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestManager_Expired(t *testing.T) {
	m := newTestManager(t, time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, _, err := m.Issue(Request{People: []Person{{Name: "A", Expense: 1}}})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsForeignTokens(t *testing.T) {
	m := newTestManager(t, time.Hour)
	token, _, err := m.Issue(Request{People: []Person{{Name: "A", Expense: 1}}})
	require.NoError(t, err)

	other, err := NewManager(strings.Repeat("x", MinSecretLength), time.Hour)
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "different secret")

	_, err = m.Parse(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken, "tampered signature")

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken, "garbage")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{})
	none, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken, "alg none")
}

func TestNewManager_WeakSecret(t *testing.T) {
	_, err := NewManager("short", time.Hour)
	assert.ErrorIs(t, err, ErrWeakSecret)
}
