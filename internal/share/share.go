// Package share issues and verifies signed share links for a settlement.
//
// A link token carries the calculation input, not the result, and nothing is
// stored server-side: opening a link verifies the signature and recomputes.
package share

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mmynk/dividizky/internal/models"
)

// MinSecretLength is the shortest accepted HMAC secret, in bytes.
const MinSecretLength = 32

var (
	ErrInvalidToken = errors.New("invalid or expired share token")
	ErrWeakSecret   = fmt.Errorf("share secret must be at least %d bytes", MinSecretLength)
)

// Person is one paying participant as stored in a token.
type Person struct {
	Name    string  `json:"n"`
	Expense float64 `json:"e"`
}

// Request is the calculation input a token carries.
type Request struct {
	People     []Person `json:"people"`
	Additional int      `json:"additional,omitempty"`
}

// Participants converts the token people to calculator input.
func (r Request) Participants() []models.Participant {
	out := make([]models.Participant, len(r.People))
	for i, p := range r.People {
		out[i] = models.Participant{Name: p.Name, Expense: p.Expense}
	}
	return out
}

// NewRequest builds a Request from calculator input. Anonymous entries are
// dropped; they are expressed through additional.
func NewRequest(people []models.Participant, additional int) Request {
	r := Request{People: make([]Person, 0, len(people)), Additional: additional}
	for _, p := range people {
		if p.Anonymous {
			continue
		}
		r.People = append(r.People, Person{Name: p.Name, Expense: p.Expense})
	}
	return r
}

// Claims are the JWT claims of a share token.
type Claims struct {
	Request Request `json:"req"`
	jwt.RegisteredClaims
}

// Manager signs and verifies share tokens.
type Manager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewManager creates a Manager signing with secretKey (HS256).
// Tokens expire after ttl.
func NewManager(secretKey string, ttl time.Duration) (*Manager, error) {
	if len(secretKey) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &Manager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// Issue signs req into a token and returns it with its expiry time.
func (m *Manager) Issue(req Request) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := &Claims{
		Request: req,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign share token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies tokenString and returns the request it carries.
func (m *Manager) Parse(tokenString string) (Request, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Request{}, ErrInvalidToken
	}

	return claims.Request, nil
}
