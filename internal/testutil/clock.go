package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionStart is the instant every test session begins at.
var SessionStart = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// StubClock is a settable blog.Clock. Safe for concurrent use.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock set to SessionStart.
func FixedClock() *StubClock {
	return NewStubClock(SessionStart)
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d, e.g. past a token's expiry.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SignToken returns an HS256 JWT for subject that expires ttl after the
// clock's current time. A negative ttl gives an already expired token.
func (c *StubClock) SignToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(c.Now()),
		ExpiresAt: jwt.NewNumericDate(c.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("blogctl-test"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

// StubIDGenerator hands out run and request ids in order: "id-1", "id-2", ...
type StubIDGenerator struct {
	mu     sync.Mutex
	prefix string
	issued int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{prefix: "id"}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return fmt.Sprintf("%s-%d", g.prefix, g.issued)
}

// Issued reports how many ids were handed out, one per run plus one per request.
func (g *StubIDGenerator) Issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.issued
}
