package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/navboard/internal/config"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLimiter() (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(config.Auth{
		MaxLoginAttempts: 3,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  5 * time.Minute,
	})
	rl.now = clock.now
	return rl, clock
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(config.Auth{})

	assert.Equal(t, 5, rl.maxAttempts)
	assert.Equal(t, 15*time.Minute, rl.windowDuration)
	assert.Equal(t, 30*time.Minute, rl.lockoutDuration)
}

func TestRateLimiter_LocksAfterMaxAttempts(t *testing.T) {
	rl, _ := newTestLimiter()
	ip := "10.0.0.1"

	for i := 0; i < 2; i++ {
		locked, _ := rl.RecordFailure(ip)
		assert.False(t, locked)
		allowed, _ := rl.Allow(ip)
		assert.True(t, allowed)
	}

	locked, retryAfter := rl.RecordFailure(ip)
	assert.True(t, locked)
	assert.Equal(t, 5*time.Minute, retryAfter)

	allowed, wait := rl.Allow(ip)
	assert.False(t, allowed)
	assert.Equal(t, 5*time.Minute, wait)

	allowed, _ = rl.Allow("10.0.0.2")
	assert.True(t, allowed, "other clients are unaffected")
}

func TestRateLimiter_LockoutExpires(t *testing.T) {
	rl, clock := newTestLimiter()
	ip := "10.0.0.1"

	for i := 0; i < 3; i++ {
		rl.RecordFailure(ip)
	}
	clock.advance(5*time.Minute + time.Second)

	allowed, _ := rl.Allow(ip)
	assert.True(t, allowed)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl, clock := newTestLimiter()
	ip := "10.0.0.1"

	rl.RecordFailure(ip)
	rl.RecordFailure(ip)
	clock.advance(2 * time.Minute)

	locked, _ := rl.RecordFailure(ip)
	assert.False(t, locked, "failures outside the window are forgotten")
}

func TestRateLimiter_SuccessClears(t *testing.T) {
	rl, _ := newTestLimiter()
	ip := "10.0.0.1"

	rl.RecordFailure(ip)
	rl.RecordFailure(ip)
	rl.RecordSuccess(ip)

	locked, _ := rl.RecordFailure(ip)
	assert.False(t, locked)
}

func TestRateLimiter_PrunesExpiredRecords(t *testing.T) {
	rl, clock := newTestLimiter()

	rl.RecordFailure("10.0.0.1")
	clock.advance(10 * time.Minute)
	rl.RecordFailure("10.0.0.2")

	assert.Len(t, rl.attempts, 1)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter()
	router := gin.New()
	router.POST("/login", rl.Middleware(), func(c *gin.Context) {
		rl.RecordFailure(c.ClientIP())
		c.Status(http.StatusBadRequest)
	})

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "300", w.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{400, 400, 400, 429}, codes)
}
