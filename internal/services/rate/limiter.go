package rate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const keyPrefix = "rate:like_type:"

// TooFastError is returned when a user exceeds a like-type window.
type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too fast"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type window struct {
	name   string
	length time.Duration
	limit  int
}

// Limiter caps like and superlike actions per user over fixed windows.
// A zero limit disables its window.
type Limiter struct {
	store   WindowStore
	windows []window
}

func NewLimiter(store WindowStore, perMinute, per10Sec int) *Limiter {
	windows := make([]window, 0, 2)
	if perMinute > 0 {
		windows = append(windows, window{name: "min", length: time.Minute, limit: perMinute})
	}
	if per10Sec > 0 {
		windows = append(windows, window{name: "10s", length: 10 * time.Second, limit: per10Sec})
	}

	return &Limiter{
		store:   store,
		windows: windows,
	}
}

// Check counts one action for userID and returns TooFastError when any window overflows.
func (l *Limiter) Check(ctx context.Context, userID int64) error {
	retryAfter, allowed, err := l.Allow(ctx, userID)
	if err != nil {
		return err
	}
	if !allowed {
		return TooFastError{RetryAfterSec: retryAfter}
	}
	return nil
}

func (l *Limiter) Allow(ctx context.Context, userID int64) (int64, bool, error) {
	if userID <= 0 {
		return 0, false, fmt.Errorf("invalid user id")
	}
	if len(l.windows) == 0 {
		return 0, true, nil
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)
	for _, w := range l.windows {
		count, ttl, err := l.store.IncrementWindow(ctx, windowKey(w, userID), w.length)
		if err != nil {
			return 0, false, err
		}
		if count > int64(w.limit) {
			retryAfterSec = max(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}
	return 0, true, nil
}

func windowKey(w window, userID int64) string {
	return keyPrefix + w.name + ":" + strconv.FormatInt(userID, 10)
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	return sec
}
