// Package throttle rate-limits high-frequency UI events such as pointer
// moves that only feed crosshair updates.
package throttle

import "time"

// Gate は高頻度イベントの処理間隔を制限するインターフェースです。
type Gate interface {
	Allow() bool
	Reset()
}

// Limiter enforces a minimum gap between consecutive allowed events.
// Events arriving inside the gap are dropped, not queued.
type Limiter struct {
	minGap time.Duration
	last   time.Time
	now    func() time.Time // injectable clock for tests
}

var _ Gate = (*Limiter)(nil)

// NewLimiter は新しいLimiterのインスタンスを生成します。
// minGapが0以下の場合、すべてのイベントを許可します。
func NewLimiter(minGap time.Duration) *Limiter {
	return &Limiter{
		minGap: minGap,
		now:    time.Now,
	}
}

// Allow reports whether enough time has passed since the last allowed
// event, recording the event when it is allowed.
func (l *Limiter) Allow() bool {
	if l.minGap <= 0 {
		return true
	}
	now := l.now()
	if !l.last.IsZero() && now.Sub(l.last) < l.minGap {
		return false
	}
	l.last = now
	return true
}

// Reset clears the limiter so the next event is always allowed.
func (l *Limiter) Reset() {
	l.last = time.Time{}
}
