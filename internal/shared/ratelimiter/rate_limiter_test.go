package ratelimiter

import (
	"testing"
	"time"
)

// TestTryAcquire_WithinLimit は上限までの取得がすべて成功することを検証します。
func TestTryAcquire_WithinLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.TryAcquire() {
			t.Fatalf("acquire %d should succeed", i+1)
		}
	}
}

// TestTryAcquire_OverLimit は上限超過後の取得が拒否されることを検証します。
func TestTryAcquire_OverLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(2, time.Hour)

	rl.TryAcquire()
	rl.TryAcquire()

	if rl.TryAcquire() {
		t.Error("acquire beyond the limit should fail")
	}
}

// TestTryAcquire_ResetsAfterInterval はウィンドウ経過後にカウントが
// リセットされることを検証します。
func TestTryAcquire_ResetsAfterInterval(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 20*time.Millisecond)

	if !rl.TryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if rl.TryAcquire() {
		t.Fatal("second acquire inside the window should fail")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.TryAcquire() {
		t.Error("acquire after the window reset should succeed")
	}
}

// TestWaitIfNeeded_NoWaitWithinLimit は上限内の呼び出しが待機しないことを検証します。
func TestWaitIfNeeded_NoWaitWithinLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(10, time.Hour)

	start := time.Now()
	for i := 0; i < 10; i++ {
		rl.WaitIfNeeded()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("calls within the limit should not block, took %v", elapsed)
	}
}

// TestWaitIfNeeded_BlocksOverLimit は上限超過時にウィンドウの残り時間だけ
// 待機することを検証します。
func TestWaitIfNeeded_BlocksOverLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 50*time.Millisecond)

	rl.WaitIfNeeded()
	start := time.Now()
	rl.WaitIfNeeded()

	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("over-limit call should block until the window resets, took %v", elapsed)
	}
}
