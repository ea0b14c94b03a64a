package ratelimiter

import (
	"log"
	"sync"
	"time"
)

// RateLimiterInterface は、保存APIなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded()
	TryAcquire() bool
}

// RateLimiterは固定ウィンドウ方式で操作の頻度を制限します。
type RateLimiter struct {
	limit    int           // 1ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか

	mu        sync.Mutex
	count     int
	lastReset time.Time
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// TryAcquireは1枠の取得を試み、上限に達している場合はfalseを返します。
// HTTPハンドラのように待機できない呼び出し元向けです。
func (rl *RateLimiter) TryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.resetIfExpired(time.Now())
	if rl.count >= rl.limit {
		return false
	}
	rl.count++
	return true
}

// WaitIfNeededはレートリミットの上限に達しているかを確認し、必要であれば待機します。
func (rl *RateLimiter) WaitIfNeeded() {
	rl.mu.Lock()
	now := time.Now()
	rl.resetIfExpired(now)

	rl.count++
	if rl.count <= rl.limit {
		rl.mu.Unlock()
		return
	}

	sleep := rl.interval - now.Sub(rl.lastReset)
	rl.mu.Unlock()

	if sleep > 0 {
		log.Printf("[RATE LIMIT] hit %d calls, sleeping for %v...", rl.limit, sleep)
		time.Sleep(sleep)
	}

	rl.mu.Lock()
	rl.count = 1
	rl.lastReset = time.Now()
	rl.mu.Unlock()
}

// resetIfExpiredはウィンドウを過ぎていればカウントをリセットします。
// 呼び出し元がロックを保持していることを前提とします。
func (rl *RateLimiter) resetIfExpired(now time.Time) {
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
}
