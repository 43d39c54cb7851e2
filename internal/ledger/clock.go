package ledger

import "time"

// Clock 当前时间来源，作为依赖注入以便测试时使用模拟时钟
type Clock interface {
	Now() time.Time
}

// SystemClock 系统时钟
type SystemClock struct{}

// Now 返回系统当前时间
func (SystemClock) Now() time.Time {
	return time.Now()
}
