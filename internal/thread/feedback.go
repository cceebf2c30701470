package thread

import (
	"sync"
	"time"
)

// DefaultFeedbackDuration — длительность анимации отказа («shake»).
const DefaultFeedbackDuration = 350 * time.Millisecond

// FeedbackState — состояние обратной связи карточки.
type FeedbackState int

const (
	FeedbackIdle FeedbackState = iota
	FeedbackDenied
)

func (s FeedbackState) String() string {
	if s == FeedbackDenied {
		return "denied"
	}

	return "idle"
}

// AfterFunc запускает f через d и возвращает функцию отмены (как time.AfterFunc + Stop).
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timerAfter(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Feedback — автомат idle -> denied -> idle.
// Повторный Deny в состоянии denied игнорируется: переходы не ставятся в очередь.
type Feedback struct {
	mu       sync.Mutex
	state    FeedbackState
	duration time.Duration
	after    AfterFunc
	stop     func() bool
	gen      uint64
}

// NewFeedback создаёт автомат; after == nil — реальный таймер.
func NewFeedback(d time.Duration, after AfterFunc) *Feedback {
	if after == nil {
		after = timerAfter
	}

	return &Feedback{duration: d, after: after}
}

// Deny переводит idle -> denied и взводит таймер возврата.
// Возвращает false, если автомат уже в denied.
func (f *Feedback) Deny() bool {
	f.mu.Lock()
	if f.state == FeedbackDenied {
		f.mu.Unlock()
		return false
	}

	f.state = FeedbackDenied
	f.gen++
	gen := f.gen
	d := f.duration
	f.mu.Unlock()

	if d <= 0 {
		f.complete(gen)
		return true
	}

	stop := f.after(d, func() { f.complete(gen) })

	f.mu.Lock()
	if f.gen == gen && f.state == FeedbackDenied {
		f.stop = stop
	}
	f.mu.Unlock()

	return true
}

// State возвращает текущее состояние.
func (f *Feedback) State() FeedbackState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Reset останавливает таймер и возвращает автомат в idle.
func (f *Feedback) Reset() {
	f.mu.Lock()
	stop := f.stop
	f.stop = nil
	f.state = FeedbackIdle
	f.gen++
	f.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (f *Feedback) complete(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gen != gen {
		return
	}

	f.state = FeedbackIdle
	f.stop = nil
}
