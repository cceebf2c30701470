// Package notify — приёмники уведомлений и диагностики для контроллера ветки.
package notify

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/pribylovaa/comment-thread/internal/thread"
)

// Logger пишет уведомления и диагностику в slog.
// Реализует thread.Notifier и thread.Diagnostics.
type Logger struct {
	log *slog.Logger
}

// NewLogger — log == nil означает slog.Default().
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}

	return &Logger{log: log.With("component", "thread")}
}

func (l *Logger) Notify(ev thread.Event) {
	level := slog.LevelInfo
	if ev.Kind == thread.EventError {
		level = slog.LevelWarn
	}

	l.log.Log(context.Background(), level, "notification",
		slog.String("kind", string(ev.Kind)),
		slog.String("title", ev.Title),
		slog.String("description", ev.Description),
	)
}

func (l *Logger) Log(event string, err error) {
	if err == nil {
		l.log.Debug(event)
		return
	}

	l.log.Error(event, slog.String("err", err.Error()))
}

// Queue — буферизованная очередь уведомлений.
// Notify никогда не блокирует: при заполненном буфере событие отбрасывается.
type Queue struct {
	ch      chan thread.Event
	dropped atomic.Int64
}

// NewQueue — size <= 0 заменяется на 16.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 16
	}

	return &Queue{ch: make(chan thread.Event, size)}
}

func (q *Queue) Notify(ev thread.Event) {
	select {
	case q.ch <- ev:
	default:
		q.dropped.Add(1)
	}
}

// Events — канал для чтения уведомлений.
func (q *Queue) Events() <-chan thread.Event {
	return q.ch
}

// Drain забирает все накопленные уведомления, не блокируясь.
func (q *Queue) Drain() []thread.Event {
	var out []thread.Event
	for {
		select {
		case ev := <-q.ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Dropped — сколько уведомлений отброшено из-за переполнения.
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}

// Fanout рассылает уведомление всем получателям по порядку.
type Fanout []thread.Notifier

func (f Fanout) Notify(ev thread.Event) {
	for _, n := range f {
		if n != nil {
			n.Notify(ev)
		}
	}
}
