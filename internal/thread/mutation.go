package thread

// Status — фаза мутации.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Mutation — состояние последней мутации одного вида по узлу.
// Value заполнен только в StatusSucceeded, Err — только в StatusFailed.
type Mutation[T any] struct {
	Status Status
	Value  T
	Err    error
}

func (m Mutation[T]) Pending() bool { return m.Status == StatusPending }

func pending[T any]() Mutation[T] {
	return Mutation[T]{Status: StatusPending}
}

func succeeded[T any](v T) Mutation[T] {
	return Mutation[T]{Status: StatusSucceeded, Value: v}
}

func failed[T any](err error) Mutation[T] {
	return Mutation[T]{Status: StatusFailed, Err: err}
}
