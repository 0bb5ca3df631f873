package util

// Lerper drives a value from start to finish over duration seconds.
// A ping-pong lerper swaps its endpoints when it arrives and never finishes.
type Lerper[V any] struct {
	start, finish V
	duration      float64
	timer         float64
	setValue      func(V)
	lerpValue     func(V, V, float64) V
	pingPong      bool
	isDone        bool
}

func NewLerper[V any](lerpValue func(V, V, float64) V, setValue func(V), start, finish V, duration float64) *Lerper[V] {
	return &Lerper[V]{
		start:     start,
		finish:    finish,
		duration:  duration,
		lerpValue: lerpValue,
		setValue:  setValue,
	}
}

func NewPingPongLerper[V any](lerpValue func(V, V, float64) V, setValue func(V), start, finish V, duration float64) *Lerper[V] {
	l := NewLerper(lerpValue, setValue, start, finish, duration)
	l.pingPong = true
	return l
}

func (l *Lerper[V]) IsDone() bool {
	return l.isDone
}

// Update advances the lerper and reports whether it has finished.
func (l *Lerper[V]) Update(deltaTime float64) bool {
	if l.isDone {
		return true
	}

	l.timer += deltaTime
	for l.duration > 0 && l.timer > l.duration && l.pingPong {
		l.timer -= l.duration
		l.start, l.finish = l.finish, l.start
	}
	if l.duration <= 0 || l.timer > l.duration {
		l.setValue(l.finish)
		l.isDone = !l.pingPong
		return l.isDone
	}

	percent := l.timer / l.duration
	l.setValue(l.lerpValue(l.start, l.finish, percent))
	return false
}
