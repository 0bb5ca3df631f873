package anim

import (
	"fmt"
	"math"
)

// StateInfo is the per-frame sample of the active state.
// NormalizedTime counts whole clip lengths; for looping states the integer part is the loop count.
type StateInfo struct {
	Name           string
	Length         float64
	NormalizedTime float64
	Loop           bool
}

func (s StateInfo) IsName(name string) bool {
	return s.Name == name
}

// LoopTime is the position inside the current loop, in [0,1).
func (s StateInfo) LoopTime() float64 {
	_, frac := math.Modf(s.NormalizedTime)
	return frac
}

func (s StateInfo) String() string {
	return fmt.Sprintf("%s@%.3f", s.Name, s.NormalizedTime)
}

// StateObserver is notified when the animator enters, updates or leaves the state it is attached to.
type StateObserver interface {
	OnStateEnter(animator *Animator, stateInfo StateInfo)
	OnStateUpdate(animator *Animator, stateInfo StateInfo)
	OnStateExit(animator *Animator, stateInfo StateInfo)
}

type StateDef struct {
	Name      string
	Length    float64 // seconds
	Loop      bool
	Speed     float64
	observers []StateObserver
}

func NewStateDef(name string, length float64, loop bool) *StateDef {
	return &StateDef{
		Name:   name,
		Length: length,
		Loop:   loop,
		Speed:  1.0,
	}
}

func (s *StateDef) AddObserver(observer StateObserver) {
	if observer == nil {
		return
	}
	s.observers = append(s.observers, observer)
}

func (s *StateDef) Observers() []StateObserver {
	observers := make([]StateObserver, 0, len(s.observers))
	return append(observers, s.observers...)
}
