package anim

import (
	"fmt"
	"sort"

	"github.com/memmaker/giantworm/engine/scene"
	"github.com/memmaker/giantworm/engine/util"
	"github.com/pkg/errors"
)

// Animator plays the states of a Controller and reports them to their observers.
// It is a scene component; the scene calls Update once per frame.
type Animator struct {
	controller     *Controller
	gameObject     *scene.GameObject
	current        *StateDef
	normalizedTime float64
	armedTriggers  map[string]bool
	entered        bool
}

func NewAnimator(gameObject *scene.GameObject, controller *Controller) *Animator {
	current, _ := controller.State(controller.DefaultState())
	return &Animator{
		controller:    controller,
		gameObject:    gameObject,
		current:       current,
		armedTriggers: make(map[string]bool),
	}
}

func (a *Animator) GameObject() *scene.GameObject {
	return a.gameObject
}

func (a *Animator) CurrentState() StateInfo {
	return StateInfo{
		Name:           a.current.Name,
		Length:         a.current.Length,
		NormalizedTime: a.normalizedTime,
		Loop:           a.current.Loop,
	}
}

// SetTrigger arms a trigger and reports whether the controller knows it.
// An armed trigger stays armed until a transition consumes it.
func (a *Animator) SetTrigger(name string) bool {
	if !a.controller.HasTrigger(name) {
		util.LogAnimationError(fmt.Sprintf("[Animator] Unknown trigger %s on %s", name, a.ownerName()))
		return false
	}
	a.armedTriggers[name] = true
	return true
}

func (a *Animator) ResetTrigger(name string) {
	delete(a.armedTriggers, name)
}

func (a *Animator) IsTriggerArmed(name string) bool {
	return a.armedTriggers[name]
}

// Play switches to the named state immediately.
func (a *Animator) Play(stateName string) error {
	next, ok := a.controller.State(stateName)
	if !ok {
		return errors.Errorf("anim: unknown state %q", stateName)
	}
	if !a.entered {
		a.entered = true
		a.current = next
		a.normalizedTime = 0
		a.notifyEnter()
		return nil
	}
	a.switchTo(next)
	return nil
}

func (a *Animator) Update(deltaTime float64) {
	if !a.entered {
		a.entered = true
		a.notifyEnter()
	}

	a.consumeTrigger()

	a.normalizedTime += a.advance(deltaTime)
	info := a.CurrentState()
	for _, observer := range a.current.Observers() {
		observer.OnStateUpdate(a, info)
	}

	if transition, ok := a.controller.GetExitTransition(a.current.Name); ok && a.normalizedTime >= transition.ExitTime {
		next, _ := a.controller.State(transition.To)
		a.switchTo(next)
	}
}

func (a *Animator) advance(deltaTime float64) float64 {
	if a.current.Length <= 0 { // zero length clips complete instantly
		if a.normalizedTime >= 1 {
			return 0
		}
		return 1 - a.normalizedTime
	}
	return deltaTime * a.current.Speed / a.current.Length
}

func (a *Animator) consumeTrigger() {
	armed := make([]string, 0, len(a.armedTriggers))
	for trigger := range a.armedTriggers {
		armed = append(armed, trigger)
	}
	sort.Strings(armed)
	for _, trigger := range armed {
		if !a.controller.Exists(a.current.Name, trigger) {
			continue
		}
		delete(a.armedTriggers, trigger)
		next, _ := a.controller.State(a.controller.GetNextState(a.current.Name, trigger))
		a.switchTo(next)
		return
	}
}

func (a *Animator) switchTo(next *StateDef) {
	util.LogAnimationDebug(fmt.Sprintf("[Animator] %s: %s -> %s", a.ownerName(), a.CurrentState(), next.Name))
	exitInfo := a.CurrentState()
	for _, observer := range a.current.Observers() {
		observer.OnStateExit(a, exitInfo)
	}
	a.current = next
	a.normalizedTime = 0
	a.notifyEnter()
}

func (a *Animator) notifyEnter() {
	info := a.CurrentState()
	for _, observer := range a.current.Observers() {
		observer.OnStateEnter(a, info)
	}
}

func (a *Animator) ownerName() string {
	if a.gameObject == nil {
		return "<detached>"
	}
	return a.gameObject.Name()
}
