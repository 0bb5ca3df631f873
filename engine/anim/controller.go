package anim

import (
	"github.com/pkg/errors"
)

// transition table
// currentState, trigger, nextState
//
// crawl, Attack, jumpBite
// jumpBite, exitTime >= 1, crawl

type TransitionTable map[string]map[string]string

type ExitTransition struct {
	ExitTime float64
	To       string
}

type Controller struct {
	states          map[string]*StateDef
	defaultState    string
	transitions     TransitionTable
	exitTransitions map[string]ExitTransition
	triggers        map[string]struct{}
}

func NewController(defaultState string, states ...*StateDef) (*Controller, error) {
	c := &Controller{
		states:          make(map[string]*StateDef),
		transitions:     make(TransitionTable),
		exitTransitions: make(map[string]ExitTransition),
		triggers:        make(map[string]struct{}),
	}
	for _, state := range states {
		if err := c.AddState(state); err != nil {
			return nil, err
		}
	}
	if _, ok := c.states[defaultState]; !ok {
		return nil, errors.Errorf("anim: default state %q is not defined", defaultState)
	}
	c.defaultState = defaultState
	return c, nil
}

func (c *Controller) AddState(state *StateDef) error {
	if state == nil || state.Name == "" {
		return errors.New("anim: state needs a name")
	}
	if _, exists := c.states[state.Name]; exists {
		return errors.Errorf("anim: state %q defined twice", state.Name)
	}
	if state.Length < 0 || state.Speed < 0 {
		return errors.Errorf("anim: state %q has negative length or speed", state.Name)
	}
	c.states[state.Name] = state
	c.transitions[state.Name] = make(map[string]string)
	return nil
}

func (c *Controller) AddTransition(fromState, trigger, toState string) error {
	if err := c.checkStates(fromState, toState); err != nil {
		return err
	}
	if trigger == "" {
		return errors.Errorf("anim: transition %s -> %s needs a trigger", fromState, toState)
	}
	c.transitions[fromState][trigger] = toState
	c.triggers[trigger] = struct{}{}
	return nil
}

// AddExitTransition leaves fromState once its normalized time reaches exitTime.
func (c *Controller) AddExitTransition(fromState string, exitTime float64, toState string) error {
	if err := c.checkStates(fromState, toState); err != nil {
		return err
	}
	if exitTime < 0 {
		return errors.Errorf("anim: exit time of %s must not be negative", fromState)
	}
	c.exitTransitions[fromState] = ExitTransition{ExitTime: exitTime, To: toState}
	return nil
}

func (c *Controller) checkStates(names ...string) error {
	for _, name := range names {
		if _, ok := c.states[name]; !ok {
			return errors.Errorf("anim: unknown state %q", name)
		}
	}
	return nil
}

func (c *Controller) Exists(currentState, trigger string) bool {
	_, ok := c.transitions[currentState][trigger]
	return ok
}

func (c *Controller) GetNextState(currentState, trigger string) string {
	return c.transitions[currentState][trigger]
}

func (c *Controller) GetExitTransition(currentState string) (ExitTransition, bool) {
	transition, ok := c.exitTransitions[currentState]
	return transition, ok
}

func (c *Controller) HasTrigger(trigger string) bool {
	_, ok := c.triggers[trigger]
	return ok
}

func (c *Controller) State(name string) (*StateDef, bool) {
	state, ok := c.states[name]
	return state, ok
}

func (c *Controller) DefaultState() string {
	return c.defaultState
}

// AddObserver attaches observer to the named state.
func (c *Controller) AddObserver(stateName string, observer StateObserver) error {
	state, ok := c.states[stateName]
	if !ok {
		return errors.Errorf("anim: unknown state %q", stateName)
	}
	state.AddObserver(observer)
	return nil
}
