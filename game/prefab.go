package game

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/giantworm/engine/anim"
	"github.com/memmaker/giantworm/engine/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type PrefabSpec struct {
	Name         string       `yaml:"name"`
	Position     [3]float32   `yaml:"position"`
	Speed        float32      `yaml:"speed"`
	StopDistance float32      `yaml:"stop_distance"`
	Attack       AttackSpec   `yaml:"attack"`
	Animator     AnimatorSpec `yaml:"animator"`
}

type AttackSpec struct {
	Trigger       string   `yaml:"trigger"`
	Clip          string   `yaml:"clip"`
	EnterTime     float64  `yaml:"enter_time"`
	ExitTime      float64  `yaml:"exit_time"`
	EnterActivate []string `yaml:"enter_activate"`
	ExitActivate  []string `yaml:"exit_activate"`
}

type AnimatorSpec struct {
	Model        string           `yaml:"model"`
	DefaultState string           `yaml:"default_state"`
	States       []StateSpec      `yaml:"states"`
	Transitions  []TransitionSpec `yaml:"transitions"`
}

type StateSpec struct {
	Name   string  `yaml:"name"`
	Length float64 `yaml:"length"` // seconds, 0 = take it from the model
	Loop   bool    `yaml:"loop"`
	Speed  float64 `yaml:"speed"`
}

// TransitionSpec is either a trigger transition or an exit time transition.
type TransitionSpec struct {
	From     string   `yaml:"from"`
	To       string   `yaml:"to"`
	Trigger  string   `yaml:"trigger"`
	ExitTime *float64 `yaml:"exit_time"`
}

func (p *PrefabSpec) PositionVec() mgl32.Vec3 {
	return mgl32.Vec3{p.Position[0], p.Position[1], p.Position[2]}
}

func DefaultPrefabSpec() PrefabSpec {
	exitTime := 1.0
	return PrefabSpec{
		Name:         "giant_worm",
		Speed:        5,
		StopDistance: 0.3,
		Attack: AttackSpec{
			Trigger:   TriggerAttack.Str(),
			Clip:      AnimationJumpBite.Str(),
			EnterTime: 0.07,
			ExitTime:  0.27,
		},
		Animator: AnimatorSpec{
			DefaultState: AnimationCrawl.Str(),
			States: []StateSpec{
				{Name: AnimationCrawl.Str(), Length: 1.0, Loop: true, Speed: 1},
				{Name: AnimationJumpBite.Str(), Length: 2.0, Speed: 1},
			},
			Transitions: []TransitionSpec{
				{From: AnimationCrawl.Str(), Trigger: TriggerAttack.Str(), To: AnimationJumpBite.Str()},
				{From: AnimationJumpBite.Str(), ExitTime: &exitTime, To: AnimationCrawl.Str()},
			},
		},
	}
}

// LoadPrefab reads a prefab file. A relative model path is resolved against the prefab's directory.
func LoadPrefab(filename string) (*PrefabSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "prefab: load %s", filename)
	}
	spec, err := ParsePrefab(data)
	if err != nil {
		return nil, errors.Wrapf(err, "prefab: %s", filename)
	}
	if spec.Animator.Model != "" && !filepath.IsAbs(spec.Animator.Model) {
		spec.Animator.Model = filepath.Join(filepath.Dir(filename), spec.Animator.Model)
	}
	util.LogPrefabInfo(fmt.Sprintf("[Prefab] Loaded %s from %s", spec.Name, filename))
	return spec, nil
}

// ParsePrefab decodes YAML over the defaults and validates the result.
// An empty document is rejected, editors truncate files before writing them.
func ParsePrefab(data []byte) (*PrefabSpec, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, errors.Wrap(err, "unmarshal")
	}
	if len(document.Content) == 0 {
		return nil, errors.New("empty prefab document")
	}
	spec := DefaultPrefabSpec()
	if err := document.Decode(&spec); err != nil {
		return nil, errors.Wrap(err, "unmarshal")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (p *PrefabSpec) Validate() error {
	if p.Name == "" {
		return errors.New("prefab needs a name")
	}
	if p.Speed < 0 {
		return errors.Errorf("%s: speed must not be negative, got %v", p.Name, p.Speed)
	}
	if p.StopDistance < 0 {
		return errors.Errorf("%s: stop_distance must not be negative, got %v", p.Name, p.StopDistance)
	}
	if p.Attack.Trigger == "" || p.Attack.Clip == "" {
		return errors.Errorf("%s: attack needs a trigger and a clip", p.Name)
	}
	if !inUnitRange(p.Attack.EnterTime) || !inUnitRange(p.Attack.ExitTime) {
		return errors.Errorf("%s: attack times must be in [0,1], got %v and %v", p.Name, p.Attack.EnterTime, p.Attack.ExitTime)
	}

	states := make(map[string]bool, len(p.Animator.States))
	for _, state := range p.Animator.States {
		if state.Length < 0 || state.Speed < 0 {
			return errors.Errorf("%s: state %s has a negative length or speed", p.Name, state.Name)
		}
		states[state.Name] = true
	}
	if !states[p.Animator.DefaultState] {
		return errors.Errorf("%s: default state %q is not defined", p.Name, p.Animator.DefaultState)
	}
	if !states[p.Attack.Clip] {
		return errors.Errorf("%s: attack clip %q is not an animator state", p.Name, p.Attack.Clip)
	}
	startsAttack, endsAttack := false, false
	for _, transition := range p.Animator.Transitions {
		if !states[transition.From] || !states[transition.To] {
			return errors.Errorf("%s: transition %s -> %s uses an unknown state", p.Name, transition.From, transition.To)
		}
		if (transition.Trigger == "") == (transition.ExitTime == nil) {
			return errors.Errorf("%s: transition %s -> %s needs either a trigger or an exit_time", p.Name, transition.From, transition.To)
		}
		if transition.Trigger == p.Attack.Trigger && transition.To == p.Attack.Clip {
			startsAttack = true
		}
		if transition.From == p.Attack.Clip && transition.ExitTime != nil {
			endsAttack = true
		}
	}
	// a chaser that cannot start or leave the attack clip never returns to following
	if !startsAttack {
		return errors.Errorf("%s: no transition with trigger %q leads to %s", p.Name, p.Attack.Trigger, p.Attack.Clip)
	}
	if !endsAttack {
		return errors.Errorf("%s: %s needs an exit_time transition", p.Name, p.Attack.Clip)
	}
	return nil
}

func inUnitRange(value float64) bool {
	return value >= 0 && value <= 1
}

// BuildController creates the animator controller of the prefab. Clip lengths fill states without a length.
func (p *PrefabSpec) BuildController(clips map[string]anim.Clip) (*anim.Controller, error) {
	states := make([]*anim.StateDef, 0, len(p.Animator.States))
	for _, stateSpec := range p.Animator.States {
		state := anim.NewStateDef(stateSpec.Name, stateSpec.Length, stateSpec.Loop)
		if stateSpec.Speed > 0 {
			state.Speed = stateSpec.Speed
		}
		states = append(states, state)
	}
	controller, err := anim.NewController(p.Animator.DefaultState, states...)
	if err != nil {
		return nil, errors.Wrapf(err, "prefab %s", p.Name)
	}
	controller.ApplyClipLengths(clips)

	for _, transition := range p.Animator.Transitions {
		if transition.ExitTime != nil {
			err = controller.AddExitTransition(transition.From, *transition.ExitTime, transition.To)
		} else {
			err = controller.AddTransition(transition.From, transition.Trigger, transition.To)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "prefab %s", p.Name)
		}
	}
	return controller, nil
}
