package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/giantworm/engine/anim"
	"github.com/memmaker/giantworm/engine/scene"
	"github.com/memmaker/giantworm/engine/util"
)

type Positioner interface {
	GetPosition() mgl32.Vec3
}

type Mover interface {
	GetPosition() mgl32.Vec3
	SetPosition(position mgl32.Vec3)
	GetForward() mgl32.Vec3
	SetLookDirection(direction mgl32.Vec3)
}

// TriggerSetter reports false when it does not know the trigger.
type TriggerSetter interface {
	SetTrigger(name string) bool
}

// Toggle is a scene object that can be switched on and off.
type Toggle interface {
	ActiveSelf() bool
	SetActive(active bool)
}

type RayDrawer interface {
	DrawRay(origin, direction mgl32.Vec3, color mgl32.Vec3)
}

var rayColor = mgl32.Vec3{1, 0, 0}

// Chaser moves its owner towards a target at constant speed and attacks once it is close enough.
// The target may move by itself.
type Chaser struct {
	Speed        float32
	StopDistance float32

	OnAttackEnterActivate []Toggle
	OnAttackExitActivate  []Toggle
	// Normalized times at which the enter and exit objects are activated. They depend on the animation frames.
	OnAttackEnterTime float64
	OnAttackExitTime  float64

	AttackTrigger   AnimatorTrigger
	AttackAnimation WormAnimation

	self     Mover
	target   Positioner
	animator TriggerSetter
	rays     RayDrawer
	sequence Sequence
}

func NewChaser(self Mover, animator TriggerSetter, target Positioner) *Chaser {
	return &Chaser{
		Speed:             5,
		StopDistance:      0.3,
		OnAttackEnterTime: 0.07,
		OnAttackExitTime:  0.27,
		AttackTrigger:     TriggerAttack,
		AttackAnimation:   AnimationJumpBite,
		self:              self,
		target:            presentTarget(target),
		animator:          animator,
		sequence:          SequenceFollow,
	}
}

func (c *Chaser) Sequence() Sequence {
	return c.sequence
}

func (c *Chaser) Target() Positioner {
	return c.target
}

func (c *Chaser) SetTarget(target Positioner) {
	c.target = presentTarget(target)
}

// presentTarget turns a nil object stored in the interface into no target at all.
func presentTarget(target Positioner) Positioner {
	if obj, ok := target.(*scene.GameObject); ok && obj == nil {
		return nil
	}
	return target
}

func (c *Chaser) SetRayDrawer(drawer RayDrawer) {
	c.rays = drawer
}

// ApplyPrefab takes over the tunables of a (re)loaded prefab. The sequence is left alone.
// Trigger and clip are bound to the animator controller and only change when the worm is rebuilt.
func (c *Chaser) ApplyPrefab(spec *PrefabSpec) {
	c.Speed = spec.Speed
	c.StopDistance = spec.StopDistance
	c.OnAttackEnterTime = spec.Attack.EnterTime
	c.OnAttackExitTime = spec.Attack.ExitTime
	if spec.Attack.Trigger != c.AttackTrigger.Str() || spec.Attack.Clip != c.AttackAnimation.Str() {
		util.LogChaserWarning(fmt.Sprintf("[Chaser] %s: attack %s/%s needs a rebuild, keeping %s/%s",
			spec.Name, spec.Attack.Trigger, spec.Attack.Clip, c.AttackTrigger.Str(), c.AttackAnimation.Str()))
	}
	if c.OnAttackEnterTime >= c.OnAttackExitTime {
		util.LogChaserWarning(fmt.Sprintf("[Chaser] %s: attack enter time %.2f is not before exit time %.2f", spec.Name, c.OnAttackEnterTime, c.OnAttackExitTime))
	}
}

func (c *Chaser) LateUpdate(deltaTime float64) {
	c.Tick(deltaTime)
}

// Tick follows or attacks depending on the distance. It does nothing while attacking.
func (c *Chaser) Tick(deltaTime float64) {
	if c.sequence == SequenceAttack {
		return
	}

	// everything from the attack sequence is inactive while following
	c.disableAllAttackObjects()

	if c.target == nil || c.self == nil {
		util.LogChaserDebug("[Chaser] No target, skipping tick")
		return
	}

	distance := c.target.GetPosition().Sub(c.self.GetPosition())
	if distance.Len() < c.StopDistance {
		c.attackTarget()
	} else {
		c.moveTowardsTarget(distance, deltaTime)
	}
}

func (c *Chaser) attackTarget() {
	if c.animator == nil {
		util.LogChaserDebug("[Chaser] No animator, cannot start the attack")
		return
	}
	if !c.animator.SetTrigger(c.AttackTrigger.Str()) {
		util.LogChaserWarning(fmt.Sprintf("[Chaser] Trigger %s was rejected, keep following", c.AttackTrigger.Str()))
		return
	}
	c.sequence = SequenceAttack
	util.LogChaserInfo(fmt.Sprintf("[Chaser] Attack at %v", c.self.GetPosition()))
}

// moveTowardsTarget does not clamp the step, a large deltaTime can carry the owner past the target.
func (c *Chaser) moveTowardsTarget(distance mgl32.Vec3, deltaTime float64) {
	if distance.Len() < util.Epsilon {
		return
	}
	// linear and angular speed share the same scalar
	singleStep := c.Speed * float32(deltaTime)

	position := c.self.GetPosition().Add(distance.Normalize().Mul(singleStep))
	c.self.SetPosition(position)

	targetDirection := c.target.GetPosition().Sub(position)
	newDirection := util.RotateTowards(c.self.GetForward(), targetDirection, singleStep, 0)

	if c.rays != nil {
		c.rays.DrawRay(position, newDirection, rayColor)
	}
	c.self.SetLookDirection(newDirection)
}

func (c *Chaser) OnAnimationEnter(stateInfo anim.StateInfo) {
	if c.AttackAnimation.Matches(stateInfo) {
		util.LogChaserDebug("[Chaser] Attack Enter")
	}
}

func (c *Chaser) OnAnimationUpdate(stateInfo anim.StateInfo) {
	if !c.AttackAnimation.Matches(stateInfo) {
		return
	}
	if stateInfo.NormalizedTime >= c.OnAttackEnterTime {
		activateAll(c.OnAttackEnterActivate)
	}
	if stateInfo.NormalizedTime >= c.OnAttackExitTime {
		activateAll(c.OnAttackExitActivate)
	}
}

func (c *Chaser) OnAnimationExit(stateInfo anim.StateInfo) {
	if c.AttackAnimation.Matches(stateInfo) {
		c.sequence = SequenceFollow
	}
}

func (c *Chaser) disableAllAttackObjects() {
	deactivateAll(c.OnAttackEnterActivate)
	deactivateAll(c.OnAttackExitActivate)
}

func activateAll(toggles []Toggle) {
	for _, toggle := range toggles {
		if toggle != nil && !toggle.ActiveSelf() {
			toggle.SetActive(true)
		}
	}
}

func deactivateAll(toggles []Toggle) {
	for _, toggle := range toggles {
		if toggle != nil && toggle.ActiveSelf() {
			toggle.SetActive(false)
		}
	}
}
