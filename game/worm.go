package game

import (
	"fmt"

	"github.com/memmaker/giantworm/engine/anim"
	"github.com/memmaker/giantworm/engine/scene"
	"github.com/memmaker/giantworm/engine/util"
)

type Worm struct {
	Object   *scene.GameObject
	Animator *anim.Animator
	Chaser   *Chaser
}

// BuildWorm creates the worm described by spec and adds it to the scene.
// Effect objects are looked up by name in the scene; missing ones are skipped.
func BuildWorm(world *scene.Scene, spec *PrefabSpec, target Positioner) (*Worm, error) {
	var clips map[string]anim.Clip
	if spec.Animator.Model != "" {
		var err error
		clips, err = anim.LoadClipsGLTF(spec.Animator.Model)
		if err != nil {
			return nil, err
		}
	}
	controller, err := spec.BuildController(clips)
	if err != nil {
		return nil, err
	}

	object := scene.NewGameObject(spec.Name, spec.PositionVec())
	animator := anim.NewAnimator(object, controller)
	if err := controller.AddObserver(spec.Attack.Clip, &StateChanged{}); err != nil {
		return nil, err
	}

	chaser := NewChaser(object.Transform(), animator, target)
	chaser.AttackTrigger = AnimatorTrigger(spec.Attack.Trigger)
	chaser.AttackAnimation = WormAnimation(spec.Attack.Clip)
	chaser.ApplyPrefab(spec)
	chaser.OnAttackEnterActivate = findToggles(world, spec.Name, spec.Attack.EnterActivate)
	chaser.OnAttackExitActivate = findToggles(world, spec.Name, spec.Attack.ExitActivate)

	object.AddComponent(animator)
	object.AddComponent(chaser)
	world.Add(object)

	util.LogPrefabInfo(fmt.Sprintf("[BuildWorm] %s at %v, %d enter / %d exit effect(s)", spec.Name, spec.PositionVec(), len(chaser.OnAttackEnterActivate), len(chaser.OnAttackExitActivate)))
	return &Worm{Object: object, Animator: animator, Chaser: chaser}, nil
}

func findToggles(world *scene.Scene, owner string, names []string) []Toggle {
	toggles := make([]Toggle, 0, len(names))
	for _, name := range names {
		obj, ok := world.Find(name)
		if !ok {
			util.LogPrefabWarning(fmt.Sprintf("[BuildWorm] %s: effect object %s not found", owner, name))
			continue
		}
		toggles = append(toggles, obj)
	}
	return toggles
}
