package game

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/giantworm/engine/scene"
)

func TestWormChasesAttacksAndResumes(t *testing.T) {
	world := scene.NewScene()
	target := scene.NewGameObject("player", mgl32.Vec3{3, 0, 0})
	burst := scene.NewGameObject("dust_burst", mgl32.Vec3{})
	landing := scene.NewGameObject("dust_landing", mgl32.Vec3{})
	world.Add(target)
	world.Add(burst)
	world.Add(landing)

	spec := DefaultPrefabSpec()
	spec.Attack.EnterActivate = []string{"dust_burst", "not_in_scene"}
	spec.Attack.ExitActivate = []string{"dust_landing"}
	worm, err := BuildWorm(world, &spec, target)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(worm.Chaser.OnAttackEnterActivate) != 1 {
		t.Fatalf("missing effect objects must be skipped")
	}

	const deltaTime = 0.02
	attackFrame, burstFrame, landingFrame, followFrame := -1, -1, -1, -1
	var burstTime, landingTime float64
	var attackPosition mgl32.Vec3

	for frame := 0; frame < 500 && followFrame < 0; frame++ {
		world.Update(deltaTime)
		state := worm.Animator.CurrentState()

		switch {
		case attackFrame < 0 && worm.Chaser.Sequence() == SequenceAttack:
			attackFrame = frame
			attackPosition = worm.Object.GetPosition()
			target.Transform().SetPosition(mgl32.Vec3{50, 0, 0}) // run away
		case attackFrame >= 0 && worm.Chaser.Sequence() == SequenceAttack:
			if worm.Object.GetPosition() != attackPosition {
				t.Fatalf("worm moved while attacking at frame %d", frame)
			}
		case attackFrame >= 0 && worm.Chaser.Sequence() == SequenceFollow:
			followFrame = frame
		}
		if burstFrame < 0 && burst.ActiveSelf() && attackFrame >= 0 {
			burstFrame, burstTime = frame, state.NormalizedTime
		}
		if landingFrame < 0 && landing.ActiveSelf() && attackFrame >= 0 {
			landingFrame, landingTime = frame, state.NormalizedTime
		}
	}

	if attackFrame < 0 || followFrame < 0 {
		t.Fatalf("expected an attack and a return to Follow, got attack=%d follow=%d", attackFrame, followFrame)
	}
	if !(attackFrame < burstFrame && burstFrame < landingFrame && landingFrame < followFrame) {
		t.Fatalf("unexpected order attack=%d burst=%d landing=%d follow=%d", attackFrame, burstFrame, landingFrame, followFrame)
	}
	if burstTime < 0.07 || burstTime > 0.07+0.011 {
		t.Fatalf("burst activated at normalized time %v", burstTime)
	}
	if landingTime < 0.27 || landingTime > 0.27+0.011 {
		t.Fatalf("landing activated at normalized time %v", landingTime)
	}
	if burst.ActiveSelf() || landing.ActiveSelf() {
		t.Fatalf("effects must be reset once following again")
	}
	if burst.ToggleCount() != 3 { // initial reset, activation, reset after the attack
		t.Fatalf("expected 3 toggles of the burst, got %d", burst.ToggleCount())
	}
	if worm.Object.GetPosition() == attackPosition {
		t.Fatalf("worm must chase the runaway target again")
	}
}

// a reload that renames trigger and clip must not strand the worm in an attack the animator cannot play
func TestWormAttackSurvivesRenamedReload(t *testing.T) {
	world := scene.NewScene()
	target := scene.NewGameObject("player", mgl32.Vec3{1, 0, 0})
	world.Add(target)
	spec := DefaultPrefabSpec()
	worm, err := BuildWorm(world, &spec, target)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	renamed := DefaultPrefabSpec()
	renamed.Attack.Trigger = "Bite"
	renamed.Attack.Clip = "Lunge"
	renamed.Animator.States[1].Name = "Lunge"
	renamed.Animator.Transitions[0].Trigger = "Bite"
	renamed.Animator.Transitions[0].To = "Lunge"
	renamed.Animator.Transitions[1].From = "Lunge"
	if err := renamed.Validate(); err != nil {
		t.Fatalf("renamed prefab must be valid: %v", err)
	}
	worm.Chaser.ApplyPrefab(&renamed)

	rebuilt, err := BuildWorm(scene.NewScene(), &renamed, target)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if rebuilt.Chaser.AttackTrigger != "Bite" || rebuilt.Chaser.AttackAnimation != "Lunge" {
		t.Fatalf("a rebuilt worm takes trigger and clip from the prefab, got %s/%s", rebuilt.Chaser.AttackTrigger, rebuilt.Chaser.AttackAnimation)
	}

	attacked, resumed := false, false
	for frame := 0; frame < 1000 && !resumed; frame++ {
		world.Update(0.02)
		if worm.Chaser.Sequence() == SequenceAttack {
			attacked = true
			target.Transform().SetPosition(mgl32.Vec3{50, 0, 0})
		} else if attacked {
			resumed = true
		}
	}
	if !attacked || !resumed {
		t.Fatalf("expected attack and return to Follow, got attacked=%v resumed=%v state=%v", attacked, resumed, worm.Animator.CurrentState())
	}
}

func TestBuildWormWithMissingTarget(t *testing.T) {
	world := scene.NewScene()
	missing, _ := world.Find("player")
	spec := DefaultPrefabSpec()
	worm, err := BuildWorm(world, &spec, missing)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	world.Update(0.1)
	if worm.Chaser.Sequence() != SequenceFollow || worm.Object.GetPosition() != spec.PositionVec() {
		t.Fatalf("worm without target must stay put")
	}
}

func TestBuildWormFailsOnMissingModel(t *testing.T) {
	spec := DefaultPrefabSpec()
	spec.Animator.Model = filepath.Join(t.TempDir(), "missing.glb")
	if _, err := BuildWorm(scene.NewScene(), &spec, nil); err == nil {
		t.Fatalf("expected an error for a missing model")
	}
}
