package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadShippedPrefab(t *testing.T) {
	spec, err := LoadPrefab(filepath.Join("..", "assets", "prefabs", "giant_worm.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "giant_worm" || spec.Speed != 5 {
		t.Fatalf("unexpected prefab %+v", spec)
	}
	if spec.Attack.EnterTime != 0.07 || spec.Attack.ExitTime != 0.27 {
		t.Fatalf("unexpected attack times %v / %v", spec.Attack.EnterTime, spec.Attack.ExitTime)
	}
	if len(spec.Attack.EnterActivate) != 2 || spec.Attack.ExitActivate[0] != "dust_landing" {
		t.Fatalf("unexpected effect objects %v / %v", spec.Attack.EnterActivate, spec.Attack.ExitActivate)
	}
	if _, err := spec.BuildController(nil); err != nil {
		t.Fatalf("controller: %v", err)
	}
}

func TestParsePrefabKeepsDefaults(t *testing.T) {
	spec, err := ParsePrefab([]byte("name: small_worm\nspeed: 2.5\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "small_worm" || spec.Speed != 2.5 {
		t.Fatalf("overrides not applied: %+v", spec)
	}
	if spec.StopDistance != 0.3 || spec.Attack.Clip != AnimationJumpBite.Str() || len(spec.Animator.States) != 2 {
		t.Fatalf("defaults lost: %+v", spec)
	}
}

func TestParsePrefabRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"negative_speed", "speed: -1", "speed"},
		{"negative_stop_distance", "stop_distance: -0.1", "stop_distance"},
		{"enter_time_out_of_range", "attack:\n  enter_time: 1.5", "[0,1]"},
		{"unknown_default_state", "animator:\n  default_state: Burrow", "default state"},
		{"unknown_attack_clip", "attack:\n  clip: Roar", "attack clip"},
		{"unwired_trigger", "attack:\n  trigger: Bite", "no transition"},
		{"transition_with_trigger_and_exit", `animator:
  transitions:
    - from: UndergroundCrawl
      trigger: Attack
      exit_time: 0.5
      to: UndergroundJumpBiteToUnderground`, "either a trigger or an exit_time"},
		{"attack_without_exit", `animator:
  transitions:
    - from: UndergroundCrawl
      trigger: Attack
      to: UndergroundJumpBiteToUnderground`, "exit_time transition"},
		{"bad_yaml", "speed: [", "unmarshal"},
		{"empty_document", "", "empty"},
		{"truncated_to_comment", "# giant worm\n", "empty"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParsePrefab([]byte(c.yaml))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error mentioning %q, got %v", c.want, err)
			}
		})
	}
}

func TestLoadPrefabResolvesModelPath(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "worm.yaml")
	if err := os.WriteFile(filename, []byte("animator:\n  model: models/worm.glb\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spec, err := LoadPrefab(filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Animator.Model != filepath.Join(dir, "models", "worm.glb") {
		t.Fatalf("expected model next to the prefab, got %s", spec.Animator.Model)
	}
}

func TestLoadPrefabMissingFile(t *testing.T) {
	if _, err := LoadPrefab(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestBuildControllerUsesStateSpeed(t *testing.T) {
	spec := DefaultPrefabSpec()
	spec.Animator.States[1].Speed = 2
	controller, err := spec.BuildController(nil)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	bite, _ := controller.State(AnimationJumpBite.Str())
	if bite.Speed != 2 {
		t.Fatalf("expected speed 2, got %v", bite.Speed)
	}
	if !controller.Exists(AnimationCrawl.Str(), TriggerAttack.Str()) {
		t.Fatalf("expected the attack transition")
	}
}
