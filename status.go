package main

import (
	"fmt"
	"os"

	"github.com/memmaker/giantworm/game"
)

// statusPrinter redraws a single line on terminals and prints one line per sequence change otherwise.
type statusPrinter struct {
	interactive  bool
	lastSequence game.Sequence
	lastEffects  int
	printed      bool
}

func newStatusPrinter(interactive bool) *statusPrinter {
	return &statusPrinter{interactive: interactive}
}

func (s *statusPrinter) Print(frame int, worm *game.Worm) {
	sequence := worm.Chaser.Sequence()
	effects := activeEffects(worm.Chaser)
	position := worm.Object.GetPosition()
	state := worm.Animator.CurrentState()

	if s.interactive {
		fmt.Fprintf(os.Stdout, "\r%6d %-6s pos=(%6.2f %6.2f %6.2f) %-34s effects=%d   ",
			frame, sequence.ToString(), position.X(), position.Y(), position.Z(), state.String(), effects)
		s.printed = true
		return
	}
	if s.printed && sequence == s.lastSequence && effects == s.lastEffects {
		return
	}
	fmt.Fprintf(os.Stdout, "%6d %s pos=%v %s effects=%d\n", frame, sequence.ToString(), position, state, effects)
	s.lastSequence = sequence
	s.lastEffects = effects
	s.printed = true
}

func (s *statusPrinter) Done() {
	if s.interactive && s.printed {
		fmt.Fprintln(os.Stdout)
	}
}

func activeEffects(chaser *game.Chaser) int {
	count := 0
	for _, toggles := range [][]game.Toggle{chaser.OnAttackEnterActivate, chaser.OnAttackExitActivate} {
		for _, toggle := range toggles {
			if toggle.ActiveSelf() {
				count++
			}
		}
	}
	return count
}
