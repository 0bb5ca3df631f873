package game

import "github.com/memmaker/giantworm/engine/anim"

type AnimatorTrigger string

func (t AnimatorTrigger) Str() string {
	return string(t)
}

const (
	TriggerAttack AnimatorTrigger = "Attack"
)

type WormAnimation string

func (a WormAnimation) Str() string {
	return string(a)
}

func (a WormAnimation) Matches(stateInfo anim.StateInfo) bool {
	return stateInfo.IsName(string(a))
}

const (
	AnimationCrawl    WormAnimation = "UndergroundCrawl"
	AnimationJumpBite WormAnimation = "UndergroundJumpBiteToUnderground"
)

// Sequence is the currently active animation sequence of a Chaser.
type Sequence int

const (
	SequenceFollow Sequence = iota
	SequenceAttack
)

func (s Sequence) ToString() string {
	switch s {
	case SequenceFollow:
		return "Follow"
	case SequenceAttack:
		return "Attack"
	default:
		return "Unknown"
	}
}
