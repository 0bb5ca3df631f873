package game

import (
	"github.com/memmaker/giantworm/engine/anim"
	"github.com/memmaker/giantworm/engine/scene"
)

// StateChanged relays animator state callbacks to the Chaser on the animator's game object.
// Attach it to the attack state of the controller.
type StateChanged struct {
	callBack *Chaser // not owned, resolved on first use
}

func (s *StateChanged) getCallBack(animator *anim.Animator) *Chaser {
	if s.callBack == nil && animator != nil {
		if chaser, ok := scene.GetComponent[*Chaser](animator.GameObject()); ok {
			s.callBack = chaser
		}
	}
	return s.callBack
}

func (s *StateChanged) OnStateEnter(animator *anim.Animator, stateInfo anim.StateInfo) {
	if callBack := s.getCallBack(animator); callBack != nil {
		callBack.OnAnimationEnter(stateInfo)
	}
}

func (s *StateChanged) OnStateUpdate(animator *anim.Animator, stateInfo anim.StateInfo) {
	if callBack := s.getCallBack(animator); callBack != nil {
		callBack.OnAnimationUpdate(stateInfo)
	}
}

func (s *StateChanged) OnStateExit(animator *anim.Animator, stateInfo anim.StateInfo) {
	if callBack := s.getCallBack(animator); callBack != nil {
		callBack.OnAnimationExit(stateInfo)
	}
}
