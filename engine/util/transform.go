package util

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var worldForward = mgl32.Vec3{0, 0, -1}
var worldUp = mgl32.Vec3{0, 1, 0}

type Transform struct {
	translation mgl32.Vec3
	rotation    mgl32.Quat
	nameOfOwner string
}

func NewDefaultTransform(name string) *Transform {
	return &Transform{
		translation: mgl32.Vec3{0, 0, 0},
		rotation:    mgl32.QuatIdent(),
		nameOfOwner: name,
	}
}

func (t *Transform) GetPosition() mgl32.Vec3 {
	return t.translation
}
func (t *Transform) SetPosition(position mgl32.Vec3) {
	t.translation = position
}

func (t *Transform) GetRotation() mgl32.Quat {
	return t.rotation
}

// GetForward returns the rotated -Z axis.
func (t *Transform) GetForward() mgl32.Vec3 {
	return t.rotation.Rotate(worldForward)
}

// SetForward applies the shortest rotation from -Z onto direction. Roll is not preserved.
func (t *Transform) SetForward(direction mgl32.Vec3) {
	t.rotation = mgl32.QuatBetweenVectors(worldForward, direction.Normalize())
}

// SetLookDirection turns the transform so that it faces direction while keeping +Y as up.
// Zero directions are ignored. Directions parallel to up fall back to SetForward.
func (t *Transform) SetLookDirection(direction mgl32.Vec3) {
	if direction.Len() < Epsilon {
		return
	}
	if abs(direction.Normalize().Dot(worldUp)) > 1-Epsilon {
		t.SetForward(direction)
		return
	}
	t.rotation = LookRotation(direction, worldUp)
}

// SetLookAt turns the transform towards a point.
func (t *Transform) SetLookAt(target mgl32.Vec3) {
	t.SetLookDirection(target.Sub(t.translation))
}

func (t *Transform) String() string {
	return fmt.Sprintf("%s pos=%v fwd=%v", t.nameOfOwner, t.translation, t.GetForward())
}
