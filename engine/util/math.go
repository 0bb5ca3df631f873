package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const Epsilon float32 = 1e-5

func abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func Mix64(a, b float32, factor float64) float32 {
	return float32(float64(a)*(1.0-factor) + factor*float64(b))
}

func Clamp(value, min, max float64) float64 {
	return mgl64.Clamp(value, min, max)
}

func Lerp3(one, two mgl32.Vec3, factor float64) mgl32.Vec3 {
	return mgl32.Vec3{Mix64(one.X(), two.X(), factor), Mix64(one.Y(), two.Y(), factor), Mix64(one.Z(), two.Z(), factor)}
}

// AngleBetween returns the unsigned angle in radians between two non-zero vectors.
func AngleBetween(one, two mgl32.Vec3) float32 {
	cosTheta := one.Normalize().Dot(two.Normalize())
	return float32(math.Acos(Clamp(float64(cosTheta), -1, 1)))
}

// MoveTowards moves current toward target by at most maxDistanceDelta.
func MoveTowards(current, target mgl32.Vec3, maxDistanceDelta float32) mgl32.Vec3 {
	delta := target.Sub(current)
	distance := delta.Len()
	if distance <= maxDistanceDelta || distance < Epsilon {
		return target
	}
	return current.Add(delta.Mul(maxDistanceDelta / distance))
}

func moveTowardsScalar(current, target, maxDelta float32) float32 {
	if abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// RotateTowards rotates current toward target by at most maxRadiansDelta and changes its
// length toward the length of target by at most maxMagnitudeDelta.
// A non-positive maxRadiansDelta leaves the direction unchanged.
func RotateTowards(current, target mgl32.Vec3, maxRadiansDelta, maxMagnitudeDelta float32) mgl32.Vec3 {
	currentLen := current.Len()
	targetLen := target.Len()
	if currentLen < Epsilon || targetLen < Epsilon {
		return MoveTowards(current, target, maxMagnitudeDelta)
	}
	from := current.Mul(1 / currentLen)
	to := target.Mul(1 / targetLen)
	newLen := moveTowardsScalar(currentLen, targetLen, maxMagnitudeDelta)

	if maxRadiansDelta <= 0 {
		return from.Mul(newLen)
	}
	angle := AngleBetween(from, to)
	if angle <= maxRadiansDelta {
		return to.Mul(newLen)
	}

	axis := from.Cross(to)
	if axis.Len() < Epsilon { // opposite directions, any perpendicular axis will do
		axis = perpendicular(from)
	}
	direction := mgl32.QuatRotate(maxRadiansDelta, axis.Normalize()).Rotate(from)
	return direction.Normalize().Mul(newLen)
}

func perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	if abs(v.X()) < 0.9 {
		return v.Cross(mgl32.Vec3{1, 0, 0})
	}
	return v.Cross(mgl32.Vec3{0, 1, 0})
}

// LookRotation returns the rotation that maps -Z onto direction with the rotated +Y as close to up as possible.
func LookRotation(direction, up mgl32.Vec3) mgl32.Quat {
	dir := direction.Normalize()
	rotDir := mgl32.QuatBetweenVectors(worldForward, dir)

	right := dir.Cross(up)
	if right.Len() < Epsilon {
		return rotDir
	}
	desiredUp := right.Cross(dir).Normalize()
	upCur := rotDir.Rotate(worldUp)
	roll := math.Atan2(float64(dir.Dot(upCur.Cross(desiredUp))), float64(upCur.Dot(desiredUp)))
	rotUp := mgl32.QuatRotate(float32(roll), dir)
	return rotUp.Mul(rotDir) // reverse order
}
