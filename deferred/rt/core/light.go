package core

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLightVectors is the capacity of the light list in 4-component vectors.
// Lights occupy two consecutive vectors: position then color.
const MaxLightVectors = 2048

// Conventional slots filled by the light-culling stage.
const (
	LightSlotFill   = 0 // camera-attached fill light
	LightSlotGlobal = 1 // directional light, direction supplied separately
)

var ErrLightListFull = errors.New("light list is full")

type LightList struct {
	vectors [MaxLightVectors]mgl32.Vec4
	n       int
}

func NewLightList() *LightList {
	return &LightList{}
}

// Append adds a light as a (position, color) pair. For point lights color.w
// is the intensity the rgb is scaled by; slots 0 and 1 ignore it.
func (l *LightList) Append(position mgl32.Vec3, color mgl32.Vec4) error {
	if l.n+2 > MaxLightVectors {
		return ErrLightListFull
	}
	l.vectors[l.n] = position.Vec4(1)
	l.vectors[l.n+1] = color
	l.n += 2
	return nil
}

// Len returns the number of lights (pairs) in the list.
func (l *LightList) Len() int {
	if l == nil {
		return 0
	}
	return l.n / 2
}

// Light returns the position and color of light i.
func (l *LightList) Light(i int) (mgl32.Vec3, mgl32.Vec4) {
	p := l.vectors[2*i]
	return p.Vec3(), l.vectors[2*i+1]
}

// Vectors exposes the raw packed layout.
func (l *LightList) Vectors() []mgl32.Vec4 {
	return l.vectors[:l.n]
}

// GlobalLight is the scene's directional light.
type GlobalLight struct {
	Direction mgl32.Vec3 // direction the light travels
	Color     mgl32.Vec4 // rgb, a unused
}

func DefaultGlobalLight() GlobalLight {
	return GlobalLight{
		Direction: mgl32.Vec3{0, 0, -1},
		Color:     mgl32.Vec4{1, 1, 1, 1},
	}
}

// ToLight returns the unit vector from a surface toward the light.
func (g GlobalLight) ToLight() mgl32.Vec3 {
	d := g.Direction.Mul(-1)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return d.Normalize()
}
