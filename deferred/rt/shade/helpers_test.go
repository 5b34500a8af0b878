package shade

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/composite/deferred/rt/core"
)

var testDistances = [core.CascadeCount]float32{10, 30, 80, 200}

// identityFrame reconstructs world positions as (ndc.x, ndc.y, depth).
func identityFrame(t *testing.T, cameraPos mgl32.Vec3) *Frame {
	t.Helper()
	var m [core.CascadeCount]mgl32.Mat4
	for i := range m {
		m[i] = mgl32.Ident4()
	}
	cs, err := core.NewCascadeSet(m, testDistances)
	require.NoError(t, err)
	return &Frame{
		View:     core.NewView(mgl32.Ident4(), mgl32.Ident4(), cameraPos, mgl32.Vec3{0, 0, -1}),
		Lights:   core.NewLightList(),
		Global:   core.DefaultGlobalLight(),
		Cascades: cs,
	}
}

func attributes(albedo mgl32.Vec3, normal mgl32.Vec3, smoothness, metallic, aoEmission float32) core.Attributes {
	return core.Attributes{
		RT0: albedo.Vec4(0.3),
		RT1: core.EncodeNormalSmoothness(normal, smoothness).Vec4(0),
		RT2: mgl32.Vec4{metallic, aoEmission, 0.2, 0.8},
		RT3: mgl32.Vec4{0.9, 0.8, 0.7, 0.6},
	}
}

func assertVec4InDelta(t *testing.T, expected, actual mgl32.Vec4, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := 0; i < 4; i++ {
		if d := float64(expected[i] - actual[i]); d > delta || d < -delta {
			t.Errorf("component %d: expected %v, got %v %v", i, expected, actual, msgAndArgs)
			return
		}
	}
}
