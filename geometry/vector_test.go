package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"pipecut/model"
)

const tol = 1e-12

func assertVec(t *testing.T, want, got model.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}

func TestTangents_SinglePoint(t *testing.T) {
	_, err := Tangents(model.Centerline{{X: 1, Y: 2, Z: 3}})
	require.ErrorIs(t, err, ErrInsufficientPoints)

	_, err = Tangents(nil)
	require.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestTangents_LastRepeatsPrevious(t *testing.T) {
	c := model.Centerline{{Z: 0}, {Z: 1}, {Z: 3}}
	got, err := Tangents(c)
	require.NoError(t, err)
	assert.Equal(t, []model.Vector3{{Z: 1}, {Z: 2}, {Z: 2}}, got)
}

func TestTangents_TwoPoints(t *testing.T) {
	got, err := Tangents(model.Centerline{{X: 1}, {X: 4, Y: 4}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, got[0], got[1])
	assert.Equal(t, model.Vector3{X: 3, Y: 4}, got[0])
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(model.Vector3{Z: 2})
	require.NoError(t, err)
	assert.Equal(t, model.Vector3{Z: 1}, got)

	got, err = Normalize(model.Vector3{X: 3, Y: 4})
	require.NoError(t, err)
	assertVec(t, model.Vector3{X: 0.6, Y: 0.8}, got)

	_, err = Normalize(model.Vector3{})
	require.ErrorIs(t, err, ErrDegenerateVector)
}

func TestRightHandedBasis_ZAxis(t *testing.T) {
	b, err := RightHandedBasis(model.Vector3{Z: 1})
	require.NoError(t, err)
	assert.Equal(t, model.Vector3{X: 1}, b.I)
	assert.Equal(t, model.Vector3{Y: 1}, b.J)
	assert.Equal(t, model.Vector3{Z: 1}, b.K)
}

func TestRightHandedBasis_CrossOrder(t *testing.T) {
	// k along x: k x z = (0,-1,0), k x (k x z) = (0,0,-1)
	b, err := RightHandedBasis(model.Vector3{X: 1})
	require.NoError(t, err)
	assert.Equal(t, model.Vector3{Y: -1}, b.I)
	assert.Equal(t, model.Vector3{Z: -1}, b.J)
}

func TestRightHandedBasis_Oblique(t *testing.T) {
	k, err := Normalize(model.Vector3{X: 1, Y: -2, Z: 0.5})
	require.NoError(t, err)

	b, err := RightHandedBasis(k)
	require.NoError(t, err)

	assert.InDelta(t, 1, Magnitude(b.I), tol)
	assert.InDelta(t, 1, Magnitude(b.J), tol)
	assert.InDelta(t, 0, r3.Dot(b.I, b.J), tol)
	assert.InDelta(t, 0, r3.Dot(b.I, b.K), tol)
	assert.InDelta(t, 0, r3.Dot(b.J, b.K), tol)
	assertVec(t, b.K, r3.Cross(b.I, b.J))
}

func TestRightHandedBasis_NegativeZ(t *testing.T) {
	_, err := RightHandedBasis(model.Vector3{Z: -1})
	require.ErrorIs(t, err, ErrDegenerateVector)
}

func TestMagnitude(t *testing.T) {
	assert.Equal(t, 5.0, Magnitude(model.Vector3{X: 3, Z: 4}))
	assert.Equal(t, math.Sqrt(3), Magnitude(model.Vector3{X: 1, Y: 1, Z: 1}))
}
