package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"pipecut/model"
)

var (
	ErrInsufficientPoints = errors.New("centerline needs at least 2 points to derive a tangent")
	ErrDegenerateVector   = errors.New("zero-length vector cannot be normalized")
)

var zAxis = model.Vector3{X: 0, Y: 0, Z: 1}

// Magnitude returns the euclidean norm, summed in x, y, z order.
func Magnitude(v model.Vector3) float64 {
	return math.Sqrt(r3.Dot(v, v))
}

// Normalize scales v by 1/|v|.
func Normalize(v model.Vector3) (model.Vector3, error) {
	m := Magnitude(v)
	if m == 0 {
		return model.Vector3{}, ErrDegenerateVector
	}
	return r3.Scale(1.0/m, v), nil
}

// Tangents returns the forward differences of the centerline. The final point
// has no successor, so it repeats the last difference.
func Tangents(c model.Centerline) ([]model.Vector3, error) {
	n := len(c)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPoints, n)
	}
	tangents := make([]model.Vector3, n)
	for i := 0; i+1 < n; i++ {
		tangents[i] = r3.Sub(c[i+1], c[i])
	}
	tangents[n-1] = tangents[n-2]
	return tangents, nil
}

// RightHandedBasis builds the cylindrical frame axes around the unit tangent k.
// i is k x z and j is k x i, both taken before normalization; historical
// threshold orientations depend on this exact order.
func RightHandedBasis(k model.Vector3) (model.Basis, error) {
	if k == zAxis {
		return model.Basis{
			I: model.Vector3{X: 1},
			J: model.Vector3{Y: 1},
			K: k,
		}, nil
	}

	i := r3.Cross(k, zAxis)
	j := r3.Cross(k, i)

	iUnit, err := Normalize(i)
	if err != nil {
		return model.Basis{}, fmt.Errorf("basis i axis for k=%v: %w", k, err)
	}
	jUnit, err := Normalize(j)
	if err != nil {
		return model.Basis{}, fmt.Errorf("basis j axis for k=%v: %w", k, err)
	}
	return model.Basis{I: iUnit, J: jUnit, K: k}, nil
}
