package geometry

import (
	"fmt"

	"pipecut/model"
)

// Frames computes one sampling frame per centerline point. The basis is only
// filled when withBasis is set, i.e. for cylindrical thresholding.
func Frames(c model.Centerline, withBasis bool) ([]model.StationFrame, error) {
	tangents, err := Tangents(c)
	if err != nil {
		return nil, err
	}
	return FramesWithNormals(c, tangents, withBasis)
}

// FramesWithNormals uses the given cut normals instead of the centerline
// tangents. A single station is enough here.
func FramesWithNormals(c model.Centerline, normals []model.Vector3, withBasis bool) ([]model.StationFrame, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: no stations", ErrInsufficientPoints)
	}
	if len(normals) != len(c) {
		return nil, fmt.Errorf("%d normals for %d stations", len(normals), len(c))
	}

	frames := make([]model.StationFrame, len(c))
	for i, n := range normals {
		normal, err := Normalize(n)
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", i, err)
		}
		frames[i] = model.StationFrame{
			Origin: c[i],
			Normal: normal,
		}
		if !withBasis {
			continue
		}
		basis, err := RightHandedBasis(normal)
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", i, err)
		}
		frames[i].Basis = &basis
	}
	return frames, nil
}
