package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pipecut/model"
)

func TestSaveSeries(t *testing.T) {
	series := model.SampleSeries{
		Field: "AbsolutePressure",
		Samples: []model.Sample{
			{Origin: model.Point3{Z: 0}, Value: 101325},
			{Origin: model.Point3{Z: 1}, Value: 101300},
			{Origin: model.Point3{X: 1, Z: 1}, Value: 101250},
		},
	}
	path := filepath.Join(t.TempDir(), "AbsolutePressure.png")
	require.NoError(t, SaveSeries(path, series))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewPlot_Empty(t *testing.T) {
	_, err := NewPlot(model.SampleSeries{Field: "Density"})
	require.ErrorIs(t, err, ErrEmptySeries)

	err = SaveSeries(filepath.Join(t.TempDir(), "Density.png"), model.SampleSeries{Field: "Density"})
	require.ErrorIs(t, err, ErrEmptySeries)
}

func TestNewPlot_Labels(t *testing.T) {
	p, err := NewPlot(model.SampleSeries{
		Field:   "Temperature",
		Samples: []model.Sample{{Value: 300}, {Origin: model.Point3{Z: 2}, Value: 310}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Temperature", p.Y.Label.Text)
	assert.InDelta(t, 2.0, p.X.Max, 1e-9)
}
