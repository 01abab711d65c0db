package sampler

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"pipecut/geometry"
	"pipecut/model"
)

// CurveSampler owns one plane section, one report and, in cylindrical mode,
// one coordinate system and one radial threshold inside the host session.
// They are created on first use and repositioned for every station.
type CurveSampler struct {
	session Session
	cfg     *Config

	region    model.RegionID
	plane     model.Handle
	report    model.Handle
	frame     model.Handle
	threshold model.Handle
	prepared  bool
}

func NewCurveSampler(s Session, cfg *Config) *CurveSampler {
	return &CurveSampler{
		session: s,
		cfg:     cfg,
	}
}

func (c *CurveSampler) cylindrical() bool {
	return c.cfg.Mode == ModeCylindrical
}

// 创建或获取宿主对象，只执行一次
func (c *CurveSampler) prepare() error {
	if c.prepared {
		return nil
	}
	var err error
	c.region, err = c.session.LookupRegion(c.cfg.RegionName)
	if err != nil {
		return hostErr(model.OpLookupRegion, c.cfg.RegionName, -1, err)
	}
	c.plane, err = c.session.CreateOrGetPlanarCut(c.cfg.PlaneName, c.region)
	if err != nil {
		return hostErr(model.OpCreateOrGetPlanarCut, c.cfg.PlaneName, -1, err)
	}
	if c.cylindrical() {
		c.frame, err = c.session.CreateOrGetCylindricalFrame(c.cfg.FrameName)
		if err != nil {
			return hostErr(model.OpCreateOrGetFrame, c.cfg.FrameName, -1, err)
		}
		c.threshold, err = c.session.CreateOrGetRadialThreshold(c.cfg.ThresholdName, c.region, c.frame, c.cfg.ThresholdRadius)
		if err != nil {
			return hostErr(model.OpCreateOrGetThreshold, c.cfg.ThresholdName, -1, err)
		}
	}
	c.report, err = c.session.CreateOrGetAreaAverageReport(c.cfg.ReportName, c.plane)
	if err != nil {
		return hostErr(model.OpCreateOrGetReport, c.cfg.ReportName, -1, err)
	}

	log.WithFields(log.Fields{
		"region": c.region,
		"plane":  c.plane.Name,
		"report": c.report.Name,
		"mode":   c.cfg.Mode,
	}).Info("采样对象已就绪")
	c.prepared = true
	return nil
}

// position moves the cutting geometry to one station.
func (c *CurveSampler) position(i int, f model.StationFrame) error {
	if c.cylindrical() {
		basis := f.Basis
		if basis == nil {
			b, err := geometry.RightHandedBasis(f.Normal)
			if err != nil {
				return fmt.Errorf("station %d: %w", i, err)
			}
			basis = &b
		}
		if err := c.session.SetFrameOrigin(c.frame, f.Origin); err != nil {
			return hostErr(model.OpSetFrameOrigin, c.frame.Name, i, err)
		}
		if err := c.session.SetFrameBasis(c.frame, *basis); err != nil {
			return hostErr(model.OpSetFrameBasis, c.frame.Name, i, err)
		}
	}
	if err := c.session.SetPlanarCutPose(c.plane, f.Origin, f.Normal); err != nil {
		return hostErr(model.OpSetPlanarCutPose, c.plane.Name, i, err)
	}
	if c.cylindrical() {
		if err := c.session.SetPlanarCutInput(c.plane, c.threshold); err != nil {
			return hostErr(model.OpSetPlanarCutInput, c.plane.Name, i, err)
		}
	}
	return nil
}

// SampleAlongCurve evaluates the area average of field at every station, in
// order. The first host failure aborts the series.
func (c *CurveSampler) SampleAlongCurve(frames []model.StationFrame, field string) (model.SampleSeries, error) {
	series := model.SampleSeries{Field: field}
	if err := c.prepare(); err != nil {
		return series, err
	}
	fieldID, err := c.session.LookupField(field)
	if err != nil {
		return series, hostErr(model.OpLookupField, field, -1, err)
	}

	series.Samples = make([]model.Sample, 0, len(frames))
	for i, f := range frames {
		if err := c.position(i, f); err != nil {
			return series, err
		}
		value, err := c.session.EvaluateAreaAverage(c.report, fieldID)
		if err != nil {
			return series, hostErr(model.OpEvaluateAreaAverage, field, i, err)
		}
		series.Samples = append(series.Samples, model.Sample{Origin: f.Origin, Value: value})
	}
	return series, nil
}

// SampleCenterline derives the frames from a centerline already in metres.
func (c *CurveSampler) SampleCenterline(centerline model.Centerline, field string) (model.SampleSeries, error) {
	frames, err := geometry.Frames(centerline, c.cylindrical())
	if err != nil {
		return model.SampleSeries{Field: field}, err
	}
	return c.SampleAlongCurve(frames, field)
}
