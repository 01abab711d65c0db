package session

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"pipecut/model"
)

// Probe is what an in-memory field sees when a report is evaluated: the pose
// of the plane section and, when the cut is restricted by a radial threshold,
// the threshold radius and the local frame.
type Probe struct {
	Origin model.Point3
	Normal model.Vector3
	Radius float64
	Frame  *model.Basis
}

type FieldFunc func(p Probe) (float64, error)

// Constant always averages to v.
func Constant(v float64) FieldFunc {
	return func(Probe) (float64, error) {
		return v, nil
	}
}

// Linear averages to base + gradient·origin, exact for a linear field over a
// symmetric section.
func Linear(base float64, gradient model.Vector3) FieldFunc {
	return func(p Probe) (float64, error) {
		return base + r3.Dot(gradient, p.Origin), nil
	}
}

type planeSection struct {
	region model.RegionID
	origin model.Point3
	normal model.Vector3
	input  model.Handle
}

type cylindricalFrame struct {
	origin model.Point3
	basis  model.Basis
}

type radialThreshold struct {
	region model.RegionID
	frame  string
	radius float64
}

// Memory is an in-process stand-in for the simulation host. It keeps the
// same get-or-create semantics for named entities.
type Memory struct {
	registry *Registry

	regions map[string]struct{}
	fields  map[string]FieldFunc

	planes     map[string]*planeSection
	frames     map[string]*cylindricalFrame
	thresholds map[string]*radialThreshold
	reports    map[string]string // report -> plane section

	poseEdits   int
	evaluations int
}

func NewMemory(regions []string, fields map[string]FieldFunc) *Memory {
	m := &Memory{
		registry:   NewRegistry(),
		regions:    make(map[string]struct{}),
		fields:     make(map[string]FieldFunc),
		planes:     make(map[string]*planeSection),
		frames:     make(map[string]*cylindricalFrame),
		thresholds: make(map[string]*radialThreshold),
		reports:    make(map[string]string),
	}
	for _, r := range regions {
		m.regions[r] = struct{}{}
	}
	for name, f := range fields {
		m.fields[name] = f
	}
	return m
}

func (m *Memory) Registry() *Registry {
	return m.registry
}

// PoseEdits counts plane section repositionings.
func (m *Memory) PoseEdits() int {
	return m.poseEdits
}

func (m *Memory) Evaluations() int {
	return m.evaluations
}

func (m *Memory) LookupRegion(name string) (model.RegionID, error) {
	if _, ok := m.regions[name]; !ok {
		return "", fmt.Errorf("region %q not found", name)
	}
	return model.RegionID(name), nil
}

func (m *Memory) LookupField(name string) (model.FieldID, error) {
	if _, ok := m.fields[name]; !ok {
		return "", fmt.Errorf("field function %q not found", name)
	}
	return model.FieldID(name), nil
}

func (m *Memory) CreateOrGetPlanarCut(name string, region model.RegionID) (model.Handle, error) {
	return m.registry.GetOrCreate(model.KindPlaneSection, name, func() error {
		if _, err := m.LookupRegion(string(region)); err != nil {
			return err
		}
		m.planes[name] = &planeSection{
			region: region,
			normal: model.Vector3{Z: 1},
		}
		return nil
	})
}

func (m *Memory) plane(h model.Handle) (*planeSection, error) {
	p, ok := m.planes[h.Name]
	if !ok || h.Kind != model.KindPlaneSection {
		return nil, fmt.Errorf("plane section %q not found", h.Name)
	}
	return p, nil
}

func (m *Memory) SetPlanarCutPose(cut model.Handle, origin model.Point3, normal model.Vector3) error {
	p, err := m.plane(cut)
	if err != nil {
		return err
	}
	p.origin = origin
	p.normal = normal
	m.poseEdits++
	return nil
}

func (m *Memory) SetPlanarCutInput(cut model.Handle, input model.Handle) error {
	p, err := m.plane(cut)
	if err != nil {
		return err
	}
	if !m.registry.Has(input) {
		return fmt.Errorf("input part %q not found", input.Name)
	}
	p.input = input
	return nil
}

func (m *Memory) CreateOrGetCylindricalFrame(name string) (model.Handle, error) {
	return m.registry.GetOrCreate(model.KindCylindricalFrame, name, func() error {
		m.frames[name] = &cylindricalFrame{
			basis: model.Basis{
				I: model.Vector3{X: 1},
				J: model.Vector3{Y: 1},
				K: model.Vector3{Z: 1},
			},
		}
		return nil
	})
}

func (m *Memory) frame(h model.Handle) (*cylindricalFrame, error) {
	f, ok := m.frames[h.Name]
	if !ok || h.Kind != model.KindCylindricalFrame {
		return nil, fmt.Errorf("coordinate system %q not found", h.Name)
	}
	return f, nil
}

func (m *Memory) SetFrameOrigin(frame model.Handle, origin model.Point3) error {
	f, err := m.frame(frame)
	if err != nil {
		return err
	}
	f.origin = origin
	return nil
}

func (m *Memory) SetFrameBasis(frame model.Handle, basis model.Basis) error {
	f, err := m.frame(frame)
	if err != nil {
		return err
	}
	f.basis = basis
	return nil
}

// CreateOrGetRadialThreshold updates the radius when the threshold already exists.
func (m *Memory) CreateOrGetRadialThreshold(name string, region model.RegionID, frame model.Handle, radius float64) (model.Handle, error) {
	if _, err := m.frame(frame); err != nil {
		return model.Handle{}, err
	}
	h, err := m.registry.GetOrCreate(model.KindRadialThreshold, name, func() error {
		if _, err := m.LookupRegion(string(region)); err != nil {
			return err
		}
		m.thresholds[name] = &radialThreshold{region: region, frame: frame.Name}
		return nil
	})
	if err != nil {
		return model.Handle{}, err
	}
	m.thresholds[name].radius = radius
	return h, nil
}

func (m *Memory) CreateOrGetAreaAverageReport(name string, surface model.Handle) (model.Handle, error) {
	return m.registry.GetOrCreate(model.KindAreaAverageReport, name, func() error {
		if _, err := m.plane(surface); err != nil {
			return err
		}
		m.reports[name] = surface.Name
		return nil
	})
}

func (m *Memory) EvaluateAreaAverage(report model.Handle, field model.FieldID) (float64, error) {
	surface, ok := m.reports[report.Name]
	if !ok || report.Kind != model.KindAreaAverageReport {
		return 0, fmt.Errorf("report %q not found", report.Name)
	}
	fn, ok := m.fields[string(field)]
	if !ok {
		return 0, fmt.Errorf("field function %q not found", field)
	}
	p := m.planes[surface]
	probe := Probe{Origin: p.origin, Normal: p.normal}
	if t, ok := m.thresholds[p.input.Name]; ok && p.input.Kind == model.KindRadialThreshold {
		f := m.frames[t.frame]
		probe.Radius = t.radius
		basis := f.basis
		probe.Frame = &basis
	}
	m.evaluations++
	return fn(probe)
}
