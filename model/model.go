package model

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// 坐标与方向
// 1. 输入中心线单位为 mm，乘以 UnitScale 后为 m
// 2. 方向向量约定为单位向量

type Point3 = r3.Vec

type Vector3 = r3.Vec

// Centerline is the ordered pipe axis. Order defines the output row order.
type Centerline []Point3

// Scale returns a copy with every coordinate multiplied by f.
func (c Centerline) Scale(f float64) Centerline {
	scaled := make(Centerline, len(c))
	for i, p := range c {
		scaled[i] = r3.Scale(f, p)
	}
	return scaled
}

// Basis is a right-handed local frame, K is the pipe tangent.
type Basis struct {
	I Vector3 `json:"i"`
	J Vector3 `json:"j"`
	K Vector3 `json:"k"`
}

// StationFrame 每个截面的采样几何
type StationFrame struct {
	Origin Point3
	Normal Vector3
	Basis  *Basis // nil for planar cuts
}

type Sample struct {
	Origin Point3
	Value  float64
}

type SampleSeries struct {
	Field   string
	Samples []Sample
}

// ArcLength returns the distance travelled along the origins up to each sample.
func (s SampleSeries) ArcLength() []float64 {
	res := make([]float64, len(s.Samples))
	for i := 1; i < len(s.Samples); i++ {
		res[i] = res[i-1] + r3.Norm(r3.Sub(s.Samples[i].Origin, s.Samples[i-1].Origin))
	}
	return res
}

// 宿主对象 --------------------------------------------------------------------------------------------------------------

type Kind string

type RegionID string

type FieldID string

// Handle names one entity living inside the simulation host.
type Handle struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
}

func (h Handle) IsZero() bool {
	return h.Kind == "" && h.Name == ""
}

// 宿主通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type HostRequest struct {
	Name   string   `json:"name,omitempty"`
	Region RegionID `json:"region,omitempty"`
	Field  FieldID  `json:"field,omitempty"`
	Target Handle   `json:"target,omitempty"`
	Input  Handle   `json:"input,omitempty"`
	Origin *Point3  `json:"origin,omitempty"`
	Normal *Vector3 `json:"normal,omitempty"`
	Basis  *Basis   `json:"basis,omitempty"`
	Radius float64  `json:"radius,omitempty"`
}

type HostReply struct {
	Handle Handle  `json:"handle,omitempty"`
	ID     string  `json:"id,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// RunSummary is sent to the host when a run ends, Error is set on failure.
type RunSummary struct {
	Stations int      `json:"stations"`
	Fields   []string `json:"fields"`
	Files    []string `json:"files"`
	Error    string   `json:"error,omitempty"`
}
