package sampler

import "pipecut/model"

// Session is the simulation host as seen by the sampler. Every CreateOrGet
// call must be idempotent for a given name.
type Session interface {
	LookupRegion(name string) (model.RegionID, error)
	LookupField(name string) (model.FieldID, error)

	// 截面
	CreateOrGetPlanarCut(name string, region model.RegionID) (model.Handle, error)
	SetPlanarCutPose(cut model.Handle, origin model.Point3, normal model.Vector3) error
	SetPlanarCutInput(cut model.Handle, input model.Handle) error

	// 柱坐标系与径向阈值
	CreateOrGetCylindricalFrame(name string) (model.Handle, error)
	SetFrameOrigin(frame model.Handle, origin model.Point3) error
	SetFrameBasis(frame model.Handle, basis model.Basis) error
	CreateOrGetRadialThreshold(name string, region model.RegionID, frame model.Handle, radius float64) (model.Handle, error)

	// 面平均报告
	CreateOrGetAreaAverageReport(name string, surface model.Handle) (model.Handle, error)
	EvaluateAreaAverage(report model.Handle, field model.FieldID) (float64, error)
}
