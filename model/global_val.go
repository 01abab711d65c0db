package model

// 宿主对象种类
const (
	KindPlaneSection      Kind = "PlaneSection"
	KindCylindricalFrame  Kind = "CylindricalCoordinateSystem"
	KindRadialThreshold   Kind = "ThresholdPart"
	KindAreaAverageReport Kind = "AreaAverageReport"
)

// 宿主请求类型
const (
	OpLookupRegion         = "lookupRegion"
	OpLookupField          = "lookupField"
	OpCreateOrGetPlanarCut = "createOrGetPlanarCut"
	OpSetPlanarCutPose     = "setPlanarCutPose"
	OpSetPlanarCutInput    = "setPlanarCutInput"
	OpCreateOrGetFrame     = "createOrGetCylindricalFrame"
	OpSetFrameOrigin       = "setFrameOrigin"
	OpSetFrameBasis        = "setFrameBasis"
	OpCreateOrGetThreshold = "createOrGetRadialThreshold"
	OpCreateOrGetReport    = "createOrGetAreaAverageReport"
	OpEvaluateAreaAverage  = "evaluateAreaAverage"
)

// 宿主回复类型
const (
	MsgReply = "reply"
	MsgError = "error"
	MsgDone  = "done"
)

// 默认对象名称，与历史宏保持一致
const (
	PlaneName     = "alongCurveCut"
	ReportName    = "surfaceAverageAlongCurveCut"
	FrameName     = "pipeCylindrical"
	ThresholdName = "pipeThreshold"

	UnitScale       = 0.001 // mm -> m
	ThresholdRadius = 0.15  // m
)

// CsvHeader 输出 CSV 表头
var CsvHeader = []string{"x", "y", "z", "value"}
