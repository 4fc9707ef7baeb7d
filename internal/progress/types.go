package progress

import "time"

// KeyResultType 关键结果的度量类型
type KeyResultType string

const (
	IncreaseTo      KeyResultType = "increase_to"
	DecreaseTo      KeyResultType = "decrease_to"
	AchieveOrNot    KeyResultType = "achieve_or_not"
	ShouldStayAbove KeyResultType = "should_stay_above"
	ShouldStayBelow KeyResultType = "should_stay_below"
)

// KnownTypes 返回所有已定义的类型
func KnownTypes() []KeyResultType {
	return []KeyResultType{IncreaseTo, DecreaseTo, AchieveOrNot, ShouldStayAbove, ShouldStayBelow}
}

// IsKnown 未知类型走默认线性规则
func (t KeyResultType) IsKnown() bool {
	switch t {
	case IncreaseTo, DecreaseTo, AchieveOrNot, ShouldStayAbove, ShouldStayBelow:
		return true
	}
	return false
}

// Status 进度节奏状态，每次由快照重新计算，不作为持久化数据
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusAhead      Status = "ahead"
	StatusOnTrack    Status = "on_track"
	StatusAtRisk     Status = "at_risk"
	StatusBehind     Status = "behind"
	StatusCompleted  Status = "completed"
)

// Measurement 当前值/目标值/基准值，Unit 只用于展示
type Measurement struct {
	Current float64 `json:"current" yaml:"current"`
	Target  float64 `json:"target" yaml:"target"`
	Base    float64 `json:"base" yaml:"base"`
	Unit    string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Cycle 周期起止时间。正常数据 Start <= End，但计算时必须容忍异常
type Cycle struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Snapshot 一次计算的完整输入
type Snapshot struct {
	Type        KeyResultType `json:"type" yaml:"type"`
	Measurement Measurement   `json:"measurement" yaml:"measurement"`
	Cycle       Cycle         `json:"cycle" yaml:"cycle"`
	Now         time.Time     `json:"now" yaml:"now"`
	HasCheckIn  bool          `json:"hasCheckIn" yaml:"has_check_in"`
}

// Result 单个关键结果的计算结果
type Result struct {
	ActualPercent float64 `json:"actualPercent" yaml:"actual_percent"`
	IdealPercent  float64 `json:"idealPercent" yaml:"ideal_percent"`
	Status        Status  `json:"status" yaml:"status"`
}

// Gap 理想进度与实际进度之差
func (r Result) Gap() float64 {
	return r.IdealPercent - r.ActualPercent
}

// ObjectiveRollup 目标层面的汇总
type ObjectiveRollup struct {
	ActualPercent float64 `json:"actualPercent" yaml:"actual_percent"`
	IdealPercent  float64 `json:"idealPercent" yaml:"ideal_percent"`
}
