package progress

import "fmt"

const (
	DefaultOnTrackGap     = 10.0
	DefaultAtRiskGap      = 20.0
	DefaultMilestoneRatio = 0.8
)

// Policy 节奏判定的阈值表，可通过配置覆盖
type Policy struct {
	// OnTrackGap 差距不超过该值视为 on_track
	OnTrackGap float64 `json:"onTrackGap" yaml:"on_track_gap" mapstructure:"on_track_gap"`
	// AtRiskGap 差距不超过该值视为 at_risk，超过则 behind
	AtRiskGap float64 `json:"atRiskGap" yaml:"at_risk_gap" mapstructure:"at_risk_gap"`
	// MilestoneRatio achieve_or_not 类型在时间比例超过该值后理想进度变为 100
	MilestoneRatio float64 `json:"milestoneRatio" yaml:"milestone_ratio" mapstructure:"milestone_ratio"`
}

func DefaultPolicy() Policy {
	return Policy{
		OnTrackGap:     DefaultOnTrackGap,
		AtRiskGap:      DefaultAtRiskGap,
		MilestoneRatio: DefaultMilestoneRatio,
	}
}

// Validate 检查阈值是否自洽
func (p Policy) Validate() error {
	if !(p.OnTrackGap >= 0) {
		return fmt.Errorf("on_track_gap must be >= 0, got %v", p.OnTrackGap)
	}
	if !(p.AtRiskGap >= p.OnTrackGap) {
		return fmt.Errorf("at_risk_gap (%v) must be >= on_track_gap (%v)", p.AtRiskGap, p.OnTrackGap)
	}
	if !(p.MilestoneRatio >= 0 && p.MilestoneRatio <= 1) {
		return fmt.Errorf("milestone_ratio must be within [0,1], got %v", p.MilestoneRatio)
	}
	return nil
}

// OrDefault 非法策略回退为默认值
func (p Policy) OrDefault() Policy {
	if p.Validate() != nil {
		return DefaultPolicy()
	}
	return p
}
