package progress

import "time"

// TimeRatio 周期已流逝的比例，范围 [0,1]。End <= Start 时视为已全部流逝。
func TimeRatio(c Cycle, now time.Time) float64 {
	if !c.End.After(c.Start) {
		return 1
	}
	total := c.End.Sub(c.Start).Seconds()
	elapsed := now.Sub(c.Start).Seconds()
	return clamp(elapsed/total, 0, 1)
}

// IdealPercent 按默认策略计算理想进度
func IdealPercent(t KeyResultType, c Cycle, now time.Time) float64 {
	return DefaultPolicy().IdealPercent(t, c, now)
}

// IdealPercent 假设进度仅随时间推进时应达到的百分比
func (p Policy) IdealPercent(t KeyResultType, c Cycle, now time.Time) float64 {
	ratio := TimeRatio(c, now)

	switch t {
	case AchieveOrNot:
		// 里程碑型目标在截止前才会达成，前期不按线性要求
		if ratio > p.MilestoneRatio {
			return 100
		}
		return 0
	case ShouldStayAbove, ShouldStayBelow:
		return 100
	default:
		return clampPercent(ratio * 100)
	}
}
