package progress

import "time"

// Classify 按默认策略判定节奏状态
func Classify(actual, ideal float64, c Cycle, now time.Time, hasCheckIn bool) Status {
	return DefaultPolicy().Classify(actual, ideal, c, now, hasCheckIn)
}

// Classify 根据实际进度和理想进度判定状态，按优先级依次判断：
// 已完成 > 截止已过 > 差距分档，最后对未开始的周期做覆盖。
func (p Policy) Classify(actual, ideal float64, c Cycle, now time.Time, hasCheckIn bool) Status {
	actual, ideal = finite(actual), finite(ideal)

	if actual >= 100 {
		return StatusCompleted
	}

	var status Status
	if now.After(c.End) {
		status = StatusBehind
	} else {
		status = p.classifyGap(ideal - actual)
	}

	if !hasCheckIn && !now.After(c.Start) {
		return StatusNotStarted
	}
	return status
}

func (p Policy) classifyGap(gap float64) Status {
	switch {
	case gap <= 0:
		return StatusAhead
	case gap <= p.OnTrackGap:
		return StatusOnTrack
	case gap <= p.AtRiskGap:
		return StatusAtRisk
	default:
		return StatusBehind
	}
}
