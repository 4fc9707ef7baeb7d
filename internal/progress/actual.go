package progress

import "math"

// ActualPercent 根据类型和数值计算实际完成百分比，结果始终在 [0,100]。
// 配置错误（比如 increase_to 的目标不高于基准）返回 0，不报错。
func ActualPercent(t KeyResultType, m Measurement) float64 {
	cur, target, base := finite(m.Current), finite(m.Target), finite(m.Base)

	switch t {
	case IncreaseTo:
		if target <= base {
			return 0
		}
		return clampPercent((cur - base) / (target - base) * 100)
	case DecreaseTo:
		if base <= target {
			return 0
		}
		return clampPercent((base - cur) / (base - target) * 100)
	case AchieveOrNot, ShouldStayAbove:
		if cur >= target {
			return 100
		}
		return 0
	case ShouldStayBelow:
		if cur <= target {
			return 100
		}
		return 0
	default:
		if target == 0 {
			return 0
		}
		return clampPercent(cur / target * 100)
	}
}

// finite 非法数值（NaN、Inf）按 0 处理
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampPercent(v float64) float64 {
	return clamp(v, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
