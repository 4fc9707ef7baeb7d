package progress

// Rollup 目标汇总：实际进度与理想进度各自取算术平均，空列表返回 0
func Rollup(results []Result) ObjectiveRollup {
	if len(results) == 0 {
		return ObjectiveRollup{}
	}

	var actual, ideal float64
	for _, r := range results {
		actual += finite(r.ActualPercent)
		ideal += finite(r.IdealPercent)
	}

	n := float64(len(results))
	return ObjectiveRollup{
		ActualPercent: clampPercent(actual / n),
		IdealPercent:  clampPercent(ideal / n),
	}
}
