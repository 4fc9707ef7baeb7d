// Package progress 是关键结果进度计算的唯一实现。
// 所有函数都是纯函数：不读时钟、不做 I/O、可以并发调用。
package progress

// Engine 绑定一份策略的计算入口
type Engine struct {
	policy Policy
}

// NewEngine 策略非法时使用默认策略
func NewEngine(p Policy) *Engine {
	return &Engine{policy: p.OrDefault()}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Evaluate 计算单个快照的实际进度、理想进度和状态
func (e *Engine) Evaluate(s Snapshot) Result {
	actual := ActualPercent(s.Type, s.Measurement)
	ideal := e.policy.IdealPercent(s.Type, s.Cycle, s.Now)
	return Result{
		ActualPercent: actual,
		IdealPercent:  ideal,
		Status:        e.policy.Classify(actual, ideal, s.Cycle, s.Now, s.HasCheckIn),
	}
}

// EvaluateAll 逐个计算并返回汇总
func (e *Engine) EvaluateAll(snapshots []Snapshot) ([]Result, ObjectiveRollup) {
	results := make([]Result, 0, len(snapshots))
	for _, s := range snapshots {
		results = append(results, e.Evaluate(s))
	}
	return results, Rollup(results)
}

// Evaluate 使用默认策略
func Evaluate(s Snapshot) Result {
	return NewEngine(DefaultPolicy()).Evaluate(s)
}
