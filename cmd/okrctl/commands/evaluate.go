package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"okr_backend/internal/progress"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// File evaluate 命令读取的输入文件
type File struct {
	Now        *time.Time       `yaml:"now"`
	Cycle      progress.Cycle   `yaml:"cycle"`
	Policy     *PolicyOverride  `yaml:"policy"`
	KeyResults []KeyResultEntry `yaml:"key_results"`
}

// PolicyOverride 只覆盖文件中出现的阈值，其余沿用默认值
type PolicyOverride struct {
	OnTrackGap     *float64 `yaml:"on_track_gap"`
	AtRiskGap      *float64 `yaml:"at_risk_gap"`
	MilestoneRatio *float64 `yaml:"milestone_ratio"`
}

// Apply 合并到 base 上并校验
func (o *PolicyOverride) Apply(base progress.Policy) (progress.Policy, error) {
	p := base
	if o == nil {
		return p, nil
	}
	if o.OnTrackGap != nil {
		p.OnTrackGap = *o.OnTrackGap
	}
	if o.AtRiskGap != nil {
		p.AtRiskGap = *o.AtRiskGap
	}
	if o.MilestoneRatio != nil {
		p.MilestoneRatio = *o.MilestoneRatio
	}
	if err := p.Validate(); err != nil {
		return base, err
	}
	return p, nil
}

type KeyResultEntry struct {
	Title                string                 `yaml:"title"`
	Type                 progress.KeyResultType `yaml:"type"`
	progress.Measurement `yaml:",inline"`
	HasCheckIn           bool `yaml:"has_check_in"`
	// Cycle 为空时使用文件级周期
	Cycle *progress.Cycle `yaml:"cycle"`
}

type EvaluatedKeyResult struct {
	Title           string `json:"title" yaml:"title"`
	progress.Result `yaml:",inline"`
}

type Report struct {
	Now        time.Time                `json:"now" yaml:"now"`
	Policy     progress.Policy          `json:"policy" yaml:"policy"`
	KeyResults []EvaluatedKeyResult     `json:"keyResults" yaml:"key_results"`
	Rollup     progress.ObjectiveRollup `json:"rollup" yaml:"rollup"`
}

func NewEvaluateCmd() *cobra.Command {
	var (
		file   string
		nowArg string
		output string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate key results from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			in, err := decodeFile(r)
			if err != nil {
				return err
			}

			now := time.Now()
			if in.Now != nil {
				now = *in.Now
			}
			if nowArg != "" {
				now, err = time.Parse(time.RFC3339, nowArg)
				if err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
			}

			report, err := Evaluate(in, now)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, output)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "input YAML file, - for stdin")
	cmd.Flags().StringVar(&nowArg, "now", "", "evaluation instant (RFC3339), overrides the file")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")

	return cmd
}

func decodeFile(r io.Reader) (*File, error) {
	var in File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty input")
		}
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return &in, nil
}

// Evaluate 按文件中的策略计算所有关键结果，策略缺省时使用默认阈值
func Evaluate(in *File, now time.Time) (*Report, error) {
	policy, err := in.Policy.Apply(progress.DefaultPolicy())
	if err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	snaps := make([]progress.Snapshot, 0, len(in.KeyResults))
	for _, kr := range in.KeyResults {
		cycle := in.Cycle
		if kr.Cycle != nil {
			cycle = *kr.Cycle
		}
		snaps = append(snaps, progress.Snapshot{
			Type:        kr.Type,
			Measurement: kr.Measurement,
			Cycle:       cycle,
			Now:         now,
			HasCheckIn:  kr.HasCheckIn,
		})
	}

	results, rollup := progress.NewEngine(policy).EvaluateAll(snaps)

	report := &Report{
		Now:        now,
		Policy:     policy,
		KeyResults: make([]EvaluatedKeyResult, len(results)),
		Rollup:     rollup,
	}
	for i, res := range results {
		report.KeyResults[i] = EvaluatedKeyResult{Title: in.KeyResults[i].Title, Result: res}
	}
	return report, nil
}

func writeReport(w io.Writer, report *Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
