package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd okrctl 根命令，离线计算关键结果进度，不依赖数据库
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "okrctl",
		Short:         "Offline OKR progress calculator",
		Long:          "okrctl evaluates key result progress and pace status from a YAML file using the same engine as the server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewEvaluateCmd())
	cmd.AddCommand(NewPolicyCmd())

	return cmd
}
