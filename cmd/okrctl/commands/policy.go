package commands

import (
	"okr_backend/internal/config"
	"okr_backend/internal/progress"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewPolicyCmd 打印生效的阈值表。指定 --config 时读取服务配置（含 OKR_ 环境变量）。
func NewPolicyCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the effective pace policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy := progress.DefaultPolicy()
			if configDir != "" {
				cfg, err := config.LoadConfig(configDir)
				if err != nil {
					return err
				}
				policy = cfg.Progress.Policy()
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(policy); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&configDir, "config", "", "server config directory")

	return cmd
}
