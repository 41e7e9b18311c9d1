package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
)

var rootCmd = &cobra.Command{
	Use:          "pageapi",
	Short:        "HTTP service for page records",
	Long:         "pageapi serves create/read/update/delete endpoints for the page table.",
	SilenceUsage: true,
	RunE:         runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("pageapi version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		// 命令行指定的配置文件优先于环境变量 CONFIG_PATH
		if configPath != "" {
			return os.Setenv("CONFIG_PATH", configPath)
		}
		return nil
	}
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}
