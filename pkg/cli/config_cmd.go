package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getharrec/harrec/pkg/config"
)

var (
	configFile       string
	configJSONOutput bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration and value sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		if configJSONOutput {
			out, err := json.MarshalIndent(map[string]any{
				"outputDir":      cfg.OutputDir,
				"creatorName":    cfg.CreatorName,
				"creatorVersion": cfg.CreatorVersion,
				"baseHeaders":    cfg.BaseHeaders,
				"logLevel":       cfg.LogLevel,
				"logFormat":      cfg.LogFormat,
				"sources":        cfg.Sources,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "outputDir:      %s (%s)\n", cfg.OutputDir, cfg.Sources["outputDir"])
		fmt.Fprintf(w, "creatorName:    %s (%s)\n", cfg.CreatorName, cfg.Sources["creatorName"])
		fmt.Fprintf(w, "creatorVersion: %s (%s)\n", cfg.CreatorVersion, cfg.Sources["creatorVersion"])
		fmt.Fprintf(w, "logLevel:       %s (%s)\n", cfg.LogLevel, cfg.Sources["logLevel"])
		fmt.Fprintf(w, "logFormat:      %s (%s)\n", cfg.LogFormat, cfg.Sources["logFormat"])
		for _, h := range cfg.BaseHeaders {
			fmt.Fprintf(w, "baseHeader:     %s: %s\n", h.Name, h.Value)
		}
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&configFile, "config", "", "Config file path (default: $HARREC_CONFIG or .harrec.yaml)")
	configCmd.Flags().BoolVar(&configJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(configCmd)
}
