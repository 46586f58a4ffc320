package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var versionJSONOutput bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSONOutput {
			out, err := json.MarshalIndent(map[string]string{
				"version":   version,
				"commit":    commit,
				"buildDate": buildDate,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "harrec %s (commit %s, built %s)\n", version, commit, buildDate)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(versionCmd)
}
