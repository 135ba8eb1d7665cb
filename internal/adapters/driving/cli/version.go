package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionOutput string

// versionInfo is the JSON form of the version command.
type versionInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		switch versionOutput {
		case "text":
			fmt.Fprintf(cmd.OutOrStdout(), "boardsync version %s\n", version)
			return nil
		case "json":
			return json.NewEncoder(cmd.OutOrStdout()).Encode(versionInfo{
				Name:      "boardsync",
				Version:   version,
				GoVersion: runtime.Version(),
			})
		default:
			return errInvalidFlag("output", versionOutput)
		}
	},
}

func init() {
	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", "text", `version format: "text" or "json"`)
	rootCmd.AddCommand(versionCmd)
}
