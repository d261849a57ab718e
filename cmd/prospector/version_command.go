package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the prospector version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prospector %s", version)
			if info, ok := debug.ReadBuildInfo(); ok {
				for _, setting := range info.Settings {
					if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
						fmt.Fprintf(out, " (%s)", setting.Value[:7])
						break
					}
				}
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
