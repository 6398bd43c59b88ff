package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/berrythewa/clippaste/internal/platform"
)

// EnvReport describes what a paste would run against on this host.
type EnvReport struct {
	Environment   string `json:"environment"`
	Supported     bool   `json:"supported"`
	GOOS          string `json:"goos"`
	KernelRelease string `json:"kernel_release,omitempty"`
	InteropMount  string `json:"interop_mount"`
	Shell         string `json:"shell,omitempty"`
}

func newEnvCmd() *cobra.Command {
	var useJSON bool

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the detected clipboard environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireConfig()
			if err != nil {
				return err
			}

			env := resolveEnv(c)
			report := EnvReport{
				Environment:   env.String(),
				Supported:     env.Supported(),
				GOOS:          runtime.GOOS,
				KernelRelease: platform.KernelRelease(),
				InteropMount:  c.Paste.InteropMount,
			}
			if env.Supported() {
				report.Shell = platform.DelegateShell(env, c.Paste.Shell)
			}

			out := cmd.OutOrStdout()
			if useJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintf(out, "Environment:    %s\n", report.Environment)
			fmt.Fprintf(out, "Supported:      %t\n", report.Supported)
			fmt.Fprintf(out, "GOOS:           %s\n", report.GOOS)
			if report.KernelRelease != "" {
				fmt.Fprintf(out, "Kernel release: %s\n", report.KernelRelease)
			}
			fmt.Fprintf(out, "Interop mount:  %s\n", report.InteropMount)
			if report.Shell != "" {
				fmt.Fprintf(out, "Delegate shell: %s\n", report.Shell)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useJSON, "json", false, "output as JSON")
	return cmd
}
