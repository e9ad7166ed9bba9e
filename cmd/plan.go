package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbrederode/odt/core/scan"
)

var (
	planFreq     float64
	planBW       float64
	planRate     float64
	planDuration float64
	planWindow   float64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Decompose an observation into frequency scans",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().Float64Var(&planFreq, "center-freq", 1420.4, "centre frequency in MHz")
	planCmd.Flags().Float64Var(&planBW, "bandwidth", 2.4, "bandwidth in MHz")
	planCmd.Flags().Float64Var(&planRate, "sample-rate", 2.4, "sample rate in MHz")
	planCmd.Flags().Float64Var(&planDuration, "duration", 120, "time on target in seconds")
	planCmd.Flags().Float64Var(&planWindow, "window", 0, "scheduled window in seconds (0 skips the check)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	const mhz = 1e6
	p, err := scan.PlanScans(planFreq*mhz, planBW*mhz, planRate*mhz, planDuration)
	if err != nil {
		return err
	}
	if planWindow > 0 {
		if err := scan.CheckWindow(planWindow, planDuration); err != nil {
			return err
		}
	}
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	fmt.Fprintf(cmd.OutOrStdout(), "%d frequency scans, %d iterations of %.0fs each\n",
		p.FreqScans, p.ScanIterations, p.ScanDuration)
	return nil
}
