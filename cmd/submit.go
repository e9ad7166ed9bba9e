package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rbrederode/odt/app"
	"github.com/rbrederode/odt/config"
	"github.com/rbrederode/odt/core/assemble"
	"github.com/rbrederode/odt/core/dispatch"
)

var (
	submitDish    string
	submitUser    string
	submitStart   string
	submitEnd     string
	submitTargets []string
	submitFreq    float64
	submitBW      float64
	submitRate    float64
	submitGain    float64
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Stage targets and assemble them into an observation",
	RunE:  runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitDish, "dish", "", "dish identifier (defaults to the configured site dish)")
	submitCmd.Flags().StringVar(&submitUser, "user", "", "submitting user")
	submitCmd.Flags().StringVar(&submitStart, "start", "", "scheduling block start (RFC3339)")
	submitCmd.Flags().StringVar(&submitEnd, "end", "", "scheduling block end (RFC3339)")
	submitCmd.Flags().StringArrayVar(&submitTargets, "target", nil,
		"target specification, e.g. 'ra: 10.684, dec: 41.269' (repeatable)")
	submitCmd.Flags().Float64Var(&submitFreq, "center-freq", 1420.4, "centre frequency in MHz")
	submitCmd.Flags().Float64Var(&submitBW, "bandwidth", 2.4, "bandwidth in MHz")
	submitCmd.Flags().Float64Var(&submitRate, "sample-rate", 2.4, "sample rate in MHz")
	submitCmd.Flags().Float64Var(&submitGain, "gain", 30, "receiver gain in dB")
	_ = submitCmd.MarkFlagRequired("start")
	_ = submitCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	start, err := time.Parse(time.RFC3339, submitStart)
	if err != nil {
		return fmt.Errorf("parse start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, submitEnd)
	if err != nil {
		return fmt.Errorf("parse end: %w", err)
	}
	if submitDish == "" {
		submitDish = cfg.Site.DishID
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx := cmd.Context()
	configFields := []assemble.Field{
		{Label: "Center Freq", Value: submitFreq},
		{Label: "Bandwidth", Value: submitBW},
		{Label: "Sample Rate", Value: submitRate},
		{Label: "Gain", Value: submitGain},
	}
	for _, spec := range submitTargets {
		if _, _, err := svc.Manager.AddTarget(ctx, dispatch.AddTarget{
			TargetFields: []assemble.Field{{Label: "SkyCoord", Value: spec}},
			ConfigFields: configFields,
		}); err != nil {
			return fmt.Errorf("stage target %q: %w", spec, err)
		}
	}

	res, err := svc.Manager.Submit(ctx, dispatch.SubmitObservation{
		DishID: submitDish, User: submitUser, Start: start, End: end,
	})
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(res.Observation, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	cmd.Printf("reserved %d scheduling blocks, skipped %d rows\n", res.Blocks, res.Skipped)
	return nil
}
