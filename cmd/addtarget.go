package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbrederode/odt/app"
	"github.com/rbrederode/odt/config"
	"github.com/rbrederode/odt/core/assemble"
	"github.com/rbrederode/odt/core/dispatch"
)

var (
	addSkyCoord string
	addSolar    string
	addAltAz    string
	addTarget   string
	addPointing string
	addFreq     float64
	addBW       float64
	addRate     float64
	addGain     float64
	addFeed     string
)

var addTargetCmd = &cobra.Command{
	Use:   "add-target",
	Short: "Classify a target and stage it for the next submission",
	RunE:  runAddTarget,
}

func init() {
	addTargetCmd.Flags().StringVar(&addSkyCoord, "skycoord", "", "sky coordinate, e.g. 'ra: 10.684, dec: 41.269' or 'l: 121.2, b: -21.6'")
	addTargetCmd.Flags().StringVar(&addSolar, "solar-system", "", "solar system body, e.g. 'sun'")
	addTargetCmd.Flags().StringVar(&addAltAz, "altaz", "", "fixed pointing, e.g. 'alt: 45 az: 180'")
	addTargetCmd.Flags().StringVar(&addTarget, "target", "", "named target with coordinates, e.g. 'M31 ra:10.684, dec:41.269'")
	addTargetCmd.Flags().StringVar(&addPointing, "pointing", "", "pointing override")
	addTargetCmd.Flags().Float64Var(&addFreq, "center-freq", 1420.4, "centre frequency in MHz")
	addTargetCmd.Flags().Float64Var(&addBW, "bandwidth", 2.4, "bandwidth in MHz")
	addTargetCmd.Flags().Float64Var(&addRate, "sample-rate", 2.4, "sample rate in MHz")
	addTargetCmd.Flags().Float64Var(&addGain, "gain", 30, "receiver gain in dB")
	addTargetCmd.Flags().StringVar(&addFeed, "feed", "", "feed type")
	rootCmd.AddCommand(addTargetCmd)
}

func targetFieldsFromFlags() ([]assemble.Field, error) {
	var fields []assemble.Field
	if addSolar != "" {
		fields = append(fields, assemble.Field{Label: "Solar System", Value: addSolar})
	}
	if addAltAz != "" {
		fields = append(fields, assemble.Field{Label: "AltAz", Value: addAltAz})
	}
	if addSkyCoord != "" {
		fields = append(fields, assemble.Field{Label: "SkyCoord", Value: addSkyCoord})
	}
	if addTarget != "" {
		fields = append(fields, assemble.Field{Label: "Target", Value: addTarget})
	}
	if addPointing != "" {
		fields = append(fields, assemble.Field{Label: "Pointing", Value: addPointing})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("nothing to stage; pass --skycoord, --solar-system, --altaz or --target")
	}
	return fields, nil
}

func configFieldsFromFlags() []assemble.Field {
	fields := []assemble.Field{
		{Label: "Center Freq", Value: addFreq},
		{Label: "Bandwidth", Value: addBW},
		{Label: "Sample Rate", Value: addRate},
		{Label: "Gain", Value: addGain},
	}
	if addFeed != "" {
		fields = append(fields, assemble.Field{Label: "Feed", Value: addFeed})
	}
	return fields
}

func runAddTarget(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	targetFields, err := targetFieldsFromFlags()
	if err != nil {
		return err
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	tgt, ref, err := svc.Manager.AddTarget(cmd.Context(), dispatch.AddTarget{
		TargetFields: targetFields,
		ConfigFields: configFieldsFromFlags(),
	})
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(tgt, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	cmd.Printf("staged as row %s\n", ref)
	return nil
}
