package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rbrederode/odt/config"
	"github.com/rbrederode/odt/core/astro"
	"github.com/rbrederode/odt/core/coords"
)

var (
	visRA   string
	visDec  string
	visDate string
)

var visibilityCmd = &cobra.Command{
	Use:   "visibility",
	Short: "Sweep a target's altitude over one day at the configured site",
	RunE:  runVisibility,
}

func init() {
	visibilityCmd.Flags().StringVar(&visRA, "ra", "", "right ascension, sexagesimal hours or decimal degrees")
	visibilityCmd.Flags().StringVar(&visDec, "dec", "", "declination, sexagesimal or decimal degrees")
	visibilityCmd.Flags().StringVar(&visDate, "date", "", "calendar day, YYYY-MM-DD (defaults to today)")
	_ = visibilityCmd.MarkFlagRequired("ra")
	_ = visibilityCmd.MarkFlagRequired("dec")
	rootCmd.AddCommand(visibilityCmd)
}

func runVisibility(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ra, err := coords.ParseRA(visRA)
	if err != nil {
		return fmt.Errorf("parse ra: %w", err)
	}
	dec, err := coords.ParseDec(visDec)
	if err != nil {
		return fmt.Errorf("parse dec: %w", err)
	}
	loc := cfg.Site.Location()
	day := time.Now().In(loc)
	if visDate != "" {
		day, err = time.ParseInLocation("2006-01-02", visDate, loc)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
	}

	sampler := astro.NewDaySampler(day, cfg.Site.LatitudeDeg, cfg.Site.LongitudeDeg, ra, dec)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tLST\tHA\tALT\tSUN")
	for {
		s, ok := sampler.Next()
		if !ok {
			break
		}
		fmt.Fprintf(w, "%s\t%7.2f\t%+7.2f\t%+6.2f\t%+6.2f\n",
			s.UTC.Format("15:04"), s.LSTDeg, s.HourAngleDeg, s.TargetAltDeg, s.SunAltDeg)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if t, ok := sampler.Sunrise(); ok {
		cmd.Printf("sunrise %s\n", t.UTC().Format("15:04"))
	}
	if t, ok := sampler.Sunset(); ok {
		cmd.Printf("sunset  %s\n", t.UTC().Format("15:04"))
	}
	return nil
}
