package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rbrederode/odt/config"
	"github.com/rbrederode/odt/infra/catalog"
)

var (
	catalogMinDec float64
	catalogLimit  int
	catalogObject string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the SIMBAD catalogue",
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().Float64Var(&catalogMinDec, "min-dec", -40, "minimum declination in degrees")
	catalogCmd.Flags().IntVar(&catalogLimit, "limit", 20, "maximum rows")
	catalogCmd.Flags().StringVar(&catalogObject, "object", "", "resolve a single object instead of listing stars")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	client := catalog.New(cfg.Catalog)

	var rows [][]string
	if catalogObject != "" {
		rows = client.ResolveObject(cmd.Context(), catalogObject)
	} else {
		rows = client.BrightestStars(cmd.Context(), catalogMinDec, catalogLimit)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
