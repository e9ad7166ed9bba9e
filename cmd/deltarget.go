package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbrederode/odt/app"
	"github.com/rbrederode/odt/config"
	"github.com/rbrederode/odt/core/dispatch"
	"github.com/rbrederode/odt/core/store"
)

var delRef string

var delTargetCmd = &cobra.Command{
	Use:   "delete-target",
	Short: "Clear a staged target row",
	RunE:  runDelTarget,
}

func init() {
	delTargetCmd.Flags().StringVar(&delRef, "ref", "", "row reference returned by add-target")
	_ = delTargetCmd.MarkFlagRequired("ref")
	rootCmd.AddCommand(delTargetCmd)
}

func runDelTarget(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.Manager.DeleteTarget(cmd.Context(), dispatch.DeleteTarget{Ref: store.RowRef(delRef)}); err != nil {
		return err
	}
	cmd.Printf("cleared row %s\n", delRef)
	return nil
}
