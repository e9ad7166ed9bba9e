package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rbrederode/odt/app"
	"github.com/rbrederode/odt/config"
	"github.com/rbrederode/odt/core/dispatch"
)

var expireAsOf string

var expireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Run a retention pass over the scheduling-block ledger",
	RunE:  runExpire,
}

func init() {
	expireCmd.Flags().StringVar(&expireAsOf, "as-of", "", "reference time (RFC3339, defaults to now)")
	rootCmd.AddCommand(expireCmd)
}

func runExpire(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	var asOf time.Time
	if expireAsOf != "" {
		asOf, err = time.Parse(time.RFC3339, expireAsOf)
		if err != nil {
			return fmt.Errorf("parse as-of: %w", err)
		}
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	expired, remaining, err := svc.Manager.Expire(cmd.Context(), dispatch.ExpireBlocks{Now: asOf})
	if err != nil {
		return err
	}
	cmd.Printf("expired %d blocks, %d remain\n", expired, remaining)
	return nil
}
