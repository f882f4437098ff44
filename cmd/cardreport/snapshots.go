package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lmartinez/cardreport/internal/cli"
	"github.com/lmartinez/cardreport/internal/storage"
)

func snapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List stored snapshot keys",
		RunE:  runSnapshots,
	}

	cmd.Flags().String("bank", "", "Filter by bank name")
	cmd.Flags().String("currency", "", "Filter by currency")

	_ = viper.BindPFlag("snapshots.bank", cmd.Flags().Lookup("bank"))
	_ = viper.BindPFlag("snapshots.currency", cmd.Flags().Lookup("currency"))

	return cmd
}

func runSnapshots(_ *cobra.Command, _ []string) error {
	store, err := storage.NewSnapshotStore(viper.GetString("data.dir"))
	if err != nil {
		return err
	}

	keys, err := store.List(viper.GetString("snapshots.bank"), viper.GetString("snapshots.currency"), 0)
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		slog.Info(cli.FormatWarning("No snapshots stored yet"))
		return nil
	}

	for _, key := range keys {
		slog.Info(cli.SubtleStyle.Render(key))
	}
	slog.Info(cli.FormatSuccess("Snapshots listed"), "count", len(keys))
	return nil
}
