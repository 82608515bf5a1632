package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBatchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Inspect ingestion batches.",
	}
	cmd.AddCommand(newBatchesListCmd(), newBatchesShowCmd())
	return cmd
}

func newBatchesListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ingestion batches, most recent first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := buildConfig(true, false)
			if err != nil {
				return err
			}
			s, pool, err := connectStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			batches, err := s.ListBatches(ctx, limit, offset)
			if err != nil {
				return err
			}
			for _, b := range batches {
				fmt.Printf("%s\t%s\tgames=%d\t%s\n", b.BatchID, b.Label, b.GameCount, b.IngestedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}

func newBatchesShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <batch-id>",
		Short: "Show one batch's summary.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := buildConfig(true, false)
			if err != nil {
				return err
			}
			s, pool, err := connectStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			b, err := s.GetBatchSummary(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("batch_id=%s source=%s label=%s games=%d ingested_at=%s\n",
				b.BatchID, b.SourcePath, b.Label, b.GameCount, b.IngestedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
	return cmd
}
