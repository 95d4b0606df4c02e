package cmd

import (
	"context"
	"fmt"
	"io"

	"keepsake/db"
	"keepsake/models"
	"keepsake/sweet"

	"github.com/spf13/cobra"
)

var seedForce bool

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Manage sweet messages",
}

var messagesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store the built-in sweet messages",
	Long:  `Insert the built-in sweet messages as active rows. Skipped when the table already has rows, unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openDB(); err != nil {
			return err
		}
		return seedMessages(cmd.Context(), models.SweetMessageTable{DB: db.Instance}, seedForce, cmd.OutOrStdout())
	},
}

func seedMessages(ctx context.Context, table models.SweetMessageTable, force bool, out io.Writer) error {
	count, err := table.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 && !force {
		fmt.Fprintf(out, "%d messages stored already, nothing to do\n", count)
		return nil
	}
	// Oldest first, so the newest-first listing shows them in their usual order
	for i := len(sweet.DefaultPool) - 1; i >= 0; i-- {
		if _, err = table.Insert(ctx, sweet.DefaultPool[i]); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Added %d messages\n", len(sweet.DefaultPool))
	return nil
}

func init() {
	messagesSeedCmd.Flags().BoolVar(&seedForce, "force", false, "insert even when messages exist")
	messagesCmd.AddCommand(messagesSeedCmd)
	rootCmd.AddCommand(messagesCmd)
}
