package main

import (
	"fmt"
	"os"

	"github.com/mytheresa/inventory-notes/app/export"
	"github.com/mytheresa/inventory-notes/models"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [note_id]",
		Short: "Write a note as an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			out, _ := cmd.Flags().GetString("output")
			noteKind := models.NoteKind(kind)
			if noteKind != models.InboundNote && noteKind != models.OutboundNote {
				return fmt.Errorf("unknown note kind %q", kind)
			}
			if out == "" {
				out = args[0] + ".xlsx"
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tables, closeStorage, err := openTables(cfg.Storage)
			if err != nil {
				return err
			}
			defer closeStorage()

			repo := models.NewNotesRepository(noteKind, tables.Notes(noteKind))
			note, err := repo.GetByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s note %s: %w", kind, args[0], err)
			}

			workbook, err := export.XLSXRenderer{}.Render(note)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, workbook, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d lines)\n", out, len(note.Products))
			return nil
		},
	}

	cmd.Flags().StringP("kind", "k", string(models.InboundNote), "note kind (inbound, outbound)")
	cmd.Flags().StringP("output", "o", "", "output file (default <note_id>.xlsx)")
	return cmd
}
