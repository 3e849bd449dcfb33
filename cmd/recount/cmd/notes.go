package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invkit/recount/internal/cmd/output"
	"github.com/invkit/recount/internal/notes"
)

var (
	notesFlagDB        string
	notesFlagSession   string
	notesFlagWarehouse string
	notesFlagItem      string
	notesFlagLot       string
	notesFlagLocation  string
	notesFlagStatus    string
	notesFlagAuthor    string
)

// notesCmd groups the reviewer-notes subcommands.
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage reviewer notes on review lines",
	Long: `Notes stores reviewer annotations per review line in a local SQLite
database, keyed by session, warehouse, item, lot, and location. Notes
persist across runs so a re-export keeps reviewer context.`,
}

var notesAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add or replace the note on a review line",
	Args:  cobra.ExactArgs(1),
	Example: `  recount notes add "recount scheduled" --session s-1 -w 50 --item itm-1 --location A01
  recount notes add "resolved by transfer" --session s-1 -w 50 --item itm-1 --lot L1 --location B02 --status resolved`,
	RunE: runNotesAdd,
}

var notesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List notes for a session",
	Example: `  recount notes list --session s-1`,
	RunE:    runNotesList,
}

var notesRemoveCmd = &cobra.Command{
	Use:     "remove",
	Short:   "Remove the note on a review line",
	Example: `  recount notes remove --session s-1 -w 50 --item itm-1 --location A01`,
	RunE:    runNotesRemove,
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesAddCmd, notesListCmd, notesRemoveCmd)

	notesCmd.PersistentFlags().StringVar(&notesFlagDB, "db", "", "Notes database path (default from config)")
	notesCmd.PersistentFlags().StringVar(&notesFlagSession, "session", "", "Session ID")
	notesCmd.PersistentFlags().StringVarP(&notesFlagWarehouse, "warehouse", "w", "", "Warehouse code")
	notesCmd.PersistentFlags().StringVar(&notesFlagItem, "item", "", "Item code")
	notesCmd.PersistentFlags().StringVar(&notesFlagLot, "lot", "", "Batch/lot (optional)")
	notesCmd.PersistentFlags().StringVar(&notesFlagLocation, "location", "", "Location code")

	notesAddCmd.Flags().StringVar(&notesFlagStatus, "status", "", "Review status, e.g. open or resolved")
	notesAddCmd.Flags().StringVar(&notesFlagAuthor, "author", "", "Reviewer name")

	_ = notesCmd.MarkPersistentFlagRequired("session")
}

func openNotes() (*notes.Store, error) {
	path := notesFlagDB
	if path == "" {
		path = cfg.NotesPath
	}
	return notes.Open(path)
}

func runNotesAdd(cmd *cobra.Command, args []string) error {
	store, err := openNotes()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Upsert(cmd.Context(), notes.Note{
		SessionID: notesFlagSession,
		Warehouse: notesFlagWarehouse,
		Item:      notesFlagItem,
		Lot:       notesFlagLot,
		Location:  notesFlagLocation,
		Status:    notesFlagStatus,
		Author:    notesFlagAuthor,
		Text:      args[0],
	})
}

func runNotesList(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	store, err := openNotes()
	if err != nil {
		return err
	}
	defer store.Close()

	found, err := store.Session(cmd.Context(), notesFlagSession)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Printf("No notes for session %s\n", notesFlagSession)
		return nil
	}
	return output.FormatAny(found, format)
}

func runNotesRemove(cmd *cobra.Command, _ []string) error {
	store, err := openNotes()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Delete(cmd.Context(), notesFlagSession,
		notesFlagWarehouse, notesFlagItem, notesFlagLot, notesFlagLocation)
}
