package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/syncconfig"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/common"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage local notes",
	Long: `Creates, edits, lists and deletes notes. Every mutation is recorded in
the change journal and reaches the server on the next sync pass.`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a new note",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE:  runNoteList,
}

var noteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note with its content",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteShow,
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteEdit,
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteRm,
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	var title string
	if len(args) > 0 {
		title = args[0]
	} else {
		var err error
		title, err = GetSimpleText(reader, "Title", out)
		if err != nil {
			return err
		}
	}
	if title == "" {
		return errors.New("title must not be empty")
	}

	content, err := GetMultiline(reader, "Content", out)
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	note := &models.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := app.Notes.Upsert(ctx, models.SnapshotOf(note)); err != nil {
		return err
	}
	if err := journalNoteChange(ctx, models.OperationCreate, note); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created note %s.\n", note.ID)
	return nil
}

func runNoteList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	list, err := app.Notes.List(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOut {
		return printNotesJSON(out, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No notes.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
	for _, n := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Title, formatMillis(n.UpdatedAt))
	}
	return w.Flush()
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	note, err := app.Notes.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("note %s not found", args[0])
		}
		return err
	}

	fmt.Fprintf(out, "%s\n\n%s\n", note.Title, note.Content)
	return nil
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	note, err := app.Notes.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("note %s not found", args[0])
		}
		return err
	}

	title, err := GetSimpleText(reader, fmt.Sprintf("Title [%s]", note.Title), out)
	if err != nil {
		return err
	}
	if title != "" {
		note.Title = title
	}

	content, err := GetMultiline(reader, "New content (leave empty to keep current)", out)
	if err != nil {
		return err
	}
	if content != "" {
		note.Content = content
	}

	note.UpdatedAt = time.Now().UnixMilli()

	if err := app.Notes.Upsert(ctx, models.SnapshotOf(note)); err != nil {
		return err
	}
	if err := journalNoteChange(ctx, models.OperationUpdate, note); err != nil {
		return err
	}

	fmt.Fprintf(out, "Updated note %s.\n", note.ID)
	return nil
}

func runNoteRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	note, err := app.Notes.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("note %s not found", args[0])
		}
		return err
	}

	note.UpdatedAt = time.Now().UnixMilli()

	if err := app.Notes.Remove(ctx, note.ID); err != nil {
		return err
	}
	if err := journalNoteChange(ctx, models.OperationDelete, note); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s.\n", note.ID)
	return nil
}

// journalNoteChange appends one journal row for a local note mutation. The
// row carries the full snapshot except on delete, where only the id travels.
func journalNoteChange(ctx context.Context, op models.Operation, note *models.Note) error {
	rec := models.ChangeRecord{
		EntityType: models.EntityTypeNote,
		EntityID:   note.ID,
		Operation:  op,
		Timestamp:  note.UpdatedAt,
	}
	if op != models.OperationDelete {
		data, err := models.SnapshotOf(note).Encode()
		if err != nil {
			return fmt.Errorf("failed to encode note snapshot[%s]: %w", note.ID, err)
		}
		rec.Data = data
	}

	userID, err := app.SyncConfig.Get(ctx, syncconfig.KeyUserID)
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	deviceID, err := app.Orchestrator.EnsureDeviceID(ctx)
	if err != nil {
		return err
	}

	return app.Journal.Append(ctx, rec, userID, deviceID)
}

func printNotesJSON(w io.Writer, list []models.Note) error {
	type noteRow struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		UpdatedAt int64  `json:"updatedAt"`
	}
	rows := make([]noteRow, 0, len(list))
	for _, n := range list {
		rows = append(rows, noteRow{ID: n.ID, Title: n.Title, UpdatedAt: n.UpdatedAt})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func init() {
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteShowCmd, noteEditCmd, noteRmCmd)
	rootCmd.AddCommand(noteCmd)
}
