package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/hypercube/internal/storage"
)

var (
	exportSolveID string
	exportFormat  string
	exportOutput  string
	exportLast    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export solve data",
	Long:  `Export recorded solve data in various formats.`,
}

var exportTurnsCmd = &cobra.Command{
	Use:   "turns",
	Short: "Export the turns of a solve",
	Long: `Export the turn sequence of a recorded solve in text or JSON format.

Examples:
  hypercube export turns --last
  hypercube export turns --id <solve_id> --format json
  hypercube export turns --id <solve_id> --format txt -o turns.txt`,
	Args: cobra.NoArgs,
	RunE: runExportTurns,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportTurnsCmd)
	exportTurnsCmd.Flags().StringVar(&exportSolveID, "id", "", "Solve ID to export")
	exportTurnsCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last solve")
	exportTurnsCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportTurnsCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExportTurns(cmd *cobra.Command, args []string) error {
	if exportSolveID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	solveID := exportSolveID
	if exportLast {
		solves, err := storage.NewSolveRepository(db).List(1)
		if err != nil {
			return fmt.Errorf("failed to get last solve: %w", err)
		}
		if len(solves) == 0 {
			return fmt.Errorf("no solves found")
		}
		solveID = solves[0].SolveID
	}

	output, count, err := exportTurns(db, solveID, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}
	return writeExport(cmd.OutOrStdout(), exportOutput, output, count)
}

// turnJSON is the JSON export shape of one turn.
type turnJSON struct {
	TurnIndex int    `json:"turn_index"`
	TsMs      int64  `json:"ts_ms"`
	Notation  string `json:"notation"`
	Whole     bool   `json:"whole"`
}

// exportTurns formats the turns of a solve and returns them with their
// count.
func exportTurns(db *storage.DB, solveID, format string) (string, int, error) {
	if _, err := storage.NewSolveRepository(db).Get(solveID); err != nil {
		if errors.Is(err, storage.ErrSolveNotFound) {
			return "", 0, fmt.Errorf("solve not found: %s", solveID)
		}
		return "", 0, err
	}

	turns, err := storage.NewTurnRepository(db).GetBySolve(solveID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to get turns: %w", err)
	}
	if len(turns) == 0 {
		return "", 0, fmt.Errorf("no turns found for solve %s", solveID)
	}

	switch strings.ToLower(format) {
	case "txt":
		notations := make([]string, 0, len(turns))
		for _, t := range turns {
			notations = append(notations, t.Notation)
		}
		return strings.Join(notations, " "), len(turns), nil

	case "json":
		out := make([]turnJSON, 0, len(turns))
		for _, t := range turns {
			out = append(out, turnJSON{
				TurnIndex: t.TurnIndex,
				TsMs:      t.TsMs,
				Notation:  t.Notation,
				Whole:     t.Whole,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", 0, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), len(turns), nil
	}
	return "", 0, fmt.Errorf("unknown format: %s (use txt or json)", format)
}

func writeExport(w io.Writer, path, output string, count int) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(w, "Exported %d turns to %s\n", count, path)
	return nil
}
