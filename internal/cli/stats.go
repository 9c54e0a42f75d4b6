package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/hypercube/internal/analysis"
	"github.com/SeamusWaldron/hypercube/internal/storage"
)

var (
	statsLimit int
	showLast   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded solves",
	Long: `Display a summary per puzzle shape and the most recent solve records.

A solve record starts when the puzzle is scrambled and ends when it is
solved, reset or scrambled again.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a solve",
	Long: `Display detailed information about a recorded solve including:
- Solve metadata (shape, duration, turns, TPS)
- Pauses, rotations and turns undone right away
- Repeated turn sequences

Use --last to show the most recent solve.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatsShow,
}

var statsDeleteCmd = &cobra.Command{
	Use:   "delete <solve-id>",
	Short: "Delete a solve and its turns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()
		return deleteSolve(cmd.OutOrStdout(), db, args[0])
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsLimit, "limit", 20, "Maximum number of solves to display")

	statsCmd.AddCommand(statsShowCmd)
	statsShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solve")

	statsCmd.AddCommand(statsDeleteCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	return printStats(cmd.OutOrStdout(), db, statsLimit)
}

// openDB opens the database named by the config file or --db.
func openDB(cmd *cobra.Command) (*storage.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func printStats(w io.Writer, db *storage.DB, limit int) error {
	solveRepo := storage.NewSolveRepository(db)
	turnRepo := storage.NewTurnRepository(db)

	summaries, err := solveRepo.Summaries()
	if err != nil {
		return fmt.Errorf("failed to summarize solves: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No solves recorded yet")
		fmt.Fprintln(w, "Scramble a puzzle with ===== to start one")
		return nil
	}

	fmt.Fprintln(w, color.CyanString("Puzzles"))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%-8s  %-8s  %-6s  %-10s  %s\n", "Shape", "Attempts", "Solved", "Best turns", "Best time")
	for _, s := range summaries {
		best := "-"
		if s.BestTurns != nil {
			best = fmt.Sprint(*s.BestTurns)
		}
		bestTime := "-"
		if s.BestMs != nil {
			bestTime = formatDuration(time.Duration(*s.BestMs) * time.Millisecond)
		}
		fmt.Fprintf(w, "%-8s  %-8d  %-6d  %-10s  %s\n",
			fmt.Sprintf("%d^%d", s.N, s.D),
			s.Attempts,
			s.Solved,
			best,
			bestTime,
		)
	}
	fmt.Fprintln(w)

	solves, err := solveRepo.List(limit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	fmt.Fprintln(w, color.CyanString("Recent solves (showing %d)", len(solves)))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%-36s  %-19s  %-6s  %-10s  %-6s  %s\n", "ID", "Started", "Shape", "Duration", "Turns", "Result")
	for _, s := range solves {
		duration := "-"
		if s.DurationMs != nil {
			duration = formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
		}
		var turns string
		if s.TurnCount != nil {
			turns = fmt.Sprint(*s.TurnCount)
		} else {
			n, err := turnRepo.Count(s.SolveID)
			if err != nil {
				return err
			}
			turns = fmt.Sprintf("%d+", n)
		}

		fmt.Fprintf(w, "%-36s  %-19s  %-6s  %-10s  %-6s  %s\n",
			s.SolveID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d^%d", s.N, s.D),
			duration,
			turns,
			solveResult(s),
		)
	}
	return nil
}

func runStatsShow(cmd *cobra.Command, args []string) error {
	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	var solveID string
	switch {
	case showLast:
		solves, err := storage.NewSolveRepository(db).List(1)
		if err != nil {
			return fmt.Errorf("failed to get latest solve: %w", err)
		}
		if len(solves) == 0 {
			return fmt.Errorf("no solves found")
		}
		solveID = solves[0].SolveID
	case len(args) > 0:
		solveID = args[0]
	default:
		return fmt.Errorf("please provide a solve ID or use --last")
	}

	return printSolve(cmd.OutOrStdout(), db, solveID)
}

func printSolve(w io.Writer, db *storage.DB, solveID string) error {
	solve, err := storage.NewSolveRepository(db).Get(solveID)
	if err != nil {
		return err
	}
	records, err := storage.NewTurnRepository(db).GetBySolve(solveID)
	if err != nil {
		return fmt.Errorf("failed to get turns: %w", err)
	}

	turns := make([]analysis.Turn, len(records))
	for i, r := range records {
		turns[i] = analysis.Turn{Notation: r.Notation, TsMs: r.TsMs}
	}
	var durationMs int64
	if solve.DurationMs != nil {
		durationMs = *solve.DurationMs
	}
	summary := analysis.Summarize(turns, durationMs)

	fmt.Fprintln(w, color.CyanString("Solve Details"))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "ID:       %s\n", solve.SolveID)
	fmt.Fprintf(w, "Puzzle:   %d^%d (seed %d, %d scramble turns)\n", solve.N, solve.D, solve.Seed, solve.ScrambleTurns)
	fmt.Fprintf(w, "Started:  %s\n", solve.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if solve.EndedAt != nil {
		fmt.Fprintf(w, "Ended:    %s\n", solve.EndedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(w, "Result:   %s\n", solveResult(*solve))
	fmt.Fprintln(w)

	fmt.Fprintln(w, color.CyanString("Statistics"))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	if solve.DurationMs != nil {
		fmt.Fprintf(w, "Duration:       %s\n", formatDuration(time.Duration(durationMs)*time.Millisecond))
		fmt.Fprintf(w, "TPS:            %.2f\n", summary.TPSOverall)
	}
	fmt.Fprintf(w, "Turns:          %d (%d rotations)\n", summary.TotalTurns, summary.Rotations)
	fmt.Fprintf(w, "Undone at once: %d\n", summary.Cancellations)
	fmt.Fprintf(w, "Avg turn gap:   %.0fms\n", summary.AvgTurnDurationMs)
	fmt.Fprintf(w, "Longest pause:  %s\n", formatDuration(time.Duration(summary.LongestPauseMs)*time.Millisecond))
	fmt.Fprintf(w, "Pauses > %.1fs: %d\n", float64(analysis.PauseThresholdMs)/1000, summary.PauseCountOver1500)

	report := analysis.MineNGrams(turns, 2, 6, 3)
	if len(report.TopNGrams) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, color.CyanString("Repeated sequences"))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for n := 6; n >= 2; n-- {
		for _, g := range report.TopNGrams[n] {
			fmt.Fprintf(w, "%2d turns  x%-3d  %s\n", n, g.Count, g)
		}
	}
	return nil
}

func deleteSolve(w io.Writer, db *storage.DB, solveID string) error {
	repo := storage.NewSolveRepository(db)
	if _, err := repo.Get(solveID); err != nil {
		return err
	}
	if err := repo.Delete(solveID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted solve %s\n", solveID)
	return nil
}

func solveResult(s storage.Solve) string {
	switch {
	case s.EndedAt == nil:
		return color.YellowString("in progress")
	case s.Solved:
		return color.GreenString("✓ solved")
	}
	return color.RedString("✗ abandoned")
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
