package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/hypercube/internal/keylog"
	"github.com/SeamusWaldron/hypercube/internal/session"
)

// ErrReplayMismatch is returned when a replay applies different turns
// than the ones logged.
var ErrReplayMismatch = errors.New("replay does not match the recording")

var (
	replayBoard bool
	replayBoxes bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [log-file]",
	Short: "Replay a key log",
	Long: `Feed a recorded key log through a new session and print the final state.

The session is rebuilt from the log header (shape, seed, keybinds), so
scrambles come out the same. The turns applied during the replay are
compared with the turns in the log.

If no log file is specified, lists available log files.

Usage:
  hypercube replay                         # List available logs
  hypercube replay <log-file>              # Replay a log
  hypercube replay --board <log-file>      # Also draw the final puzzle`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayBoard, "board", false, "Draw the final puzzle")
	replayCmd.Flags().BoolVar(&replayBoxes, "boxes", false, "Draw stickers as filled squares")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if len(args) == 0 {
		return listLogs(w, cfg.LogDir)
	}

	logPath := args[0]
	// Bare names are looked up in the log directory.
	if _, err := os.Stat(logPath); err != nil && !filepath.IsAbs(logPath) {
		logPath = filepath.Join(cfg.LogDir, logPath)
	}

	log, err := keylog.Load(logPath)
	if err != nil {
		return err
	}
	res, err := replayLog(log)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Replaying %s\n\n", filepath.Base(logPath))
	printReplay(w, log, res)
	if replayBoard {
		fmt.Fprintln(w)
		fmt.Fprint(w, newBoardRenderer(res.Session.Registry(), replayBoxes).Render(res.Session, false))
	}

	if res.Mismatch >= 0 {
		return ErrReplayMismatch
	}
	return nil
}

// replayResult is the outcome of a replay.
type replayResult struct {
	Session  *session.Session
	Keys     int
	Want     []string // turns in the log
	Got      []string // turns applied by the replay
	Mismatch int      // first differing turn, -1 if none
}

// replayLog presses every logged key on a session rebuilt from the header.
func replayLog(log *keylog.Log) (*replayResult, error) {
	s, err := session.FromHeader(log.Header)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild session: %w", err)
	}

	var buf bytes.Buffer
	rec, err := keylog.NewWriter(&buf, s.Header())
	if err != nil {
		return nil, err
	}
	s.SetKeyLog(rec)

	keys := log.Keys()
	s.PressAll(keys)
	if err := rec.Err(); err != nil {
		return nil, fmt.Errorf("failed to capture replayed turns: %w", err)
	}

	replayed, err := keylog.Read(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read replayed turns: %w", err)
	}

	res := &replayResult{
		Session: s,
		Keys:    len(keys),
		Want:    log.Turns(),
		Got:     replayed.Turns(),
	}
	res.Mismatch = firstMismatch(res.Want, res.Got)
	return res, nil
}

func firstMismatch(want, got []string) int {
	for i := 0; i < len(want) && i < len(got); i++ {
		if want[i] != got[i] {
			return i
		}
	}
	if len(want) != len(got) {
		return min(len(want), len(got))
	}
	return -1
}

func printReplay(w io.Writer, log *keylog.Log, res *replayResult) {
	h := log.Header
	p := res.Session.Puzzle()

	fmt.Fprintf(w, "Puzzle:    %d^%d (seed %d, %s, %s keys)\n", h.N, h.D, h.Seed, h.TurnSystem, h.AxisMode)
	fmt.Fprintf(w, "Recorded:  %s\n", h.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Keys:      %d\n", res.Keys)
	fmt.Fprintf(w, "Turns:     %d recorded, %d replayed\n", len(res.Want), len(res.Got))
	fmt.Fprintf(w, "Final:     %s\n", p.Debug())
	fmt.Fprintln(w)

	switch {
	case res.Mismatch < 0:
		fmt.Fprintln(w, color.GreenString("✓ replay matches the recording"))
	case res.Mismatch >= len(res.Want) || res.Mismatch >= len(res.Got):
		fmt.Fprintln(w, color.RedString("✗ turn counts differ after turn %d", res.Mismatch))
	default:
		fmt.Fprintln(w, color.RedString("✗ turn %d differs: recorded %s, replayed %s",
			res.Mismatch+1, res.Want[res.Mismatch], res.Got[res.Mismatch]))
	}
	if p.Solved() {
		fmt.Fprintln(w, color.GreenString("solved"))
	}
}

func listLogs(w io.Writer, logDir string) error {
	paths, err := doublestar.FilepathGlob(filepath.Join(logDir, "session_*.jsonl"))
	if err != nil {
		return fmt.Errorf("failed to list logs: %w", err)
	}
	if len(paths) == 0 {
		fmt.Fprintf(w, "No key logs found in %s\n", logDir)
		return nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))

	fmt.Fprintln(w, color.CyanString("Key logs in %s", logDir))
	for _, path := range paths {
		log, err := keylog.Load(path)
		if err != nil {
			fmt.Fprintf(w, "  %s  %s\n", filepath.Base(path), color.RedString("unreadable"))
			continue
		}
		fmt.Fprintf(w, "  %s  %d^%d  %d keys, %d turns\n",
			filepath.Base(path), log.Header.N, log.Header.D, len(log.Keys()), len(log.Turns()))
	}
	return nil
}
