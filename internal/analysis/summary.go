// Package analysis computes statistics over the turns of a recorded solve.
package analysis

import (
	"sort"
	"strings"
)

// PauseThresholdMs is the gap after which a break between turns counts
// as a pause.
const PauseThresholdMs = 1500

// Turn is one recorded turn: its notation and the time since the solve
// started.
type Turn struct {
	Notation string
	TsMs     int64
}

// SolveSummary contains statistics for a single solve.
type SolveSummary struct {
	DurationMs         int64   `json:"duration_ms"`
	TotalTurns         int     `json:"total_turns"`
	Rotations          int     `json:"rotations"`
	Cancellations      int     `json:"cancellations"`
	TPSOverall         float64 `json:"tps_overall"`
	AvgTurnDurationMs  float64 `json:"avg_turn_duration_ms"`
	LongestPauseMs     int64   `json:"longest_pause_ms"`
	PauseCountOver1500 int     `json:"pause_count_over_1500ms"`
}

// Summarize computes the summary of a solve that lasted durationMs.
func Summarize(turns []Turn, durationMs int64) SolveSummary {
	profile := AnalyzeSideProfile(turns)
	return SolveSummary{
		DurationMs:         durationMs,
		TotalTurns:         len(turns),
		Rotations:          profile.SideCounts[wholeSide],
		Cancellations:      profile.Cancellations,
		TPSOverall:         CalculateTPS(turns, durationMs),
		AvgTurnDurationMs:  CalculateAvgTurnDuration(turns),
		LongestPauseMs:     FindLongestPause(turns),
		PauseCountOver1500: CountPausesOver(turns, PauseThresholdMs),
	}
}

// PauseInfo represents a pause during solving.
type PauseInfo struct {
	AfterTurnIndex int   `json:"after_turn_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// AnalyzePauses finds all significant pauses in a turn sequence.
func AnalyzePauses(turns []Turn, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo

	for i := 1; i < len(turns); i++ {
		gap := turns[i].TsMs - turns[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterTurnIndex: i - 1,
				DurationMs:     gap,
				TsMs:           turns[i-1].TsMs,
			})
		}
	}

	return pauses
}

// CalculateTPS calculates turns per second.
func CalculateTPS(turns []Turn, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(turns)) / (float64(durationMs) / 1000.0)
}

// CalculateAvgTurnDuration calculates the average time between turns.
func CalculateAvgTurnDuration(turns []Turn) float64 {
	if len(turns) < 2 {
		return 0
	}

	totalGap := turns[len(turns)-1].TsMs - turns[0].TsMs
	return float64(totalGap) / float64(len(turns)-1)
}

// FindLongestPause finds the longest gap between two turns.
func FindLongestPause(turns []Turn) int64 {
	var longest int64

	for i := 1; i < len(turns); i++ {
		gap := turns[i].TsMs - turns[i-1].TsMs
		if gap > longest {
			longest = gap
		}
	}

	return longest
}

// CountPausesOver counts pauses over a threshold.
func CountPausesOver(turns []Turn, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(turns); i++ {
		gap := turns[i].TsMs - turns[i-1].TsMs
		if gap > thresholdMs {
			count++
		}
	}
	return count
}

// wholeSide is the side name of whole-puzzle rotations.
const wholeSide = "*"

// SideProfile counts which sides were turned.
type SideProfile struct {
	SideCounts   map[string]int `json:"side_counts"`
	MostUsedSide string         `json:"most_used_side"`
	// Cancellations counts turns immediately undone by their inverse.
	Cancellations int `json:"cancellations"`
}

// AnalyzeSideProfile counts turns per selected side. Depth prefixes are
// folded into their side, and rotations count under "*".
func AnalyzeSideProfile(turns []Turn) *SideProfile {
	profile := &SideProfile{SideCounts: make(map[string]int)}

	for i, t := range turns {
		profile.SideCounts[side(t.Notation)]++
		if i > 0 && turns[i-1].Notation == inverse(t.Notation) {
			profile.Cancellations++
		}
	}

	sides := make([]string, 0, len(profile.SideCounts))
	for s := range profile.SideCounts {
		sides = append(sides, s)
	}
	sort.Strings(sides)
	maxCount := 0
	for _, s := range sides {
		if profile.SideCounts[s] > maxCount {
			maxCount = profile.SideCounts[s]
			profile.MostUsedSide = s
		}
	}

	return profile
}

// side returns the selector part of a notation with the depth removed:
// "R2:U>F" gives "R".
func side(notation string) string {
	sel, _, _ := strings.Cut(notation, ":")
	return strings.TrimRight(sel, "0123456789")
}

// inverse returns the notation of the opposite turn.
func inverse(notation string) string {
	if strings.HasSuffix(notation, "'") {
		return strings.TrimSuffix(notation, "'")
	}
	return notation + "'"
}
