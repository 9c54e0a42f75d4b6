package analysis

import (
	"math"
	"testing"
)

func sampleTurns() []Turn {
	return []Turn{
		{Notation: "R:U>F", TsMs: 0},
		{Notation: "U:R>F", TsMs: 100},
		{Notation: "R:U>F", TsMs: 200},
		{Notation: "U:R>F", TsMs: 2000},
		{Notation: "R:U>F", TsMs: 2100},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTurns(), 2500)

	if s.TotalTurns != 5 {
		t.Errorf("TotalTurns = %d, want 5", s.TotalTurns)
	}
	if math.Abs(s.TPSOverall-2.0) > 1e-9 {
		t.Errorf("TPSOverall = %v, want 2", s.TPSOverall)
	}
	if math.Abs(s.AvgTurnDurationMs-525) > 1e-9 {
		t.Errorf("AvgTurnDurationMs = %v, want 525", s.AvgTurnDurationMs)
	}
	if s.LongestPauseMs != 1800 {
		t.Errorf("LongestPauseMs = %d, want 1800", s.LongestPauseMs)
	}
	if s.PauseCountOver1500 != 1 {
		t.Errorf("PauseCountOver1500 = %d, want 1", s.PauseCountOver1500)
	}
	if s.Rotations != 0 || s.Cancellations != 0 {
		t.Errorf("Rotations, Cancellations = %d, %d, want 0, 0", s.Rotations, s.Cancellations)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 0)
	if s.TotalTurns != 0 || s.TPSOverall != 0 || s.AvgTurnDurationMs != 0 || s.LongestPauseMs != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero statistics", s)
	}
}

func TestAnalyzePauses(t *testing.T) {
	pauses := AnalyzePauses(sampleTurns(), PauseThresholdMs)
	if len(pauses) != 1 {
		t.Fatalf("got %d pauses, want 1", len(pauses))
	}
	if pauses[0].AfterTurnIndex != 2 || pauses[0].DurationMs != 1800 || pauses[0].TsMs != 200 {
		t.Errorf("pause = %+v", pauses[0])
	}
}

func TestAnalyzeSideProfile(t *testing.T) {
	p := AnalyzeSideProfile(sampleTurns())
	if p.SideCounts["R"] != 3 || p.SideCounts["U"] != 2 {
		t.Errorf("SideCounts = %v", p.SideCounts)
	}
	if p.MostUsedSide != "R" {
		t.Errorf("MostUsedSide = %q, want R", p.MostUsedSide)
	}
}

func TestAnalyzeSideProfile_DepthRotationsAndCancellations(t *testing.T) {
	turns := []Turn{
		{Notation: "R2:U>F"},
		{Notation: "R2:U>F'"},
		{Notation: "*:U>F"},
		{Notation: "*:U>F'"},
	}
	p := AnalyzeSideProfile(turns)
	if p.SideCounts["R"] != 2 || p.SideCounts["*"] != 2 {
		t.Errorf("SideCounts = %v", p.SideCounts)
	}
	if p.Cancellations != 2 {
		t.Errorf("Cancellations = %d, want 2", p.Cancellations)
	}
	if s := Summarize(turns, 0); s.Rotations != 2 {
		t.Errorf("Rotations = %d, want 2", s.Rotations)
	}
}

func TestMineNGrams(t *testing.T) {
	report := MineNGrams(sampleTurns(), 2, 3, 5)

	pairs := report.TopNGrams[2]
	if len(pairs) != 2 {
		t.Fatalf("got %d 2-grams, want 2", len(pairs))
	}
	if pairs[0].String() != "R:U>F U:R>F" || pairs[0].Count != 2 {
		t.Errorf("top 2-gram = %q x%d", pairs[0].String(), pairs[0].Count)
	}
	if pairs[1].String() != "U:R>F R:U>F" || pairs[1].Count != 2 {
		t.Errorf("second 2-gram = %q x%d", pairs[1].String(), pairs[1].Count)
	}

	triples := report.TopNGrams[3]
	if len(triples) != 1 || triples[0].String() != "R:U>F U:R>F R:U>F" {
		t.Fatalf("3-grams = %v", triples)
	}
	occ := triples[0].Occurrences
	if len(occ) != 2 || occ[0].StartIndex != 0 || occ[1].StartIndex != 2 || occ[1].TsMs != 200 {
		t.Errorf("occurrences = %+v", occ)
	}
}

func TestMineNGrams_TopKAndShortInput(t *testing.T) {
	if r := MineNGrams(sampleTurns()[:1], 2, 4, 5); len(r.TopNGrams) != 0 {
		t.Errorf("short input gave %v", r.TopNGrams)
	}
	if r := MineNGrams(sampleTurns(), 2, 2, 1); len(r.TopNGrams[2]) != 1 {
		t.Errorf("topK=1 gave %d 2-grams", len(r.TopNGrams[2]))
	}
}

func TestRollingHash_MatchesDirectHash(t *testing.T) {
	tokens := []uint32{3, 1, 4, 1, 5, 9, 2, 6}
	rh := NewRollingHash(3)
	for i, tok := range tokens {
		rh.Roll(tok)
		if !rh.Ready() {
			continue
		}
		direct := NewRollingHash(3)
		for _, w := range tokens[i-2 : i+1] {
			direct.Roll(w)
		}
		if rh.Hash() != direct.Hash() {
			t.Errorf("hash at %d = %d, want %d", i, rh.Hash(), direct.Hash())
		}
	}
}
