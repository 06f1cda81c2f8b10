package scout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractBenchmarksOrdering(t *testing.T) {
	t.Parallel()

	text := Normalize("We evaluate on MBPP, Codeforces, HumanEval and SWE-bench.")
	hits := ExtractBenchmarks(text)

	if len(hits) != 4 {
		t.Fatalf("expected 4 hits, got %d", len(hits))
	}

	// Weight descending; MBPP and Codeforces tie at 35 and keep table order.
	want := []string{"SWE-bench", "HumanEval", "MBPP", "Codeforces"}
	for i, name := range want {
		if hits[i].Name != name {
			t.Fatalf("expected %s at position %d, got %s", name, i, hits[i].Name)
		}
	}
}

func TestExtractBenchmarksOneHitPerName(t *testing.T) {
	t.Parallel()

	// Both SWE-bench patterns match; only one hit may be produced.
	text := Normalize("swe-bench results on swebench splits")
	hits := ExtractBenchmarks(text)

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Name != "SWE-bench" || hits[0].Weight != 45 {
		t.Fatalf("unexpected hit: %+v", hits[0])
	}
}

func TestExtractBenchmarksEvidence(t *testing.T) {
	t.Parallel()

	text := Normalize("swe-bench at the very start of the text")
	hits := ExtractBenchmarks(text)

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if !strings.Contains(hits[0].Evidence, "swe-bench") {
		t.Fatalf("evidence should contain the match, got %q", hits[0].Evidence)
	}
	// Clipped at the text start, 30 chars after the match end.
	if len(hits[0].Evidence) > len("swe-bench")+30 {
		t.Fatalf("evidence not clipped: %q", hits[0].Evidence)
	}
}

func TestExtractBenchmarksEvidenceMultibyte(t *testing.T) {
	t.Parallel()

	// Context clipping counts characters, so multibyte runes near the
	// match must never be split mid-sequence.
	text := strings.Repeat("評", 40) + " swe-bench " + strings.Repeat("価", 40)
	hits := ExtractBenchmarks(text)

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	ev := hits[0].Evidence
	if !utf8.ValidString(ev) {
		t.Fatalf("evidence is not valid UTF-8: %q", ev)
	}
	if !strings.Contains(ev, "swe-bench") {
		t.Fatalf("evidence should contain the match, got %q", ev)
	}
	if got := utf8.RuneCountInString(ev); got > len("swe-bench")+2+60 {
		t.Fatalf("evidence not clipped to 30 chars per side, got %d runes: %q", got, ev)
	}
}

func TestExtractBenchmarksARCExclusion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		hit  bool
	}{
		{name: "arc length is not a benchmark", text: "we minimize the arc length of trajectories", hit: false},
		{name: "arc benchmark", text: "results on the arc benchmark", hit: true},
		{name: "arc length then arc benchmark", text: "arc length aside, we also report arc accuracy", hit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := ExtractBenchmarks(Normalize(tt.text))
			found := false
			for _, h := range hits {
				if h.Name == "ARC" {
					found = true
				}
			}
			if found != tt.hit {
				t.Fatalf("ARC hit = %v, want %v", found, tt.hit)
			}
		})
	}
}

func TestExtractBenchmarksEmpty(t *testing.T) {
	t.Parallel()

	if hits := ExtractBenchmarks(""); len(hits) != 0 {
		t.Fatalf("expected no hits for empty text, got %d", len(hits))
	}
	if hits := ExtractBenchmarks(Normalize("a paper about bird migration")); len(hits) != 0 {
		t.Fatalf("expected no hits, got %d", len(hits))
	}
}
