package scout

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "collapses whitespace", input: "  Hello\t\n  World  ", expect: "hello world"},
		{name: "empty", input: "", expect: ""},
		{name: "only whitespace", input: " \n\t ", expect: ""},
		{name: "already normalized", input: "plain text", expect: "plain text"},
		{name: "unicode spaces collapse", input: "swe bench results", expect: "swe bench results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestScoreSWEBenchExample(t *testing.T) {
	t.Parallel()

	doc := Document{
		Title:    "SWE-bench: Evaluating Large Language Models on Real-World GitHub Issues",
		Abstract: "We evaluate models that produce a patch for each pull request and run the unit tests.",
	}

	result := Score(doc)

	// 45 (SWE-bench) + 35 (core_code) + 25 (repo_se) clamps to 100.
	if result.Score != 100 {
		t.Fatalf("expected score 100, got %d", result.Score)
	}

	wantTags := []string{"benchmarks", "core_code", "repo_se"}
	if !reflect.DeepEqual(result.Tags, wantTags) {
		t.Fatalf("expected tags %v, got %v", wantTags, result.Tags)
	}

	if len(result.Reasons) != 3 {
		t.Fatalf("expected 3 reasons, got %d", len(result.Reasons))
	}
	if !strings.Contains(result.Reasons[0], "SWE-bench") {
		t.Fatalf("first reason should cite SWE-bench, got %q", result.Reasons[0])
	}

	if !reflect.DeepEqual(result.Benchmarks, []string{"SWE-bench"}) {
		t.Fatalf("unexpected benchmarks: %v", result.Benchmarks)
	}
}

func TestScoreEmptyDocument(t *testing.T) {
	t.Parallel()

	result := Score(Document{})

	if result.Score != 0 {
		t.Fatalf("expected score 0, got %d", result.Score)
	}
	if len(result.Tags) != 0 {
		t.Fatalf("expected no tags, got %v", result.Tags)
	}
	if !reflect.DeepEqual(result.Reasons, []string{fallbackReason}) {
		t.Fatalf("expected only the fallback reason, got %v", result.Reasons)
	}
	if len(result.Benchmarks) != 0 {
		t.Fatalf("expected no benchmarks, got %v", result.Benchmarks)
	}
}

func TestScoreOffDomainGating(t *testing.T) {
	t.Parallel()

	result := Score(Document{
		Title:    "Deep learning for clinical ECG classification",
		Abstract: "A study of patient heart signals.",
	})

	if result.Score != 0 {
		t.Fatalf("expected score 0 after gate and clamp, got %d", result.Score)
	}

	found := false
	for _, tag := range result.Tags {
		if tag == "offdomain" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected offdomain tag, got %v", result.Tags)
	}

	if len(result.Reasons) != 2 {
		t.Fatalf("expected negative reason plus fallback, got %v", result.Reasons)
	}
	if result.Reasons[1] != fallbackReason {
		t.Fatalf("second reason should be the fallback, got %q", result.Reasons[1])
	}
}

func TestScoreGateCeiling(t *testing.T) {
	t.Parallel()

	// Marginal signals only: verification (+10) and agents (+8) with no
	// benchmark, core-code or repo/SE signal must stay under the ceiling.
	result := Score(Document{
		Title:    "Formal verification of agents",
		Abstract: "We study correctness of agents and tool use.",
	})

	if result.Score > gateCeiling {
		t.Fatalf("gated score must not exceed %d, got %d", gateCeiling, result.Score)
	}
	if result.Score == 0 {
		t.Fatalf("marginal signals should still contribute points, got 0")
	}
}

func TestScoreBenchmarkCap(t *testing.T) {
	t.Parallel()

	result := Score(Document{
		Title:    "A broad study",
		Abstract: "Results on SWE-bench, HumanEval, MBPP, Codeforces and LiveCodeBench.",
	})

	// Top-3 weights sum to 120; contribution is capped at 60.
	if result.Score != 60 {
		t.Fatalf("expected capped score 60, got %d", result.Score)
	}

	if len(result.Benchmarks) != 5 {
		t.Fatalf("all hit names should be listed, got %v", result.Benchmarks)
	}
	if result.Benchmarks[0] != "SWE-bench" {
		t.Fatalf("expected SWE-bench first, got %v", result.Benchmarks)
	}

	if !strings.Contains(result.Reasons[0], "SWE-bench, HumanEval, MBPP") {
		t.Fatalf("reason should cite the top-3 names, got %q", result.Reasons[0])
	}
}

func TestScorePenaltySoftening(t *testing.T) {
	t.Parallel()

	withCore := Score(Document{
		Abstract: "clinical ecg analysis using unit tests over source code",
	})
	withoutCore := Score(Document{
		Abstract: "clinical ecg analysis",
	})

	if withCore.Score <= withoutCore.Score {
		t.Fatalf("core signal must soften penalties: %d vs %d", withCore.Score, withoutCore.Score)
	}

	// 35 (core_code) - 12 (half of -25, truncated toward zero).
	if withCore.Score != 23 {
		t.Fatalf("expected softened score 23, got %d", withCore.Score)
	}
	if withoutCore.Score != 0 {
		t.Fatalf("expected full-penalty score 0, got %d", withoutCore.Score)
	}
}

func TestScoreIdempotent(t *testing.T) {
	t.Parallel()

	doc := Document{
		Title:    "Program repair with execution traces",
		Abstract: "We use SWE-bench и unit tests on GitHub repositories.",
	}

	first := Score(doc)
	second := Score(doc)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}

func TestScoreBounds(t *testing.T) {
	t.Parallel()

	docs := []Document{
		{},
		{Title: "\x00\x01\x02", Abstract: "\x7f"},
		{Title: "日本語のタイトル", Abstract: "コード生成の研究"},
		{Title: strings.Repeat("swe-bench github unit tests patch ", 50)},
		{Abstract: "clinical climate uav grasping manipulation"},
	}

	for _, doc := range docs {
		result := Score(doc)
		if result.Score < 0 || result.Score > 100 {
			t.Fatalf("score out of range for %+v: %d", doc, result.Score)
		}
		if len(result.Reasons) < 1 || len(result.Reasons) > 3 {
			t.Fatalf("reason count out of range: %v", result.Reasons)
		}
		if len(result.Tags) > 8 {
			t.Fatalf("too many tags: %v", result.Tags)
		}
		if len(result.Benchmarks) > 10 {
			t.Fatalf("too many benchmarks: %v", result.Benchmarks)
		}
	}
}
