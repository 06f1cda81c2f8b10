package scout

const maxPitchBullets = 3

type stringSet map[string]struct{}

func newStringSet(items []string) stringSet {
	set := make(stringSet, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func (s stringSet) has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s stringSet) hasAny(items ...string) bool {
	for _, item := range items {
		if s.has(item) {
			return true
		}
	}
	return false
}

// Pitch picks a deterministic one-line narrative and up to three supporting
// bullets from a scored paper's tags and benchmark names. Bullet conditions
// are evaluated in a fixed priority order; the one-liner takes the first
// matching branch, falling back to a catch-all sentence.
func Pitch(tags, benchmarks []string) (string, []string) {
	tagSet := newStringSet(tags)
	benchSet := newStringSet(benchmarks)

	var bullets []string

	if benchSet.hasAny("SWE-bench", "RepoBench") {
		bullets = append(bullets, "Repo-level code editing and real-world patching signals match judged iterative submission attempts.")
	}
	if benchSet.hasAny("HumanEval", "MBPP", "EvalPlus") {
		bullets = append(bullets, "Strong code-generation evaluation focus; judged-submission data adds scale, languages and harder long-tail problems.")
	}
	if benchSet.hasAny("APPS", "Codeforces", "CodeContests") {
		bullets = append(bullets, "Competitive-programming / algorithmic evaluation overlaps directly with judged problem archives.")
	}
	if tagSet.has("verification") {
		bullets = append(bullets, "Correctness/verification angle; judge verdicts provide accepted vs failing traces and error modes.")
	}
	if tagSet.has("core_code") {
		bullets = append(bullets, "Execution/test/verdict signals; judged submissions carry structured feedback labels at scale.")
	}
	if tagSet.has("agents_tools") {
		bullets = append(bullets, "Agentic coding / tool use; judge feedback supports verifiable tool-loop training.")
	}

	if len(bullets) > maxPitchBullets {
		bullets = bullets[:maxPitchBullets]
	}

	var line string
	switch {
	case benchSet.hasAny("SWE-bench", "RepoBench"):
		line = "Large-scale judged submissions can complement repo-level coding evaluations (multi-language, verdict-labeled, iterative attempts)."
	case benchSet.hasAny("HumanEval", "MBPP", "EvalPlus"):
		line = "Judged-submission data can extend code-generation evaluation and training with thousands of algorithmic tasks and verdict-labeled attempts across languages."
	case benchSet.hasAny("APPS", "Codeforces", "CodeContests"):
		line = "Direct fit: competitive-programming style problems plus millions of submissions with judge verdicts and error modes."
	case tagSet.has("core_code") || tagSet.has("verification"):
		line = "Judged code submissions provide scalable, verifiable training and evaluation data with timestamps, languages and failure modes."
	default:
		line = "Potential fit: large-scale code+verdict data may complement the paper's evaluation or training pipeline."
	}

	return line, bullets
}
