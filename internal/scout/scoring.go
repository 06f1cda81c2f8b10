package scout

import (
	"fmt"
	"regexp"
	"strings"
)

// Document is the only input the scorer reads. Callers carrying richer paper
// records pass the title and abstract through and merge the result back.
type Document struct {
	Title    string
	Abstract string
}

// FitResult is the scorer's whole output contract. It is never mutated after
// Score returns it.
type FitResult struct {
	Score      int
	Tags       []string
	Reasons    []string
	Benchmarks []string
}

const (
	maxTags       = 8
	maxReasons    = 3
	maxBenchmarks = 10

	// Benchmark points are summed over the top-3 hits only and capped.
	benchmarkPointsCap = 60

	// Ceiling applied when no benchmark, core-code or repo/SE signal fired.
	gateCeiling = 20

	fallbackReason = "Low direct relevance signals found; needs manual review."
)

type ruleGroup struct {
	tag    string
	points int
	reason string
	// core marks the code/execution/verdict oriented group whose presence
	// halves off-domain penalties.
	core bool
	// gate marks groups that lift the low-relevance score ceiling.
	gate     bool
	patterns []*regexp.Regexp
}

func (g *ruleGroup) matches(text string) bool {
	for _, re := range g.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// positiveRules fire at most once each, in declared order.
var positiveRules = []ruleGroup{
	{
		tag:    "core_code",
		points: 35,
		reason: "Contains code/execution/test/verdict-like signals (compile/runtime/tests/errors).",
		core:   true,
		gate:   true,
		patterns: compilePatterns(
			`\bprogram synthesis\b`,
			`\bcode generation\b`,
			`\bcode repair\b`,
			`\bprogram repair\b`,
			`\bbug[- ]fix(ing)?\b`,
			`\bpatch\b`,
			`\bdiff\b`,
			`\bsource code\b`,
			`\bcompiler\b`,
			`\bcompile(r|d|s)?\b`,
			`\bruntime\b`,
			`\bexecution trace(s)?\b`,
			`\bunit test(s)?\b`,
			`\btest case(s)?\b`,
			`\bfailing test(s)?\b`,
			`\bwrong answer\b`,
			`\bruntime error\b`,
			`\btime limit\b`,
			`\bmemory limit\b`,
			`\bonline judge\b`,
			`\bcompetitive programming\b`,
		),
	},
	{
		tag:    "repo_se",
		points: 25,
		reason: "Mentions repository/PR/CI/tests signals (similar to repo-level coding tasks).",
		gate:   true,
		patterns: compilePatterns(
			`\bgit(hub)?\b`,
			`\brepository\b`,
			`\brepo[- ]level\b`,
			`\bpull request(s)?\b`,
			`\bissue(s)?\b`,
			`\bcommit(s)?\b`,
			`\bci\b`,
			`\bcontinuous integration\b`,
			`\bbuild\b`,
			`\btest suite\b`,
			`\bregression\b`,
			`\bstatic analysis\b`,
			`\blint(ing)?\b`,
		),
	},
	{
		tag:    "verification",
		points: 10,
		patterns: compilePatterns(
			`\bverification\b`,
			`\bformal\b`,
			`\bcorrectness\b`,
			`\btype system\b`,
			`\bsoundness\b`,
		),
	},
	{
		tag:    "agents_tools",
		points: 8,
		patterns: compilePatterns(
			`\btool use\b`,
			`\bfunction calling\b`,
			`\bagents?\b`,
			`\bweb browsing\b`,
			`\bcode interpreter\b`,
		),
	},
	{
		tag:    "multilang",
		points: 5,
		patterns: compilePatterns(
			`\bpython\b|\bc\+\+\b|\bjava\b|\brust\b|\bgo\b|\bjavascript\b|\bc#\b`,
		),
	},
}

// negativeRules always fire independently of positives, but the effective
// penalty is halved (integer division, toward zero) when a core group fired.
var negativeRules = []ruleGroup{
	{
		tag:    "offdomain",
		points: -25,
		reason: "Strong clinical/physiological or climate focus with low code relevance.",
		patterns: compilePatterns(
			`\becg\b`,
			`\beeg\b`,
			`\bppg\b`,
			`\bclinical\b`,
			`\bclimate\b`,
			`\bprecipitation\b`,
		),
	},
	{
		tag:    "offdomain",
		points: -15,
		reason: "Robotics/UAV focus with low code relevance.",
		patterns: compilePatterns(
			`\buav\b`,
			`\bairspace\b`,
			`\bpreflight\b`,
			`\bgrasp(ing)?\b`,
			`\bmanipulation\b`,
		),
	},
}

// Score rates how well a document matches the code + judged-submission
// domain. It is a pure function: identical documents always produce an
// identical FitResult, and no input ever fails.
func Score(doc Document) FitResult {
	text := Normalize(doc.Title + " " + doc.Abstract)

	hits := ExtractBenchmarks(text)

	score := 0
	var tags, reasons, negativeReasons []string

	// Benchmarks dominate when present. Only the top-3 hits contribute
	// points, regardless of how many names matched.
	if len(hits) > 0 {
		top := hits
		if len(top) > 3 {
			top = top[:3]
		}

		points := 0
		names := make([]string, 0, len(top))
		for _, h := range top {
			points += h.Weight
			names = append(names, h.Name)
		}
		score += min(benchmarkPointsCap, points)

		tags = appendTag(tags, "benchmarks")
		reasons = append(reasons, fmt.Sprintf("Mentions benchmarks: %s.", strings.Join(names, ", ")))
	}

	coreSignal := false
	gateSignal := len(hits) > 0

	for i := range positiveRules {
		group := &positiveRules[i]
		if !group.matches(text) {
			continue
		}

		score += group.points
		tags = appendTag(tags, group.tag)
		if group.reason != "" {
			reasons = append(reasons, group.reason)
		}
		if group.core {
			coreSignal = true
		}
		if group.gate {
			gateSignal = true
		}
	}

	for i := range negativeRules {
		group := &negativeRules[i]
		if !group.matches(text) {
			continue
		}

		penalty := group.points
		if coreSignal {
			penalty /= 2
		}
		score += penalty

		tags = appendTag(tags, group.tag)
		if group.reason != "" {
			negativeReasons = append(negativeReasons, group.reason)
		}
	}

	if !gateSignal {
		score = min(score, gateCeiling)
	}
	score = max(0, min(100, score))

	names := make([]string, 0, min(len(hits), maxBenchmarks))
	for _, h := range hits {
		if len(names) == maxBenchmarks {
			break
		}
		names = append(names, h.Name)
	}

	return FitResult{
		Score:      score,
		Tags:       truncate(tags, maxTags),
		Reasons:    selectReasons(reasons, negativeReasons),
		Benchmarks: names,
	}
}

// selectReasons keeps up to three positive reasons in firing order, skipping
// exact duplicates. When nothing positive fired, the first negative reason
// (if any) precedes the fixed fallback sentence.
func selectReasons(positive, negative []string) []string {
	var out []string
	for _, r := range positive {
		if len(out) == maxReasons {
			break
		}
		if contains(out, r) {
			continue
		}
		out = append(out, r)
	}

	if len(out) > 0 {
		return out
	}

	if len(negative) > 0 {
		return []string{negative[0], fallbackReason}
	}
	return []string{fallbackReason}
}

func appendTag(tags []string, tag string) []string {
	if contains(tags, tag) {
		return tags
	}
	return append(tags, tag)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func truncate(list []string, limit int) []string {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
