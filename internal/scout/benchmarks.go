package scout

import (
	"regexp"
	"sort"
)

// BenchmarkHit is a recognized benchmark mention in normalized text. Evidence
// is a short snippet around the match, kept for diagnostics only.
type BenchmarkHit struct {
	Name     string
	Weight   int
	Evidence string
}

type benchmarkEntry struct {
	name     string
	weight   int
	patterns []*regexp.Regexp
	// notFollowedBy rejects a candidate match when it matches right at the
	// candidate's end. Used for short names that collide with common phrases.
	notFollowedBy *regexp.Regexp
}

// benchmarkTable maps canonical benchmark names to detection patterns.
// Declaration order is stable and breaks ties between equal weights.
var benchmarkTable = []benchmarkEntry{
	// Code / SWE
	{name: "SWE-bench", weight: 45, patterns: compilePatterns(`\bswe[- ]bench\b`, `\bswebench\b`)},
	{name: "HumanEval", weight: 40, patterns: compilePatterns(`\bhuman[- ]?eval\b`)},
	{name: "MBPP", weight: 35, patterns: compilePatterns(`\bmbpp\b`)},
	{name: "Codeforces", weight: 35, patterns: compilePatterns(`\bcodeforces\b`)},
	{name: "LeetCode", weight: 25, patterns: compilePatterns(`\bleet ?code\b`)},
	{name: "APPS", weight: 25, patterns: compilePatterns(`\bapps\b( dataset)?`)},
	{name: "DS-1000", weight: 25, patterns: compilePatterns(`\bds[- ]?1000\b`)},
	{name: "EvalPlus", weight: 20, patterns: compilePatterns(`\bevalplus\b`, `\beval\+\b`)},
	{name: "LiveCodeBench", weight: 30, patterns: compilePatterns(`\blivecodebench\b`, `\blive code bench\b`)},
	{name: "CodeContests", weight: 25, patterns: compilePatterns(`\bcodecontests\b`, `\bcode contests\b`)},
	{name: "CruxEval", weight: 20, patterns: compilePatterns(`\bcruxeval\b`)},
	{name: "RepoBench", weight: 25, patterns: compilePatterns(`\brepobench\b`, `\brepo[- ]bench\b`)},
	{name: "CodeSearchNet", weight: 15, patterns: compilePatterns(`\bcodesearchnet\b`, `\bcode search net\b`)},

	// Agent / tool-use / general eval signals
	{name: "MMLU", weight: 15, patterns: compilePatterns(`\bmmlu\b`)},
	{name: "MMMU", weight: 15, patterns: compilePatterns(`\bmmmu\b`)},
	{name: "GSM8K", weight: 10, patterns: compilePatterns(`\bgsm8k\b`)},
	{name: "ARC", weight: 8, patterns: compilePatterns(`\barc\b`), notFollowedBy: regexp.MustCompile(`^[- ]?length`)},
	{name: "HellaSwag", weight: 8, patterns: compilePatterns(`\bhellaswag\b`)},
	{name: "TruthfulQA", weight: 8, patterns: compilePatterns(`\btruthfulqa\b`)},
	{name: "Big-Bench", weight: 8, patterns: compilePatterns(`\bbig[- ]bench\b`, `\bbbh\b`)},
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

const evidenceRadius = 30

// ExtractBenchmarks scans normalized text for known benchmark names. Each
// canonical name contributes at most one hit: its patterns are tried in
// declared order and the first match wins. The result is sorted by weight
// descending, ties keeping table declaration order.
func ExtractBenchmarks(text string) []BenchmarkHit {
	var hits []BenchmarkHit

	for _, entry := range benchmarkTable {
		loc := entry.find(text)
		if loc == nil {
			continue
		}

		hits = append(hits, BenchmarkHit{
			Name:     entry.name,
			Weight:   entry.weight,
			Evidence: evidence(text, loc[0], loc[1]),
		})
	}

	// Stable sort keeps declaration order for equal weights.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Weight > hits[j].Weight })

	return hits
}

// evidence returns the match plus up to evidenceRadius characters of
// surrounding context, measured in runes so multibyte text stays intact.
func evidence(text string, start, end int) string {
	before := []rune(text[:start])
	if len(before) > evidenceRadius {
		before = before[len(before)-evidenceRadius:]
	}
	after := []rune(text[end:])
	if len(after) > evidenceRadius {
		after = after[:evidenceRadius]
	}
	return string(before) + text[start:end] + string(after)
}

func (e *benchmarkEntry) find(text string) []int {
	for _, re := range e.patterns {
		if e.notFollowedBy == nil {
			if loc := re.FindStringIndex(text); loc != nil {
				return loc
			}
			continue
		}

		rest := text
		offset := 0
		for {
			loc := re.FindStringIndex(rest)
			if loc == nil {
				break
			}
			if !e.notFollowedBy.MatchString(rest[loc[1]:]) {
				return []int{offset + loc[0], offset + loc[1]}
			}
			rest = rest[loc[1]:]
			offset += loc[1]
		}
	}
	return nil
}
