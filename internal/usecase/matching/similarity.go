package matching

import (
	"regexp"
	"strings"
)

var tokenSplitRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// stopTokens are packaging/marketing noise that would inflate token
// overlap between unrelated products.
var stopTokens = map[string]bool{
	"de": true, "del": true, "la": true, "el": true, "con": true,
	"para": true, "y": true, "x": true, "the": true, "and": true,
	"of": true, "pack": true, "unidades": true, "oferta": true,
}

func tokenize(name string) []string {
	parts := tokenSplitRe.Split(strings.ToLower(name), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || stopTokens[p] {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// nameSimilarity blends query-token coverage with symmetric Jaccard
// overlap. Coverage of the query dominates: if every token of the
// shorter offer title appears in the candidate, that is strong
// evidence even when the candidate carries extra descriptors.
func nameSimilarity(query, candidate string) float64 {
	queryTokens := tokenize(query)
	candidateTokens := tokenize(candidate)
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}

	querySet := toSet(queryTokens)
	candidateSet := toSet(candidateTokens)

	matched := 0
	for token := range querySet {
		if candidateSet[token] {
			matched++
		}
	}
	reverseMatched := 0
	for token := range candidateSet {
		if querySet[token] {
			reverseMatched++
		}
	}

	union := len(querySet) + len(candidateSet) - matched

	queryCoverage := float64(matched) / float64(len(querySet))
	candidateCoverage := float64(reverseMatched) / float64(len(candidateSet))
	jaccard := float64(matched) / float64(union)

	return queryCoverage*0.6 + candidateCoverage*0.2 + jaccard*0.2
}

// sizeRelTolerance is the relative difference under which two parsed
// sizes still count as the same package.
const sizeRelTolerance = 0.02

const (
	sizeFactorMatch    = 1.0
	sizeFactorUnknown  = 0.85
	sizeFactorMismatch = 0.4
)

// sizeFactor is multiplied into the name similarity. A hard size
// mismatch sharply reduces confidence even for near-identical names;
// a missing size on either side only dampens it.
func sizeFactor(aValue *float64, aUnit *string, bValue *float64, bUnit *string) float64 {
	if aValue == nil || bValue == nil || aUnit == nil || bUnit == nil {
		return sizeFactorUnknown
	}
	if *aUnit != *bUnit {
		return sizeFactorMismatch
	}
	larger := *aValue
	if *bValue > larger {
		larger = *bValue
	}
	if larger == 0 {
		return sizeFactorUnknown
	}
	diff := *aValue - *bValue
	if diff < 0 {
		diff = -diff
	}
	if diff/larger <= sizeRelTolerance {
		return sizeFactorMatch
	}
	return sizeFactorMismatch
}
