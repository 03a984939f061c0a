package logic

import (
	"strings"

	"jrlgen/internal/domain"
)

// GroupPrefixThreshold is the shortest filename prefix two neighbouring
// matches must share to stay in the same shading group.
const GroupPrefixThreshold = 6

// QueryTerms splits a raw query on single spaces and lowercases each term.
// Consecutive spaces produce empty terms, and the empty query yields a single
// empty term; an empty term matches every path.
func QueryTerms(query string) []string {
	terms := strings.Split(query, " ")
	for i, term := range terms {
		terms[i] = strings.ToLower(term)
	}
	return terms
}

// Matches reports whether every term occurs in path, in order.
//
// The cursor starts at 0 over the lowercased path. Each term is searched from
// the cursor onward and, when found, the cursor moves to the start of that
// match rather than past it. Two terms may therefore match overlapping text.
func Matches(path string, terms []string) bool {
	lower := strings.ToLower(path)
	cursor := 0
	for _, term := range terms {
		idx := strings.Index(lower[cursor:], term)
		if idx == -1 {
			return false
		}
		cursor += idx
	}
	return true
}

// Filename returns the part of path after its last '/'
func Filename(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

// CommonPrefixLen counts the leading characters a and b have in common
func CommonPrefixLen(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return n
}

// Filter returns the entries of index matching query, in index order, each
// tagged with its shading group marker. It never returns nil.
func Filter(index []string, query string) domain.FilterResult {
	terms := QueryTerms(query)
	result := make(domain.FilterResult, 0)

	var prevFilename string
	even := false
	for _, path := range index {
		if !Matches(path, terms) {
			continue
		}

		filename := Filename(path)
		if len(result) > 0 && CommonPrefixLen(prevFilename, filename) < GroupPrefixThreshold {
			even = !even
		}
		prevFilename = filename

		result = append(result, domain.Entry{Path: path, Even: even})
	}
	return result
}
