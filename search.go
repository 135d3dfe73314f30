package pressroom

import (
	"sort"
	"strings"
	"unicode"
)

// similarityThreshold is the minimum trigram similarity for a search hit.
const similarityThreshold = 0.1

// trigrams extracts the trigram set of s. Words are lowercased and padded
// with two leading and one trailing space, matching PostgreSQL's pg_trgm,
// so short queries still produce boundary trigrams.
func trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range splitWords(s) {
		padded := "  " + word + " "
		for i := 0; i+3 <= len(padded); i++ {
			set[padded[i:i+3]] = struct{}{}
		}
	}
	return set
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Similarity returns the trigram similarity of two strings in [0, 1]:
// the size of the shared trigram set over the size of the combined set.
func Similarity(a, b string) float64 {
	ta, tb := trigrams(a), trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// SearchByTitle ranks posts by trigram similarity of their title against
// query, keeps those above the threshold, and orders them by similarity
// descending with newer posts first on ties.
func SearchByTitle(posts []Post, query string) []Post {
	type scored struct {
		post Post
		sim  float64
	}
	var hits []scored
	for _, p := range posts {
		if sim := Similarity(p.Title, query); sim > similarityThreshold {
			hits = append(hits, scored{post: p, sim: sim})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].sim != hits[j].sim {
			return hits[i].sim > hits[j].sim
		}
		return hits[i].post.Publish.After(hits[j].post.Publish)
	})
	results := make([]Post, len(hits))
	for i, h := range hits {
		results[i] = h.post
	}
	return results
}
