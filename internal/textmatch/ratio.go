package textmatch

import (
	"sort"
	"strings"
)

// Scorer computes a 0-100 similarity score for two strings.
type Scorer func(a, b string) int

// Ratio scores the plain edit-distance similarity of the normalized inputs.
func Ratio(a, b string) int {
	return ratioRaw(Normalize(a), Normalize(b))
}

// PartialRatio scores the best window of the longer input against the whole
// of the shorter one. Useful when one side carries extra decoration, e.g. a
// YouTube title wrapping the actual track name.
func PartialRatio(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	shorter, longer := []rune(na), []rune(nb)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}

	best := 0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		window := string(longer[start : start+len(shorter)])
		if score := ratioRaw(string(shorter), window); score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio scores the inputs after sorting their tokens, making the
// comparison insensitive to word order ("Cash Johnny" vs "Johnny Cash").
func TokenSortRatio(a, b string) int {
	return ratioRaw(sortedTokenString(a), sortedTokenString(b))
}

// TokenSetRatio compares the token intersection against each side's
// remainder and returns the best of the three pairings.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)

	var common, restA, restB []string
	for token := range ta {
		if _, ok := tb[token]; ok {
			common = append(common, token)
		} else {
			restA = append(restA, token)
		}
	}
	for token := range tb {
		if _, ok := ta[token]; !ok {
			restB = append(restB, token)
		}
	}
	sort.Strings(common)
	sort.Strings(restA)
	sort.Strings(restB)

	base := strings.Join(common, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(restA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(restB, " "))

	best := ratioRaw(base, withA)
	if score := ratioRaw(base, withB); score > best {
		best = score
	}
	if score := ratioRaw(withA, withB); score > best {
		best = score
	}
	return best
}

// QRatio is the quick composite scorer: a plain ratio over normalized input.
func QRatio(a, b string) int {
	return Ratio(a, b)
}

// WRatio is the weighted composite scorer. It takes the best of the full,
// token-sort, and token-set ratios, plus a down-weighted partial ratio when
// the inputs differ substantially in length.
func WRatio(a, b string) int {
	best := Ratio(a, b)
	if score := TokenSortRatio(a, b); score > best {
		best = score
	}
	if score := TokenSetRatio(a, b); score > best {
		best = score
	}

	la, lb := len(Normalize(a)), len(Normalize(b))
	if la == 0 || lb == 0 {
		return best
	}
	longer, shorter := la, lb
	if shorter > longer {
		longer, shorter = shorter, longer
	}
	if float64(longer)/float64(shorter) >= 1.5 {
		if score := PartialRatio(a, b) * 90 / 100; score > best {
			best = score
		}
	}
	return best
}

func sortedTokenString(s string) string {
	tokens := Tokens(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range Tokens(s) {
		set[token] = struct{}{}
	}
	return set
}

// ratioRaw computes (len(a)+len(b)-distance)/(len(a)+len(b)) scaled to 0-100
// over already-normalized strings.
func ratioRaw(a, b string) int {
	if a == b {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	dist := levenshtein(ra, rb)
	return (total - dist) * 100 / total
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
