package textmatch

// Match is the result of extracting the best candidate from a choice list.
type Match struct {
	Value string
	Score int
	Index int
}

// ExtractOne scores every choice against the query and returns the best one,
// provided its score reaches the cutoff. The boolean reports whether a
// qualifying match was found. Earlier choices win ties.
func ExtractOne(query string, choices []string, scorer Scorer, cutoff int) (Match, bool) {
	best := Match{Index: -1, Score: -1}
	for i, choice := range choices {
		score := scorer(query, choice)
		if score > best.Score {
			best = Match{Value: choice, Score: score, Index: i}
		}
	}
	if best.Index < 0 || best.Score < cutoff {
		return Match{Index: -1}, false
	}
	return best, true
}
