package nlp

import "strings"

// stem reduces a token to a root form with a small, fixed suffix rule
// set, applied to a fixpoint so that stem(stem(t)) == stem(t). The
// rules over-stem the way classic suffix strippers do; what matters for
// matching is that queries and documents collapse to the same root.
func stem(token string) string {
	for {
		next := stemOnce(token)
		if next == token {
			return token
		}
		token = next
	}
}

func stemOnce(token string) string {
	switch {
	case strings.HasSuffix(token, "sses"):
		// classes -> class
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		// studies -> study
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "ss"):
		return token
	case strings.HasSuffix(token, "s") && len(token) > 3:
		// skills -> skill
		return token[:len(token)-1]
	case strings.HasSuffix(token, "ing") && len(token) > 5:
		// engineering -> engineer
		return token[:len(token)-3]
	case strings.HasSuffix(token, "ed") && len(token) > 4:
		// advanced -> advanc
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ly") && len(token) > 4:
		return token[:len(token)-2]
	default:
		return token
	}
}
