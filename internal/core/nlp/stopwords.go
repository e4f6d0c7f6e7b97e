package nlp

// defaultStopwords is the built-in English stop-word set. Deployments
// extend it through the matcher config file; they cannot shrink it.
var defaultStopwords = []string{
	"a", "about", "above", "after", "among", "an", "and", "are", "as",
	"at", "be", "been", "before", "below", "between", "but", "by", "can",
	"could", "did", "do", "does", "during", "for", "from", "had", "has",
	"have", "i", "in", "into", "is", "it", "may", "might", "must", "my",
	"of", "on", "or", "should", "that", "the", "this", "through", "to",
	"up", "was", "were", "will", "with", "would", "you", "your",
}
