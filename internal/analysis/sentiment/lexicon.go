package sentiment

// Financial sentiment lexicon: phrases with signed weights, matched by
// substring against normalized text. Weights above ±1.3 mark strong signals.
// Each phrase carries exactly one weight; ambiguous entries were resolved
// last-value-wins (e.g. "outperform" is 1.3).

// positivePhrases maps bullish phrases to positive weights.
var positivePhrases = map[string]float64{
	// Strong positive
	"breakout": 1.5, "surge": 1.5, "soar": 1.5, "rally": 1.5, "jump": 1.3,
	"outperform": 1.3, "upgrade": 1.4, "beat": 1.3, "growth": 1.2, "gain": 1.2,
	"positive": 1.2, "strong": 1.2, "increase": 1.1, "rise": 1.1, "higher": 1.1,
	// Moderate positive
	"improve": 1.0, "improving": 1.0, "progress": 1.0, "potential": 0.9,
	"opportunity": 0.9, "recovery": 0.9, "momentum": 0.9, "strengthen": 0.9,
	"bullish": 1.3, "optimistic": 1.1, "exceed": 1.2,
	"upside": 1.1, "profit": 1.1, "profitable": 1.1, "dividend": 0.8,
	"buy": 1.2, "strong buy": 1.5, "overweight": 1.2,
}

// negativePhrases maps bearish phrases to negative weights.
var negativePhrases = map[string]float64{
	// Strong negative
	"plunge": -1.5, "tumble": -1.5, "crash": -2.0, "collapse": -2.0, "plummet": -1.8,
	"downgrade": -1.4, "miss": -1.3, "loss": -1.3, "decline": -1.2, "drop": -1.2,
	"negative": -1.2, "weak": -1.1, "decrease": -1.1, "fall": -1.1, "lower": -1.1,
	// Moderate negative
	"concern": -0.9, "risk": -0.9, "volatile": -1.0, "uncertainty": -1.0,
	"pressure": -0.9, "slowdown": -1.1, "declining": -1.1, "bearish": -1.3,
	"pessimistic": -1.1, "underperform": -1.3, "sell": -1.5, "short": -1.2,
	"downturn": -1.2, "recession": -1.3, "bankrupt": -2.0, "default": -1.8,
	"overvalued": -1.1, "bubble": -1.4, "correction": -1.2, "volatility": -0.8,
}

// stopWords is the English stop word set used for the word-count and
// meaningfulness checks. The lexicon and estimators scan text before stop
// word removal, so this list only affects confidence, not polarity.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
		"your", "yours", "yourself", "yourselves", "he", "him", "his",
		"himself", "she", "her", "hers", "herself", "it", "its", "itself",
		"they", "them", "their", "theirs", "themselves", "what", "which",
		"who", "whom", "this", "that", "these", "those", "am", "is", "are",
		"was", "were", "be", "been", "being", "have", "has", "had", "having",
		"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
		"or", "because", "as", "until", "while", "of", "at", "by", "for",
		"with", "about", "against", "between", "into", "through", "during",
		"before", "after", "above", "below", "to", "from", "up", "down",
		"in", "out", "on", "off", "over", "under", "again", "further",
		"then", "once", "here", "there", "when", "where", "why", "how",
		"all", "any", "both", "each", "few", "more", "most", "other",
		"some", "such", "no", "nor", "not", "only", "own", "same", "so",
		"than", "too", "very", "can", "will", "just", "should", "now",
	} {
		stopWords[w] = struct{}{}
	}
}
