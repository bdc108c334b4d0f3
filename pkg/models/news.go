package models

import "time"

// NewsArticle is one candidate article from a news feed. Content is empty
// until the article body has been fetched.
type NewsArticle struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Content     string    `json:"content,omitempty"`
}

// SentimentLabel is the categorical reading of a compound sentiment score.
type SentimentLabel string

// Sentiment labels, from most positive to most negative.
const (
	StronglyPositive SentimentLabel = "strongly_positive"
	Positive         SentimentLabel = "positive"
	Neutral          SentimentLabel = "neutral"
	Negative         SentimentLabel = "negative"
	StronglyNegative SentimentLabel = "strongly_negative"
)

// LabelForScore maps a compound score onto its categorical label. The
// thresholds are fixed: |score| >= 0.15 is strong, |score| >= 0.05 is mild,
// anything closer to zero is neutral.
func LabelForScore(compound float64) SentimentLabel {
	switch {
	case compound >= 0.15:
		return StronglyPositive
	case compound >= 0.05:
		return Positive
	case compound <= -0.15:
		return StronglyNegative
	case compound <= -0.05:
		return Negative
	default:
		return Neutral
	}
}

// SentimentResult is the full scoring output for one text.
//
// Compound is the blended score in [-1, 1]. VaderScore and BayesScore are the
// raw estimator outputs surfaced for diagnostics; only VaderScore participates
// in the blend.
type SentimentResult struct {
	Compound   float64        `json:"compound"`
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
	Keywords   []string       `json:"keywords,omitempty"` // matched lexicon phrases, sorted
	VaderScore float64        `json:"vader_score"`
	BayesScore float64        `json:"bayes_score"`
	WordCount  int            `json:"word_count"`
}

// NeutralSentiment is the defined result for unusable input: exactly zero
// scores, zero confidence, and no matched keywords.
func NeutralSentiment() SentimentResult {
	return SentimentResult{Label: Neutral}
}

// AnnotatedArticle is a news article with its sentiment annotation attached.
type AnnotatedArticle struct {
	NewsArticle
	Sentiment  SentimentResult `json:"sentiment"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}
