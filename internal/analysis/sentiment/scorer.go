// Package sentiment implements the multi-signal sentiment scorer and the
// batch processor that annotates candidate news articles with it.
//
// A score blends the financial keyword lexicon with a rule-based polarity
// estimator (VADER); a statistics-based estimator (naive Bayes) runs alongside
// for diagnostics. All scoring functions are total: any unusable input yields
// the zero/neutral result, never an error.
package sentiment

import (
	"math"
	"regexp"
	"sort"
	"strings"

	nbayes "github.com/cdipaolo/sentiment"
	"github.com/jonreiter/govader"
	"github.com/sirupsen/logrus"

	"github.com/apexlabs/apexanalysis/pkg/models"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	urlPattern   = regexp.MustCompile(`https?://\S+|www\.\S+`)
	punctPattern = regexp.MustCompile(`[^\w\s]`)
)

// Analyzer scores arbitrary text for financial sentiment polarity.
// It is safe for concurrent use: scoring mutates no analyzer state, so
// identical inputs always produce identical results.
type Analyzer struct {
	vader     *govader.SentimentIntensityAnalyzer
	bayes     nbayes.Models
	bayesOK   bool
	minLength int
	log       *logrus.Logger
}

// NewAnalyzer creates a sentiment analyzer. minLength is the character floor
// below which text is scored as zero/neutral. The naive Bayes model is
// optional: if it cannot be restored the analyzer still works, with the
// diagnostic bayes score fixed at 0.
func NewAnalyzer(minLength int, log *logrus.Logger) *Analyzer {
	a := &Analyzer{
		vader:     govader.NewSentimentIntensityAnalyzer(),
		minLength: minLength,
		log:       log,
	}

	model, err := nbayes.Restore()
	if err != nil {
		log.Warnf("could not restore bayes sentiment model, diagnostic score disabled: %v", err)
	} else {
		a.bayes = model
		a.bayesOK = true
	}

	return a
}

// Analyze scores one text. Empty text or text below the minimum-length floor
// returns exactly the zero/neutral result (compound 0, confidence 0, no
// matched keywords).
func (a *Analyzer) Analyze(text string) models.SentimentResult {
	if len(strings.TrimSpace(text)) < a.minLength {
		return models.NeutralSentiment()
	}

	normalized := normalize(text)
	if normalized == "" {
		return models.NeutralSentiment()
	}

	// Word count over the stop-word-filtered copy; the lexicon and the
	// estimators scan the full normalized text.
	wordCount := meaningfulWordCount(normalized)

	keywordScore, matched := a.scanLexicon(normalized)
	vaderScore := a.vader.PolarityScores(normalized).Compound
	bayesScore := a.bayesPolarity(normalized)

	// Blend, capping keyword influence by the number of matched phrases.
	keywordWeight := math.Min(1.0, float64(len(matched))*0.2)
	baseScore := vaderScore * (1 - keywordWeight)
	adjusted := baseScore + keywordScore*0.1*keywordWeight
	compound := clamp(adjusted, -1.0, 1.0)

	// Confidence grows with text length and keyword hits, floored at 0.1.
	lengthConfidence := math.Min(1.0, float64(wordCount)/50.0)
	keywordConfidence := math.Min(1.0, float64(len(matched))*0.3)
	confidence := math.Max(0.1, (lengthConfidence+keywordConfidence)/2)

	return models.SentimentResult{
		Compound:   compound,
		Label:      models.LabelForScore(compound),
		Confidence: confidence,
		Keywords:   matched,
		VaderScore: vaderScore,
		BayesScore: bayesScore,
		WordCount:  wordCount,
	}
}

// scanLexicon accumulates the signed weights of every lexicon phrase found in
// the text and returns the matched phrases in sorted order.
func (a *Analyzer) scanLexicon(text string) (float64, []string) {
	hits := make(map[string]float64)
	for phrase, weight := range positivePhrases {
		if strings.Contains(text, phrase) {
			hits[phrase] = weight
		}
	}
	for phrase, weight := range negativePhrases {
		if strings.Contains(text, phrase) {
			hits[phrase] = weight
		}
	}

	matched := make([]string, 0, len(hits))
	for phrase := range hits {
		matched = append(matched, phrase)
	}
	sort.Strings(matched)

	// Sum in sorted order so repeated runs produce bit-identical scores.
	score := 0.0
	for _, phrase := range matched {
		score += hits[phrase]
	}
	return score, matched
}

// bayesPolarity maps the naive Bayes classification onto [-1, 1].
// The value is surfaced as a diagnostic only and is intentionally excluded
// from the compound blend.
func (a *Analyzer) bayesPolarity(text string) float64 {
	if !a.bayesOK {
		return 0
	}

	analysis := a.bayes.SentimentAnalysis(text, nbayes.English)
	if analysis == nil {
		return 0
	}

	if len(analysis.Words) > 0 {
		sum := 0.0
		for _, w := range analysis.Words {
			sum += 2*float64(w.Score) - 1
		}
		return clamp(sum/float64(len(analysis.Words)), -1.0, 1.0)
	}
	return 2*float64(analysis.Score) - 1
}

// normalize strips markup and URLs, replaces punctuation with spaces,
// collapses whitespace, and lowercases.
func normalize(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	text = punctPattern.ReplaceAllString(text, " ")
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// meaningfulWordCount counts tokens that are not stop words and are longer
// than two characters.
func meaningfulWordCount(normalized string) int {
	count := 0
	for _, w := range strings.Fields(normalized) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		count++
	}
	return count
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
