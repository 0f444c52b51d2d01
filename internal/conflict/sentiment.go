package conflict

import "github.com/karaleary/civimap/internal/normalize"

// Sentiment is the three-way direction of a priority statement.
type Sentiment string

const (
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

var negativeWords = map[string]bool{
	"against": true, "stop": true, "ban": true, "oppose": true,
	"prevent": true, "end": true, "eliminate": true, "reduce": true,
	"lower": true, "cut": true,
}

var positiveWords = map[string]bool{
	"support": true, "promote": true, "increase": true, "improve": true,
	"enhance": true, "raise": true, "expand": true, "invest": true,
	"protect": true, "fund": true,
}

// ClassifySentiment buckets text by counting direction words. Ties and
// absence of direction words are neutral.
func ClassifySentiment(text string) Sentiment {
	var pos, neg int
	for _, tok := range normalize.Tokens(text) {
		if positiveWords[tok] {
			pos++
		}
		if negativeWords[tok] {
			neg++
		}
	}
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
