package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"finance-tracker/api/logger"
	"finance-tracker/api/models"

	"go.uber.org/zap"
)

var fencedJSON = regexp.MustCompile("(?s)```json(.*?)```")

// candidates lists the texts to try, in order: the raw text, the content of the
// first ```json fence, and the text with every ```json and ``` marker removed.
func candidates(raw string) []string {
	out := []string{strings.TrimSpace(raw)}
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}
	if strings.Contains(raw, "```") {
		stripped := strings.ReplaceAll(raw, "```json", "")
		stripped = strings.ReplaceAll(stripped, "```", "")
		out = append(out, strings.TrimSpace(stripped))
	}
	return out
}

// ExtractJSON decodes the first candidate that is a JSON object matching T.
func ExtractJSON[T any](raw string) (T, bool) {
	for _, c := range candidates(raw) {
		if !strings.HasPrefix(c, "{") {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(c), &v); err == nil {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// NormalizeForecast never fails: unparseable text becomes the summary of an empty forecast.
func NormalizeForecast(raw string) models.Forecast {
	f, ok := ExtractJSON[models.Forecast](raw)
	if !ok {
		logger.Get().Warn("model returned no usable forecast JSON", zap.Int("length", len(raw)))
		return models.Forecast{Predictions: map[string]models.CategoryForecast{}, Summary: raw}
	}
	if f.Predictions == nil {
		f.Predictions = map[string]models.CategoryForecast{}
	}
	return f
}

// NormalizeRecommendations never fails: unparseable text becomes the summary of an empty list.
func NormalizeRecommendations(raw string) models.Recommendations {
	r, ok := ExtractJSON[models.Recommendations](raw)
	if !ok {
		logger.Get().Warn("model returned no usable recommendations JSON", zap.Int("length", len(raw)))
		return models.Recommendations{Recommendations: []models.Recommendation{}, Summary: raw}
	}
	if r.Recommendations == nil {
		r.Recommendations = []models.Recommendation{}
	}
	return r
}
