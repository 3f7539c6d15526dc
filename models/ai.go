package models

type CategoryForecast struct {
	Predicted float64 `json:"predicted"`
	Budget    float64 `json:"budget"`
}

type Forecast struct {
	Predictions map[string]CategoryForecast `json:"predictions"`
	Summary     string                      `json:"summary"`
}

type Recommendation struct {
	Category string `json:"category"`
	Advice   string `json:"advice"`
}

type Recommendations struct {
	Recommendations []Recommendation `json:"recommendations"`
	Summary         string           `json:"summary"`
}

type Insights struct {
	Insights string `json:"insights"`
}

type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
