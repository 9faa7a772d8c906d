package models

// AnalysisResult is the structured output of the analysis action. The JSON
// tags double as the field names the model is instructed to emit.
type AnalysisResult struct {
	Score           string   `json:"score"` // "X/100"
	MatchPercentage float64  `json:"matchPercentage"`
	Summary         string   `json:"summary"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	Feedback        []string `json:"feedback"`
}

type CoverLetterResult struct {
	CoverLetter string `json:"coverLetter"`
}

// OptimizationResult carries a complete markdown document with any
// surrounding code fences already stripped.
type OptimizationResult struct {
	OptimizedResume string `json:"optimizedResume"`
}
