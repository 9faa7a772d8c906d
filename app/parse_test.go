package app

import (
	"strings"
	"testing"
)

const validAnalysisJSON = `{
	"score": "82/100",
	"matchPercentage": 82,
	"summary": "Strong backend match, light on cloud experience.",
	"matchedKeywords": ["Go", "PostgreSQL"],
	"missingKeywords": ["Kubernetes"],
	"feedback": ["Quantify the migration project impact."]
}`

func TestParseAnalysisPlainJSON(t *testing.T) {
	result, err := ParseAnalysis(validAnalysisJSON)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if result.Score != "82/100" || result.MatchPercentage != 82 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.MatchedKeywords) != 2 || result.MatchedKeywords[0] != "Go" {
		t.Fatalf("unexpected matched keywords: %v", result.MatchedKeywords)
	}
}

func TestParseAnalysisJSONWrappedInProse(t *testing.T) {
	raw := "Sure! Here is the analysis you asked for:\n" + validAnalysisJSON + "\nLet me know if you need anything else."
	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if result.Score != "82/100" {
		t.Fatalf("unexpected score: %q", result.Score)
	}
}

func TestParseAnalysisFencedJSON(t *testing.T) {
	raw := "```json\n" + validAnalysisJSON + "\n```"
	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if result.Summary == "" {
		t.Fatalf("expected summary to survive fence stripping")
	}
}

func TestParseAnalysisMissingScore(t *testing.T) {
	raw := `{"matchPercentage": 50, "summary": "ok"}`
	if _, err := ParseAnalysis(raw); err == nil {
		t.Fatalf("expected error for missing score")
	}
}

func TestParseAnalysisPercentageOutOfRange(t *testing.T) {
	raw := `{"score": "120/100", "matchPercentage": 120, "summary": "ok"}`
	if _, err := ParseAnalysis(raw); err == nil {
		t.Fatalf("expected error for out-of-range percentage")
	}
}

func TestParseAnalysisNoJSONObject(t *testing.T) {
	if _, err := ParseAnalysis("the model rambled with no structure"); err == nil {
		t.Fatalf("expected error when no JSON object is present")
	}
}

func TestParseAnalysisNormalizesNilLists(t *testing.T) {
	raw := `{"score": "70/100", "matchPercentage": 70, "summary": "fine"}`
	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if result.MatchedKeywords == nil || result.MissingKeywords == nil || result.Feedback == nil {
		t.Fatalf("lists must be non-nil: %+v", result)
	}
}

func TestParseAnalysisLoose(t *testing.T) {
	raw := `The resume scores 64/100 overall.

It covers most core requirements but misses some tooling.

- Add a skills section with cloud platforms
- Quantify achievements in the latest role`

	result, err := ParseAnalysisLoose(raw)
	if err != nil {
		t.Fatalf("ParseAnalysisLoose: %v", err)
	}
	if result.Score != "64/100" || result.MatchPercentage != 64 {
		t.Fatalf("unexpected score: %+v", result)
	}
	if len(result.Feedback) != 2 {
		t.Fatalf("expected 2 feedback lines, got %v", result.Feedback)
	}
	if !strings.Contains(result.Summary, "scores 64/100") {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
}

func TestParseAnalysisLooseNoScore(t *testing.T) {
	if _, err := ParseAnalysisLoose("no score in here at all"); err == nil {
		t.Fatalf("expected error when no score pattern exists")
	}
}

func TestParseCoverLetterStripsFences(t *testing.T) {
	result, err := ParseCoverLetter("```\nDear Hiring Manager,\n\nI am writing...\n```")
	if err != nil {
		t.Fatalf("ParseCoverLetter: %v", err)
	}
	if strings.Contains(result.CoverLetter, "```") {
		t.Fatalf("fences must be stripped: %q", result.CoverLetter)
	}
	if !strings.HasPrefix(result.CoverLetter, "Dear Hiring Manager,") {
		t.Fatalf("unexpected letter: %q", result.CoverLetter)
	}
}

func TestParseOptimizedResume(t *testing.T) {
	result, err := ParseOptimizedResume("```markdown\n# Jane Doe\n\n## Experience\n```")
	if err != nil {
		t.Fatalf("ParseOptimizedResume: %v", err)
	}
	if result.OptimizedResume != "# Jane Doe\n\n## Experience" {
		t.Fatalf("unexpected document: %q", result.OptimizedResume)
	}
}

func TestParseOptimizedResumeEmpty(t *testing.T) {
	if _, err := ParseOptimizedResume("``````"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}
