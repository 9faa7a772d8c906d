package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/JaybhanTomar/ats-pro-app/app/models"
)

// Parsers for raw model output. A failure here is a malformed upstream
// response: the call succeeded, the shape did not. Never retried.

// stripCodeFences removes a surrounding ```/```json fence pair if present.
func stripCodeFences(s string) string {
	clean := strings.TrimSpace(s)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```markdown") {
		clean = strings.TrimPrefix(clean, "```markdown")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

// sliceJSONObject returns the substring between the first '{' and the last
// '}', recovering a JSON object wrapped in prose.
func sliceJSONObject(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// ParseAnalysis strictly decodes a model response into an AnalysisResult.
// Required structured fields must be present; keyword and feedback lists are
// normalized to empty slices so clients never see null.
func ParseAnalysis(raw string) (models.AnalysisResult, error) {
	var result models.AnalysisResult

	obj, err := sliceJSONObject(stripCodeFences(raw))
	if err != nil {
		return result, err
	}

	dec := json.NewDecoder(strings.NewReader(obj))
	if err := dec.Decode(&result); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("decode analysis: %w", err)
	}

	if strings.TrimSpace(result.Score) == "" {
		return models.AnalysisResult{}, errors.New("analysis response missing score")
	}
	if strings.TrimSpace(result.Summary) == "" {
		return models.AnalysisResult{}, errors.New("analysis response missing summary")
	}
	if result.MatchPercentage < 0 || result.MatchPercentage > 100 {
		return models.AnalysisResult{}, fmt.Errorf("analysis matchPercentage out of range: %v", result.MatchPercentage)
	}

	if result.MatchedKeywords == nil {
		result.MatchedKeywords = []string{}
	}
	if result.MissingKeywords == nil {
		result.MissingKeywords = []string{}
	}
	if result.Feedback == nil {
		result.Feedback = []string{}
	}
	return result, nil
}

var (
	reScore   = regexp.MustCompile(`\b(\d{1,3})\s*/\s*100\b`)
	reListing = regexp.MustCompile(`(?m)^\s*[-*\x{2022}]\s*(.+)$`)
)

// ParseAnalysisLoose recovers what it can from free-text output via pattern
// matching. Degraded mode only: callers must opt in explicitly, it is not
// part of the strict handler path.
func ParseAnalysisLoose(raw string) (models.AnalysisResult, error) {
	text := stripCodeFences(raw)

	m := reScore.FindStringSubmatch(text)
	if m == nil {
		return models.AnalysisResult{}, errors.New("no score pattern found in response")
	}
	scoreVal, err := strconv.Atoi(m[1])
	if err != nil || scoreVal > 100 {
		return models.AnalysisResult{}, fmt.Errorf("unusable score %q in response", m[1])
	}

	result := models.AnalysisResult{
		Score:           fmt.Sprintf("%d/100", scoreVal),
		MatchPercentage: float64(scoreVal),
		Summary:         firstParagraph(text),
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		Feedback:        []string{},
	}

	for _, item := range reListing.FindAllStringSubmatch(text, -1) {
		line := strings.TrimSpace(item[1])
		if line != "" {
			result.Feedback = append(result.Feedback, line)
		}
	}

	if result.Summary == "" {
		return models.AnalysisResult{}, errors.New("no summary text found in response")
	}
	return result, nil
}

func firstParagraph(text string) string {
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" && !strings.HasPrefix(para, "-") && !strings.HasPrefix(para, "*") {
			return para
		}
	}
	return ""
}

// ParseCoverLetter validates the plain-text cover letter output.
func ParseCoverLetter(raw string) (models.CoverLetterResult, error) {
	letter := stripCodeFences(raw)
	if letter == "" {
		return models.CoverLetterResult{}, errors.New("empty cover letter response")
	}
	return models.CoverLetterResult{CoverLetter: letter}, nil
}

// ParseOptimizedResume strips surrounding fences from the markdown document.
func ParseOptimizedResume(raw string) (models.OptimizationResult, error) {
	doc := stripCodeFences(raw)
	if doc == "" {
		return models.OptimizationResult{}, errors.New("empty optimized resume response")
	}
	return models.OptimizationResult{OptimizedResume: doc}, nil
}
