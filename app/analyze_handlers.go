package app

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/JaybhanTomar/ats-pro-app/app/models"
	"github.com/JaybhanTomar/ats-pro-app/auth"

	"github.com/gin-gonic/gin"
)

const (
	handlerTimeout       = 90 * time.Second
	minJobDescriptionLen = 20
)

// Analysis modes. Match compares the resume against a job description;
// critique reviews the resume on its own.
const (
	ModeMatch    = "match"
	ModeCritique = "critique"
)

type actionRequest struct {
	ResumeText     string `json:"resumeText"`
	ResumeFile     string `json:"resumeFile"` // base64
	ResumeMimeType string `json:"resumeMimeType"`
	JobDescription string `json:"jobDescription"`
	Mode           string `json:"mode"` // analysis only
}

// resumeContent is the validated resume payload. Text takes precedence when
// both text and a file are supplied.
type resumeContent struct {
	text string
	data []byte
	mime string
}

// Analyze scores a resume, either against a job description (match mode) or
// standalone (critique mode).
func (a *API) Analyze(c *gin.Context) {
	claims, err := requireClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req actionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondError(c, errInvalidInput("invalid request body"))
		return
	}

	mode := req.Mode
	if mode == "" {
		if strings.TrimSpace(req.JobDescription) != "" {
			mode = ModeMatch
		} else {
			mode = ModeCritique
		}
	}
	if mode != ModeMatch && mode != ModeCritique {
		respondError(c, errInvalidInput("mode must be \"match\" or \"critique\""))
		return
	}

	resume, err := validateResume(req)
	if err != nil {
		respondError(c, err)
		return
	}
	if mode == ModeMatch {
		if err := validateJobDescription(req.JobDescription); err != nil {
			respondError(c, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), handlerTimeout)
	defer cancel()

	if err := a.gateAction(ctx, claims.Subject, models.ActionAnalysis); err != nil {
		respondError(c, err)
		return
	}

	instruction := matchAnalysisPrompt()
	if mode == ModeCritique {
		instruction = critiqueAnalysisPrompt()
	}

	parts := resumeParts(resume)
	if mode == ModeMatch {
		parts = append(parts, ContentPart{Text: "Job Description:\n" + req.JobDescription})
	}

	raw, err := a.gen.Generate(ctx, GenerateRequest{
		Instruction: instruction,
		Parts:       parts,
		Temperature: 0.2,
		JSONOutput:  true,
	})
	if err != nil {
		respondError(c, generateError(ctx, err))
		return
	}

	result, parseErr := ParseAnalysis(raw)
	if parseErr != nil {
		respondError(c, errInternal("could not parse analysis response", parseErr))
		return
	}

	if err := a.recordUsage(ctx, claims.Subject, models.ActionAnalysis); err != nil {
		respondError(c, errInternal("failed to record usage", err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// GenerateCoverLetter writes a tailored cover letter for a job description.
func (a *API) GenerateCoverLetter(c *gin.Context) {
	claims, err := requireClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req actionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondError(c, errInvalidInput("invalid request body"))
		return
	}

	resume, err := validateResume(req)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := validateJobDescription(req.JobDescription); err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), handlerTimeout)
	defer cancel()

	if err := a.gateAction(ctx, claims.Subject, models.ActionCoverLetter); err != nil {
		respondError(c, err)
		return
	}

	resumeText, err := a.resumeAsText(resume)
	if err != nil {
		respondError(c, err)
		return
	}

	raw, err := a.gen.Generate(ctx, GenerateRequest{
		Instruction: coverLetterPrompt(),
		Parts: []ContentPart{
			{Text: "Resume:\n" + resumeText},
			{Text: "Job Description:\n" + req.JobDescription},
		},
		Temperature: 0.7,
	})
	if err != nil {
		respondError(c, generateError(ctx, err))
		return
	}

	result, parseErr := ParseCoverLetter(raw)
	if parseErr != nil {
		respondError(c, errInternal("could not parse cover letter response", parseErr))
		return
	}

	if err := a.recordUsage(ctx, claims.Subject, models.ActionCoverLetter); err != nil {
		respondError(c, errInternal("failed to record usage", err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// OptimizeResume rewrites the resume as a markdown document targeted at the
// job description.
func (a *API) OptimizeResume(c *gin.Context) {
	claims, err := requireClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req actionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondError(c, errInvalidInput("invalid request body"))
		return
	}

	resume, err := validateResume(req)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := validateJobDescription(req.JobDescription); err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), handlerTimeout)
	defer cancel()

	if err := a.gateAction(ctx, claims.Subject, models.ActionOptimization); err != nil {
		respondError(c, err)
		return
	}

	resumeText, err := a.resumeAsText(resume)
	if err != nil {
		respondError(c, err)
		return
	}

	raw, err := a.gen.Generate(ctx, GenerateRequest{
		Instruction: optimizationPrompt(),
		Parts: []ContentPart{
			{Text: "Resume:\n" + resumeText},
			{Text: "Job Description:\n" + req.JobDescription},
		},
		Temperature: 0.4,
	})
	if err != nil {
		respondError(c, generateError(ctx, err))
		return
	}

	result, parseErr := ParseOptimizedResume(raw)
	if parseErr != nil {
		respondError(c, errInternal("could not parse optimized resume response", parseErr))
		return
	}

	if err := a.recordUsage(ctx, claims.Subject, models.ActionOptimization); err != nil {
		respondError(c, errInternal("failed to record usage", err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// gateAction runs the quota check and converts a denial into the
// distinguished quota-exceeded error, before any generation call is made.
func (a *API) gateAction(ctx context.Context, userID string, kind models.ActionKind) error {
	decision, err := a.checkQuota(ctx, userID, kind)
	if err != nil {
		return errInternal("failed to check quota", err)
	}
	if !decision.Allowed {
		return errQuotaExceeded(decision.Used, decision.Limit)
	}
	return nil
}

func requireClaims(c *gin.Context) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(c.Request.Context())
	if !ok || claims.Subject == "" {
		return nil, errUnauthenticated("missing auth context")
	}
	return claims, nil
}

func validateResume(req actionRequest) (resumeContent, error) {
	if text := strings.TrimSpace(req.ResumeText); text != "" {
		return resumeContent{text: text}, nil
	}
	if req.ResumeFile == "" {
		return resumeContent{}, errInvalidInput("resume is required as text or file")
	}
	if req.ResumeMimeType == "" {
		return resumeContent{}, errInvalidInput("resumeMimeType is required with resumeFile")
	}
	data, err := base64.StdEncoding.DecodeString(req.ResumeFile)
	if err != nil {
		return resumeContent{}, errInvalidInput("resumeFile is not valid base64")
	}
	if len(data) == 0 {
		return resumeContent{}, errInvalidInput("resumeFile is empty")
	}
	return resumeContent{data: data, mime: req.ResumeMimeType}, nil
}

func validateJobDescription(jd string) error {
	if len(strings.TrimSpace(jd)) < minJobDescriptionLen {
		return errInvalidInput("jobDescription is required (min 20 characters)")
	}
	return nil
}

// resumeParts builds the content segments for the analysis call. PDFs are
// forwarded inline so the model sees the original layout; other formats are
// reduced to text first.
func resumeParts(resume resumeContent) []ContentPart {
	if resume.text != "" {
		return []ContentPart{{Text: "Resume:\n" + resume.text}}
	}
	if resume.mime == mimePDF {
		return []ContentPart{
			{Text: "Resume (attached as PDF):"},
			{Data: resume.data, MIMEType: resume.mime},
		}
	}
	text, err := ExtractResumeText(resume.mime, resume.data)
	if err != nil || strings.TrimSpace(text) == "" {
		// Fall back to inline data and let the model try the raw bytes.
		return []ContentPart{
			{Text: "Resume (attached):"},
			{Data: resume.data, MIMEType: resume.mime},
		}
	}
	return []ContentPart{{Text: "Resume:\n" + text}}
}

// resumeAsText resolves the resume to plain text for the rewrite actions,
// which need actual text to rework.
func (a *API) resumeAsText(resume resumeContent) (string, error) {
	if resume.text != "" {
		return resume.text, nil
	}
	text, err := ExtractResumeText(resume.mime, resume.data)
	if err != nil {
		return "", errInvalidInput(err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return "", errInvalidInput("no text could be extracted from the resume file")
	}
	return text, nil
}

// generateError classifies a failed generation call. Caller cancellation is
// surfaced as-is; everything else is an upstream availability problem after
// retries are exhausted.
func generateError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return errInternal("request cancelled", ctx.Err())
	}
	return errUpstream(err)
}
