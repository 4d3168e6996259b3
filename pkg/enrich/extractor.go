package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/artem13815/jobtrack/pkg/llm"
)

// Extraction is the validated structured output of the model for one job
// posting. Description carries the original input text through so callers
// need not track it separately.
type Extraction struct {
	PositionTitle string
	AISummaryRole string
	AISummaryTech string
	AILevel       string
	AIJobType     string
	AITags        []string
	Description   string
}

// Enum values the model is instructed to choose from. Anything else in the
// reply fails validation.
var (
	levels   = []string{"Junior", "Mid", "Senior", "Lead", "Manager"}
	jobTypes = []string{"Backend", "Full-stack", "Data", "DevOps", "Mobile", "QA"}
)

const maxTags = 10

const extractionSystemPrompt = "You are an expert HR assistant. Your task is to analyze job postings and output only a raw JSON object based on the required schema."

const extractionPromptFormat = `Analyze the job description text provided below.
Extract the official and most relevant Job Title and all key information.
Summarize the role using a maximum of 3 sentences.
Return the result in a strict JSON format matching the schema exactly.

Text to analyze:
---
%s
---

Required JSON Output Schema:
1. positionTitle: The official title of the job (e.g., "Junior Software Engineer").
2. aiSummaryRole: A short summary (max 3 sentences) of the core responsibilities and team focus.
3. aiSummaryTech: A short summary (max 2 sentences) of the main required technologies and stack.
4. aiLevel: The required experience level. Choose one from: "Junior", "Mid", "Senior", "Lead", "Manager". If not clear, default to "Mid".
5. aiJobType: The primary function type. Choose one from: "Backend", "Full-stack", "Data", "DevOps", "Mobile", "QA".
6. aiTags: An array of up to 10 key technologies, programming languages, and frameworks mentioned as MUST or REQUIRED skills. Example: ["Python", "FastAPI", "MongoDB", "SQL", "TypeScript"].

The output MUST be only the raw JSON object, without any surrounding text or markdown.`

// Extractor turns normalized job-posting text into a validated Extraction.
// Enrichment is best-effort by policy: every provider or parse failure is
// logged and reported as ok=false, never as an error, so job creation is
// never blocked by the model.
type Extractor struct {
	model llm.ChatModel
}

func NewExtractor(model llm.ChatModel) *Extractor {
	return &Extractor{model: model}
}

// Some providers wrap the object in a markdown fence despite the JSON
// response mode; strip it before parsing.
var reCodeFence = regexp.MustCompile("```json\\s*|```")

// extractionPayload mirrors the JSON shape the prompt demands of the model.
type extractionPayload struct {
	PositionTitle string   `json:"positionTitle"`
	AISummaryRole string   `json:"aiSummaryRole"`
	AISummaryTech string   `json:"aiSummaryTech"`
	AILevel       string   `json:"aiLevel"`
	AIJobType     string   `json:"aiJobType"`
	AITags        []string `json:"aiTags"`
}

// Extract asks the model to fill the extraction schema for text. Callers are
// expected not to pass trivially short text; the pipeline enforces that.
func (e *Extractor) Extract(ctx context.Context, text string) (Extraction, bool) {
	prompt := fmt.Sprintf(extractionPromptFormat, text)
	raw, err := e.model.AskJSON(ctx, extractionSystemPrompt, prompt)
	if err != nil {
		log.Printf("enrich: model call failed: %v", err)
		return Extraction{}, false
	}

	clean := strings.TrimSpace(reCodeFence.ReplaceAllString(raw, ""))
	var p extractionPayload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		log.Printf("enrich: model returned malformed JSON: %v", err)
		return Extraction{}, false
	}

	out, ok := validate(p)
	if !ok {
		return Extraction{}, false
	}
	out.Description = text
	return out, true
}

// validate checks the untrusted model reply against the schema contract.
// A result that fails validation is discarded whole rather than partially
// trusted; the one exception is aiLevel, whose schema documents "Mid" as
// the fallback when the level is unclear.
func validate(p extractionPayload) (Extraction, bool) {
	level, ok := matchEnum(p.AILevel, levels)
	if !ok {
		level = "Mid"
	}
	jobType, ok := matchEnum(p.AIJobType, jobTypes)
	if !ok && strings.TrimSpace(p.AIJobType) != "" {
		log.Printf("enrich: model returned unknown job type %q, discarding result", p.AIJobType)
		return Extraction{}, false
	}

	tags := p.AITags
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	return Extraction{
		PositionTitle: strings.TrimSpace(p.PositionTitle),
		AISummaryRole: strings.TrimSpace(p.AISummaryRole),
		AISummaryTech: strings.TrimSpace(p.AISummaryTech),
		AILevel:       level,
		AIJobType:     jobType,
		AITags:        tags,
	}, true
}

func matchEnum(v string, allowed []string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a, true
		}
	}
	return "", false
}
