package enrich

import (
	"context"

	"github.com/artem13815/jobtrack/pkg/nlp"
)

// minExtractChars is the floor under which extraction is not even attempted;
// a page that collapsed to less than this holds nothing worth a model call.
const minExtractChars = 100

// PageFetcher retrieves a URL's visible text, or ok=false on any failure.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, bool)
}

// Result is what the pipeline hands back to the job use case. Description
// may be set while Extraction is nil: a successful scrape is kept even when
// the model stage failed, so the only information gathered is not discarded.
type Result struct {
	Description string
	Extraction  *Extraction
}

// Pipeline runs the enrichment stages for one job link:
// fetch -> collapse -> extract. Stages execute strictly sequentially (each
// consumes the previous stage's output) over a single mutable context
// record, and every stage degrades to a skip instead of failing the caller.
type Pipeline struct {
	fetcher   PageFetcher
	extractor *Extractor
}

func NewPipeline(fetcher PageFetcher, extractor *Extractor) *Pipeline {
	return &Pipeline{fetcher: fetcher, extractor: extractor}
}

// enrichContext accumulates per-call state between stages.
type enrichContext struct {
	link    string
	rawText string
	text    string
	out     Result
}

// Enrich runs the stage chain for link. It never returns an error: whatever
// the stages managed to produce is the result.
func (p *Pipeline) Enrich(ctx context.Context, link string) Result {
	ec := &enrichContext{link: link}
	stages := []func(context.Context, *enrichContext) bool{
		p.fetchStage,
		p.collapseStage,
		p.extractStage,
	}
	for _, stage := range stages {
		if !stage(ctx, ec) {
			break
		}
	}
	return ec.out
}

func (p *Pipeline) fetchStage(ctx context.Context, ec *enrichContext) bool {
	if ec.link == "" {
		return false
	}
	raw, ok := p.fetcher.Fetch(ctx, ec.link)
	if !ok {
		return false
	}
	ec.rawText = raw
	return true
}

func (p *Pipeline) collapseStage(_ context.Context, ec *enrichContext) bool {
	text, ok := nlp.CollapseText(ec.rawText)
	if !ok {
		return false
	}
	ec.text = text
	// From here on the scraped text is worth keeping even if the model
	// stage produces nothing.
	ec.out.Description = text
	return true
}

func (p *Pipeline) extractStage(ctx context.Context, ec *enrichContext) bool {
	if len(ec.text) < minExtractChars {
		return false
	}
	ext, ok := p.extractor.Extract(ctx, ec.text)
	if !ok {
		return false
	}
	ec.out.Extraction = &ext
	return true
}
