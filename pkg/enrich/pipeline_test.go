package enrich

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobtrack/pkg/nlp"
)

// fakeFetcher maps URLs to canned page text.
type fakeFetcher struct {
	pages map[string]string
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, bool) {
	f.calls++
	text, ok := f.pages[url]
	return text, ok
}

const pageText = "We are   looking for a backend engineer\n\nwith strong Go and PostgreSQL experience to join the platform team in Berlin."

func newTestPipeline(fetcher PageFetcher, model *fakeModel) *Pipeline {
	return NewPipeline(fetcher, NewExtractor(model))
}

func TestEnrichFullPipeline(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://good.example/job": pageText}}
	model := &fakeModel{reply: goodReply}

	res := newTestPipeline(fetcher, model).Enrich(context.Background(), "https://good.example/job")

	require.NotNil(t, res.Extraction)
	assert.Equal(t, "Backend Engineer", res.Extraction.PositionTitle)
	// Description is the collapsed text, both on the result and inside the
	// extraction.
	assert.NotContains(t, res.Description, "\n")
	assert.Contains(t, res.Description, "backend engineer with strong Go")
	assert.Equal(t, res.Description, res.Extraction.Description)
	// The collapsed text, not the raw page, goes to the model.
	assert.Contains(t, model.lastUser, res.Description)
}

func TestEnrichEmptyLinkSkipsEverything(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{}}
	res := newTestPipeline(fetcher, &fakeModel{reply: goodReply}).Enrich(context.Background(), "")
	assert.Equal(t, Result{}, res)
	assert.Zero(t, fetcher.calls)
}

func TestEnrichFetchFailureYieldsEmptyResult(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{}}
	model := &fakeModel{reply: goodReply}
	res := newTestPipeline(fetcher, model).Enrich(context.Background(), "https://blocked.example")
	assert.Equal(t, Result{}, res)
	assert.Empty(t, model.lastUser, "model must not be called without scraped text")
}

func TestEnrichShortPageYieldsEmptyResult(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://wall.example": "Access denied"}}
	res := newTestPipeline(fetcher, &fakeModel{reply: goodReply}).Enrich(context.Background(), "https://wall.example")
	assert.Equal(t, Result{}, res)
}

func TestEnrichSkipsExtractionUnderMinChars(t *testing.T) {
	// Long enough to survive normalization, too short to be worth a model
	// call.
	text := strings.Repeat("x", minExtractChars-10)
	fetcher := &fakeFetcher{pages: map[string]string{"https://thin.example": text}}
	model := &fakeModel{reply: goodReply}

	res := newTestPipeline(fetcher, model).Enrich(context.Background(), "https://thin.example")

	assert.Nil(t, res.Extraction)
	assert.Equal(t, text, res.Description)
	assert.Empty(t, model.lastUser)
}

func TestEnrichKeepsDescriptionWhenExtractionFails(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://good.example/job": pageText}}
	model := &fakeModel{reply: "the model rambled instead of returning JSON"}

	res := newTestPipeline(fetcher, model).Enrich(context.Background(), "https://good.example/job")

	// Scraping succeeded even though extraction did not; the text is the
	// partial value worth persisting.
	assert.Nil(t, res.Extraction)
	assert.Contains(t, res.Description, "backend engineer")
}

func TestEnrichTruncatesOversizedPages(t *testing.T) {
	huge := strings.Repeat("w ", nlp.MaxTextLen)
	fetcher := &fakeFetcher{pages: map[string]string{"https://huge.example": huge}}
	model := &fakeModel{reply: goodReply}

	res := newTestPipeline(fetcher, model).Enrich(context.Background(), "https://huge.example")

	require.NotNil(t, res.Extraction)
	assert.LessOrEqual(t, len(res.Description), nlp.MaxTextLen+len("... (truncated)"))
	assert.True(t, strings.HasSuffix(res.Description, "... (truncated)"))
}
