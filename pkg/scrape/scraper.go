package scrape

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Sites commonly block unidentified bots, so we present a desktop browser.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Scraper downloads a job posting page and returns its visible text.
// It never returns an error: a broken job link is not worth retrying, so
// every failure mode (network error, timeout, non-2xx, non-HTML) collapses
// to ok=false and a diagnostic log line.
type Scraper struct {
	client *http.Client
}

// New builds a Scraper whose requests are bounded by timeout.
func New(timeout time.Duration) *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the URL and extracts all human-visible text from the
// document. The extraction is intentionally crude, with no per-site handling
// for LinkedIn, Glassdoor and friends; the LLM stage downstream is expected
// to tolerate noisy input.
func (s *Scraper) Fetch(ctx context.Context, url string) (string, bool) {
	if url == "" {
		return "", false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("scrape: bad url %q: %v", url, err)
		return "", false
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("scrape: GET %s: %v", url, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("scrape: %s returned %d", url, resp.StatusCode)
		return "", false
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		// A link to a PDF or an image has nothing to extract.
		log.Printf("scrape: %s is not an HTML page (%s)", url, contentType)
		return "", false
	}

	text, err := visibleText(resp.Body)
	if err != nil {
		log.Printf("scrape: parse %s: %v", url, err)
		return "", false
	}
	return text, true
}

// visibleText walks the parsed document and concatenates text nodes,
// skipping subtrees that never render (scripts, styles, head).
func visibleText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String(), nil
}
