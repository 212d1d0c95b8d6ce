package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/powerball-results/internal/draw"
)

const (
	ResultsURL = "https://www.powerball.com/"
	UserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	Timeout    = 10 * time.Second
)

// ErrUnexpectedStatus is returned when the results page answers with a non-2xx status
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Scraper fetches the results page and extracts a draw outcome from it
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	extractor *Extractor
	now       func() time.Time
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL overrides the results page URL
func WithURL(url string) Option {
	return func(s *Scraper) {
		if url != "" {
			s.url = url
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithTimeout overrides the HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithExtractor replaces the default extractor
func WithExtractor(e *Extractor) Option {
	return func(s *Scraper) {
		if e != nil {
			s.extractor = e
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:       ResultsURL,
		userAgent: UserAgent,
		extractor: NewExtractor(DefaultSelectors()),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the page the scraper fetches
func (s *Scraper) URL() string {
	return s.url
}

// Fetch downloads and parses the results page
func (s *Scraper) Fetch(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Scrape runs one fetch and extract attempt. It always returns an outcome; transport
// errors and unexpected panics become failed outcomes carrying the error detail.
func (s *Scraper) Scrape(ctx context.Context, attempt int) (out *draw.Outcome) {
	capturedAt := s.now()

	defer func() {
		if r := recover(); r != nil {
			out = draw.Failed(fmt.Errorf("scraping %s: %v", s.url, r), capturedAt, attempt, nil)
		}
	}()

	doc, err := s.Fetch(ctx)
	if err != nil {
		return draw.Failed(err, capturedAt, attempt, nil)
	}

	return s.ExtractOutcome(doc, capturedAt, attempt)
}

// ExtractOutcome runs the extractor over an already parsed document
func (s *Scraper) ExtractOutcome(doc *goquery.Document, capturedAt time.Time, attempt int) *draw.Outcome {
	ex := s.extractor.Extract(doc)
	return draw.NewOutcome(ex.Draw, ex.Next, capturedAt, attempt, ex.Diagnostics)
}
