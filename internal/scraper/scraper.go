package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/sportify/internal/event"
	"github.com/pfrederiksen/sportify/internal/extract"
	"github.com/pfrederiksen/sportify/internal/logger"
)

// Markup the schedule page is known to use
const (
	eventTag   = "strong"
	headingTag = "h2"
	labelTag   = "b"
	linkTag    = "a"
)

// Report summarizes what happened to the candidates of one page
type Report struct {
	Candidates int                    `json:"candidates" yaml:"candidates"`
	Extracted  int                    `json:"extracted" yaml:"extracted"`
	Dropped    map[extract.Reason]int `json:"dropped" yaml:"dropped"`
}

// Scraper handles fetching and parsing the schedule page
type Scraper struct {
	fetcher   *Fetcher
	extractor *extract.Extractor
}

// New creates a new Scraper instance
func New(fetcher *Fetcher, extractor *extract.Extractor) *Scraper {
	return &Scraper{
		fetcher:   fetcher,
		extractor: extractor,
	}
}

// FetchEvents fetches the schedule page and extracts its events in document order
func (s *Scraper) FetchEvents(ctx context.Context) ([]*event.Event, *Report, error) {
	body, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, nil, err
	}

	return s.parseEvents(bytes.NewReader(body))
}

// parseEvents extracts events from HTML
func (s *Scraper) parseEvents(r io.Reader) ([]*event.Event, *Report, error) {
	candidates, err := ParseCandidates(r)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{
		Candidates: len(candidates),
		Dropped:    make(map[extract.Reason]int),
	}
	events := make([]*event.Event, 0, len(candidates))

	for i, c := range candidates {
		evt, err := s.extractor.Extract(c)
		if err != nil {
			reason := extract.ReasonOf(err)
			report.Dropped[reason]++
			logger.Debug("Dropped schedule entry", logger.Fields{
				"index":  i,
				"reason": string(reason),
				"text":   c.Text,
			})
			continue
		}
		events = append(events, evt)
	}

	report.Extracted = len(events)
	return events, report, nil
}

// ParseCandidates reduces every event node of the page to a Candidate
func ParseCandidates(r io.Reader) ([]extract.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	candidates := make([]extract.Candidate, 0)
	doc.Find(eventTag).Each(func(_ int, sel *goquery.Selection) {
		candidates = append(candidates, candidateFrom(sel))
	})

	return candidates, nil
}

func candidateFrom(sel *goquery.Selection) extract.Candidate {
	c := extract.Candidate{
		Text: strings.TrimSpace(directText(sel)),
	}

	sel.Find(linkTag).Each(func(_ int, link *goquery.Selection) {
		c.Links = append(c.Links, strings.TrimSpace(link.Text()))
	})

	// Headings and labels are siblings of the event's container, not of the event itself
	parent := sel.Parent()
	if parent.Length() == 0 {
		return c
	}

	if heading := parent.PrevAllFiltered(headingTag).First(); heading.Length() > 0 {
		c.HasHeading = true
		c.Heading = strings.TrimSpace(heading.Text())
	}

	if label := parent.PrevAllFiltered(labelTag).First(); label.Length() > 0 {
		class := ""
		if fields := strings.Fields(label.AttrOr("class", "")); len(fields) > 0 {
			class = fields[0]
		}
		c.Label = &extract.Label{
			Class: class,
			Text:  strings.TrimSpace(label.Text()),
		}
	}

	return c
}

// directText joins the text nodes that are direct children of the selection
func directText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				b.WriteString(child.Data)
			}
		}
	}
	return b.String()
}
