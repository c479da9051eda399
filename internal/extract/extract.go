package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pfrederiksen/sportify/internal/clock"
	"github.com/pfrederiksen/sportify/internal/event"
	"github.com/pfrederiksen/sportify/internal/sport"
)

// Label is a bold/styled node that may name the sport of the entries below it
type Label struct {
	Class string // first class token
	Text  string
}

// Candidate is the markup-independent view of one event-bearing node
type Candidate struct {
	Text       string   // the node's own text, nested link text excluded
	Links      []string // visible text of every link inside the node
	Heading    string   // text of the nearest preceding heading
	HasHeading bool
	Label      *Label // nearest preceding label node, if any
}

// Reason describes why a candidate did not produce an event
type Reason string

const (
	ReasonTime  Reason = "time"
	ReasonEmpty Reason = "empty"
	ReasonSport Reason = "sport"
)

// SkipError reports a candidate that was dropped
type SkipError struct {
	Reason Reason
	Err    error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skipped (%s): %v", e.Reason, e.Err)
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

func skip(reason Reason, err error) *SkipError {
	return &SkipError{Reason: reason, Err: err}
}

// ReasonOf returns the skip reason carried by err, or "" if err is not a skip
func ReasonOf(err error) Reason {
	var se *SkipError
	if errors.As(err, &se) {
		return se.Reason
	}
	return ""
}

// Participant separators, tried in order
var separators = []*regexp.Regexp{
	regexp.MustCompile(`\s*\.?vs\.?\s*`),
	regexp.MustCompile(`\s*\.vs\s*`),
	regexp.MustCompile(`\s+x\s+`),
}

// Extractor derives events from candidates
type Extractor struct {
	classifier *sport.Classifier
	converter  clock.Converter
}

// New creates an Extractor
func New(classifier *sport.Classifier, converter clock.Converter) *Extractor {
	return &Extractor{
		classifier: classifier,
		converter:  converter,
	}
}

// Extract builds an event from c. A dropped candidate yields a *SkipError.
func (x *Extractor) Extract(c Candidate) (*event.Event, error) {
	fields := strings.Fields(c.Text)
	if len(fields) == 0 {
		return nil, skip(ReasonTime, clock.ErrNoTime)
	}

	converted, err := x.converter.Convert(clockChars(fields[0]))
	if err != nil {
		return nil, skip(ReasonTime, err)
	}

	rest := strings.Join(fields[1:], " ")
	league, teams, hasColon := strings.Cut(rest, ":")
	league = strings.TrimSpace(league)
	teams = strings.TrimSpace(teams)

	if league == "" && teams == "" {
		return nil, skip(ReasonEmpty, errors.New("no league or participants"))
	}

	name, ok := x.classifier.Classify(x.sportLabel(c, league))
	if !ok {
		return nil, skip(ReasonSport, fmt.Errorf("unsupported sport %q", name))
	}

	channels := channelNames(c.Links)

	var evt *event.Event
	if left, right, ok := splitParticipants(teams); ok {
		evt = event.NewMatch(converted, league, name, left, right, channels)
	} else {
		eventName := teams
		if !hasColon {
			eventName = league
		}
		evt = event.NewSingle(converted, league, name, eventName, channels)
	}

	if err := evt.Validate(); err != nil {
		return nil, skip(ReasonTime, err)
	}
	return evt, nil
}

// sportLabel picks the raw sport label: heading first, then label node, then league
func (x *Extractor) sportLabel(c Candidate, league string) string {
	if c.HasHeading && strings.TrimSpace(c.Heading) != "" {
		return c.Heading
	}

	if c.Label != nil {
		if label := x.fromLabel(*c.Label); label != "" {
			return label
		}
	}

	prefix, _, _ := strings.Cut(league, " - ")
	return prefix
}

// fromLabel checks the label's class, then its text, for a supported sport
func (x *Extractor) fromLabel(l Label) string {
	if x.classifier.Mentions(l.Class) {
		return l.Class
	}
	if x.classifier.Mentions(l.Text) {
		return l.Text
	}
	return ""
}

// splitParticipants splits on the first separator that matches
func splitParticipants(teams string) (string, string, bool) {
	if teams == "" {
		return "", "", false
	}
	for _, sep := range separators {
		loc := sep.FindStringIndex(teams)
		if loc == nil {
			continue
		}
		left := strings.TrimSpace(teams[:loc[0]])
		right := strings.TrimSpace(teams[loc[1]:])
		return left, right, true
	}
	return "", "", false
}

// channelNames drops parenthesised annotations such as quality tags.
// Links that are empty once cut are skipped rather than kept as blank channels.
func channelNames(links []string) []string {
	channels := make([]string, 0, len(links))
	for _, link := range links {
		name, _, _ := strings.Cut(link, "(")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		channels = append(channels, name)
	}
	return channels
}

// clockChars keeps only digits and colons
func clockChars(token string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ':' {
			return r
		}
		return -1
	}, token)
}
