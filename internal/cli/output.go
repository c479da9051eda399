package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/sportify/internal/event"
	"github.com/pfrederiksen/sportify/internal/extract"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
	SourceURL   string                 `json:"source_url" yaml:"source_url"`
	Output      string                 `json:"output" yaml:"output"`
	Calendar    string                 `json:"calendar,omitempty" yaml:"calendar,omitempty"`
	Candidates  int                    `json:"candidates" yaml:"candidates"`
	EventCount  int                    `json:"event_count" yaml:"event_count"`
	Dropped     map[extract.Reason]int `json:"dropped" yaml:"dropped"`
	Events      []*event.Event         `json:"events" yaml:"events"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeYAML outputs results as YAML
func writeYAML(w io.Writer, result *OutputResult) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return err
	}
	return encoder.Close()
}

// writeText prints the success line, preceded by the event list in verbose mode
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if verbose {
		for _, evt := range result.Events {
			fmt.Fprintf(w, "%s  %-12s %s | %s\n", evt.Time, evt.Sport, evt.League, evt.Title())
		}
		reasons := make([]string, 0, len(result.Dropped))
		for reason := range result.Dropped {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(w, "dropped (%s): %d\n", reason, result.Dropped[extract.Reason(reason)])
		}
		if len(result.Events) > 0 || len(result.Dropped) > 0 {
			fmt.Fprintln(w)
		}
	}

	_, err := fmt.Fprintf(w, "HTML file generated successfully! (%s, %d events)\n", result.Output, result.EventCount)
	return err
}
