package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/sportify/internal/logger"
)

func scheduleServer(t *testing.T) *httptest.Server {
	t.Helper()

	data, err := os.ReadFile("../scraper/testdata/schedule.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_GeneratesPage(t *testing.T) {
	server := scheduleServer(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "site", "index.html")

	stdout, _, err := runRoot(t, "--url", server.URL, "--output", output)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !strings.Contains(stdout, "HTML file generated successfully!") {
		t.Errorf("missing success line: %q", stdout)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("page was not written: %v", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}

	cards := doc.Find("main .card")
	if cards.Length() != 3 {
		t.Fatalf("expected 3 cards, got %d", cards.Length())
	}

	wantSports := []string{"soccer", "soccer", "cricket"}
	cards.Each(func(i int, s *goquery.Selection) {
		if got, _ := s.Attr("data-sport"); got != wantSports[i] {
			t.Errorf("card %d data-sport = %q, want %q", i, got, wantSports[i])
		}
	})

	if got := strings.TrimSpace(cards.First().Find(".team-left").Text()); got != "Arsenal" {
		t.Errorf("first card team-left = %q, want Arsenal", got)
	}
	if doc.Find("#searchInput").Length() != 1 {
		t.Error("page is missing the search input")
	}
}

func TestRootCmd_ExtraOutputs(t *testing.T) {
	server := scheduleServer(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "index.html")
	ics := filepath.Join(dir, "events.ics")
	prom := filepath.Join(dir, "sportify.prom")

	stdout, _, err := runRoot(t,
		"--url", server.URL,
		"--output", output,
		"--calendar", ics,
		"--metrics-file", prom,
		"--format", "json",
		"--sort", "time",
	)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	var result struct {
		Candidates int            `json:"candidates"`
		EventCount int            `json:"event_count"`
		Calendar   string         `json:"calendar"`
		Dropped    map[string]int `json:"dropped"`
		Events     []struct {
			Time string `json:"time"`
		} `json:"events"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}

	if result.Candidates != 5 || result.EventCount != 3 {
		t.Errorf("candidates = %d, events = %d, want 5 and 3", result.Candidates, result.EventCount)
	}
	if result.Dropped["sport"] != 1 || result.Dropped["time"] != 1 {
		t.Errorf("dropped = %v, want one sport and one time drop", result.Dropped)
	}
	if result.Calendar != ics {
		t.Errorf("calendar = %q, want %q", result.Calendar, ics)
	}

	wantTimes := []string{"00:30", "13:00", "22:30"}
	for i, evt := range result.Events {
		if evt.Time != wantTimes[i] {
			t.Errorf("event %d time = %s, want %s", i, evt.Time, wantTimes[i])
		}
	}

	calendar, err := os.ReadFile(ics)
	if err != nil {
		t.Fatalf("calendar was not written: %v", err)
	}
	if n := strings.Count(string(calendar), "BEGIN:VEVENT"); n != 3 {
		t.Errorf("calendar has %d events, want 3", n)
	}

	metrics, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("metrics were not written: %v", err)
	}
	if !strings.Contains(string(metrics), `sportify_events_extracted_total{sport="soccer"} 2`) {
		t.Errorf("metrics missing soccer count:\n%s", metrics)
	}
}

func TestRootCmd_TransportErrorWritesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	output := filepath.Join(t.TempDir(), "index.html")

	_, _, err := runRoot(t, "--url", url, "--output", output)
	if err == nil {
		t.Fatal("Execute() expected error for unreachable source")
	}

	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Errorf("page should not exist after a failed fetch, stat error: %v", statErr)
	}
}

func TestRootCmd_ErrorStatusStillWritesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	output := filepath.Join(t.TempDir(), "index.html")

	stdout, stderr, err := runRoot(t, "--url", server.URL, "--output", output)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(stdout, "0 events") {
		t.Errorf("expected an empty page, got %q", stdout)
	}
	if !strings.Contains(stderr, `"level":"WARN"`) {
		t.Errorf("expected a warning log for the error status:\n%s", stderr)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("page was not written: %v", err)
	}
}

func TestRootCmd_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"--format", "xml"}, "invalid format"},
		{"sort", []string{"--sort", "date"}, "invalid sort order"},
		{"args", []string{"extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runRoot(t, tt.args...)
			if err == nil {
				t.Fatalf("Execute(%v) expected error", tt.args)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRootCmd_RestoresDefaultLogger(t *testing.T) {
	server := scheduleServer(t)
	previous := logger.Default()

	_, _, err := runRoot(t, "--url", server.URL, "--output", filepath.Join(t.TempDir(), "index.html"))
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if logger.Default() != previous {
		t.Error("default logger should be restored after the run")
	}
}

func TestRootCmd_VerboseLogsSupportedSports(t *testing.T) {
	server := scheduleServer(t)

	_, stderr, err := runRoot(t, "--url", server.URL, "--output", filepath.Join(t.TempDir(), "index.html"), "--verbose")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !strings.Contains(stderr, `"message":"Supported sports"`) || !strings.Contains(stderr, `"field hockey"`) {
		t.Errorf("expected the supported sports in the debug log:\n%s", stderr)
	}
}
