package sport

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		label string
		want  string
	}{
		{"Soccer", "soccer"},
		{"  Basketball  ", "basketball"},
		{"Ice Hockey", "hockey"},
		{"WWE Raw", "wwe"},
		{"ATP Tennis", "tennis"},
		{"Table Tennis", "tennis"},
		{"Darts", "darts"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := c.Normalize(tt.label); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

// "field hockey" is listed as a supported sport but the hockey rule runs
// first, so it can never be produced by Normalize.
func TestNormalize_FieldHockeyCollapsesIntoHockey(t *testing.T) {
	c := NewClassifier(nil)

	got, ok := c.Classify("Field Hockey")
	if got != "hockey" || !ok {
		t.Errorf("Classify(\"Field Hockey\") = (%q, %v), want (\"hockey\", true)", got, ok)
	}
	if !c.Supported("field hockey") {
		t.Error("field hockey should still be a member of the supported set")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	c := NewClassifier(nil)

	for _, name := range Default {
		once := c.Normalize(name)
		twice := c.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", name, once, twice)
		}
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		label  string
		want   string
		wantOK bool
	}{
		{"Soccer", "soccer", true},
		{"CRICKET", "cricket", true},
		{"Darts", "darts", false},
		{"Premier League", "premier league", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := c.Classify(tt.label)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.label, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMentions(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		label string
		want  bool
	}{
		{"soccer-title", true},
		{"Live Boxing Tonight", true},
		{"headline", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := c.Mentions(tt.label); got != tt.want {
				t.Errorf("Mentions(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestNewClassifier_CustomSet(t *testing.T) {
	c := NewClassifier([]string{" Darts ", "Snooker"})

	if _, ok := c.Classify("Darts"); !ok {
		t.Error("expected darts to be supported by a custom set")
	}
	if _, ok := c.Classify("Soccer"); ok {
		t.Error("soccer should not be supported by a custom set")
	}

	names := c.Sports().Names()
	if len(names) != 2 || names[0] != "darts" || names[1] != "snooker" {
		t.Errorf("Names() = %v, want [darts snooker]", names)
	}
}
