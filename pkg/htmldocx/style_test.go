package htmldocx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StyleMap
	}{
		{
			name:  "empty",
			input: "",
			want:  StyleMap{},
		},
		{
			name:  "declarations",
			input: "color: #333; text-align:center",
			want:  StyleMap{"color": "#333", "text-align": "center"},
		},
		{
			name:  "property names are lower-cased",
			input: "Background-Color : #FFF ",
			want:  StyleMap{"background-color": "#FFF"},
		},
		{
			name:  "malformed fragments are skipped",
			input: "bold; ;:orphan; color:#fff;",
			want:  StyleMap{"color": "#fff"},
		},
		{
			name:  "value keeps later colons",
			input: "background:url(http://x)",
			want:  StyleMap{"background": "url(http://x)"},
		},
		{
			name:  "later declaration wins",
			input: "color:#111;color:#222",
			want:  StyleMap{"color": "#222"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseStyle(tt.input)); diff != "" {
				t.Errorf("ParseStyle(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestStyleMapHas(t *testing.T) {
	s := ParseStyle("border-left:1px solid")
	if !s.Has("border", "border-left") {
		t.Error("Has(border, border-left) = false")
	}
	if s.Has("border") {
		t.Error("Has(border) = true")
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "#b0e396", want: "B0E396"},
		{input: "B0E396", want: "B0E396"},
		{input: "#fff", want: "FFFFFF"},
		{input: " #abc ", want: "AABBCC"},
		{input: "red", wantErr: true},
		{input: "#12345", wantErr: true},
		{input: "#gggggg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := hexColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("hexColor(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("hexColor(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("hexColor(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBorderColor(t *testing.T) {
	tests := map[string]struct {
		style StyleMap
		want  string
	}{
		"shorthand":     {StyleMap{"border": "1px solid #c1c6cc"}, "C1C6CC"},
		"color first":   {StyleMap{"border": "#000 1px solid"}, "000000"},
		"no color":      {StyleMap{"border": "1px solid"}, "4A5568"},
		"no border":     {StyleMap{}, "4A5568"},
		"invalid color": {StyleMap{"border": "1px solid #12"}, "4A5568"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := borderColor(tt.style); got != tt.want {
				t.Errorf("borderColor = %q, want %q", got, tt.want)
			}
		})
	}
}
