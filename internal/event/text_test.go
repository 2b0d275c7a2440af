package event

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Join us for talks", "Join us for talks"},
		{"whitespace collapsed", "  Join\n  us\t\tnow ", "Join us now"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"tags removed", "<p>Learn <b>Go</b></p>", "Learn Go"},
		{"paragraphs separated", "<p>One</p><p>Two</p>", "One Two"},
		{"line breaks", "First<br>Second", "First Second"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
