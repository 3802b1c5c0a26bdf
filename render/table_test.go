package render

import (
	"strings"
	"testing"
)

func TestTableAlignment(t *testing.T) {
	table := NewTable("ID", "NAME", "GP")
	table.Align(0, AlignRight).Align(2, AlignRight)
	table.AddRow(1, "Ann", "80.0K")
	table.AddRow(142, "Dragonfly", "101.5K")

	want := strings.Join([]string{
		" ID  NAME           GP",
		"---  ---------  ------",
		"  1  Ann         80.0K",
		"142  Dragonfly  101.5K",
		"",
	}, "\n")
	if got := table.String(); got != want {
		t.Errorf("table incorrect, wanted:\n%s\ngot:\n%s", want, got)
	}
}

func TestTableShortRows(t *testing.T) {
	table := NewTable("A", "B")
	table.AddRow("only")

	got := table.String()
	want := strings.Join([]string{
		"A     B",
		"----  -",
		"only",
		"",
	}, "\n")
	if got != want {
		t.Errorf("table incorrect, wanted:\n%q\ngot:\n%q", want, got)
	}
	for _, line := range strings.Split(got, "\n") {
		if line != strings.TrimRight(line, " ") {
			t.Errorf("line has trailing spaces: %q", line)
		}
	}
}

func TestFormatK(t *testing.T) {
	tests := map[int]string{
		0:     "0.0K",
		61234: "61.2K",
		61250: "61.2K",
		75000: "75.0K",
		999:   "1.0K",
	}
	for input, want := range tests {
		if got := FormatK(input); got != want {
			t.Errorf("FormatK(%d) incorrect, wanted: %s, got: %s", input, want, got)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := map[string]struct {
		text   string
		width  int
		indent string
		want   string
	}{
		"fits":        {text: "short line", width: 20, want: "short line"},
		"breaks":      {text: "one two three four", width: 9, want: "one two\nthree\nfour"},
		"indented":    {text: "one two three", width: 8, indent: "  ", want: "one two\n  three"},
		"long word":   {text: "a verylongword b", width: 5, want: "a\nverylongword\nb"},
		"empty":       {text: "   ", width: 10, want: ""},
		"zero width":  {text: "unchanged text", width: 0, want: "unchanged text"},
		"exact width": {text: "ab cd", width: 5, want: "ab cd"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Wrap(tc.text, tc.width, tc.indent); got != tc.want {
				t.Errorf("wrap incorrect, wanted: %q, got: %q", tc.want, got)
			}
		})
	}
}
