package split

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "a\nb", "a\nb"},
		{"crlf", "a\r\nb", "a\nb"},
		{"lone cr", "a\rb", "ab"},
		{"three newlines", "a\n\n\nb", "a\n\nb"},
		{"many newlines", "a\n\n\n\n\n\nb", "a\n\nb"},
		{"mixed", "a\r\n\r\n\r\nb", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{""}},
		{"single", "Hello", []string{"Hello"}},
		{"paragraphs", "Hello\n\r\nTom\nSawyer\n\r\n\n\r.", []string{"Hello", "Tom\nSawyer", "."}},
		{"trailing blank", "A\n\n", []string{"A", ""}},
		{"fence is not protected", "~~~\r\n\n...\n\r\n~~~", []string{"~~~", "...", "~~~"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Split(tt.in)); diff != "" {
				t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSplitFenced(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "fence only",
			in:   "~~~\n\nline\n\n~~~",
			want: []string{"~~~\n\nline\n\n~~~"},
		},
		{
			name: "carriage returns stripped",
			in:   "~~~\r\n\n...\n\r\n~~~",
			want: []string{"~~~\n\n...\n\n~~~"},
		},
		{
			name: "surrounding paragraphs",
			in:   "intro\n\n~~~\ncode\n\n\n\nmore\n~~~\n\noutro",
			want: []string{"intro", "~~~\ncode\n\n\n\nmore\n~~~", "outro"},
		},
		{
			name: "fence glued to paragraph",
			in:   "intro\n~~~\na\n\nb\n~~~",
			want: []string{"intro\n~~~\na\n\nb\n~~~"},
		},
		{
			name: "unterminated fence",
			in:   "before\n\n~~~\nx\n\ny\n\nz",
			want: []string{"before", "~~~\nx\n\ny\n\nz"},
		},
		{
			name: "two fences",
			in:   "~~~\na\n\nb\n~~~\n\n~~~~\nc\n\nd\n~~~~",
			want: []string{"~~~\na\n\nb\n~~~", "~~~~\nc\n\nd\n~~~~"},
		},
		{
			name: "opener with trailing spaces",
			in:   "~~~  \na\n\nb\n~~~",
			want: []string{"~~~  \na\n\nb\n~~~"},
		},
		{
			name: "tildes followed by text do not open",
			in:   "~~~ws~~~ struck\n\npara two\n\npara three",
			want: []string{"~~~ws~~~ struck", "para two", "para three"},
		},
		{
			name: "closer may carry text",
			in:   "~~~\na\n\nb\n~~~ end\n\nc",
			want: []string{"~~~\na\n\nb\n~~~ end", "c"},
		},
		{
			name: "no fences",
			in:   "Hello\n\r\nTom\nSawyer\n\r\n\n\r.",
			want: []string{"Hello", "Tom\nSawyer", "."},
		},
		{
			name: "two tildes are not a fence",
			in:   "~~\na\n\nb",
			want: []string{"~~\na", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitFenced(tt.in)); diff != "" {
				t.Errorf("SplitFenced(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestFencedRegions(t *testing.T) {
	in := "a\n~~~\nb\n~~~\nc\n~~~\nd"
	want := []Region{{Start: 2, End: 11}, {Start: 14, End: len(in)}}
	if diff := cmp.Diff(want, FencedRegions(in)); diff != "" {
		t.Errorf("FencedRegions mismatch (-want +got):\n%s", diff)
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"A", "B", "C"}); got != "A\n\nB\n\nC" {
		t.Errorf("Join = %q", got)
	}
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"one",
		"one\n\ntwo",
		"one\r\n\r\n\r\n\r\ntwo\nthree",
		"a\n\n\n\nb\n\n",
		"\n\nleading",
	}

	for _, in := range inputs {
		parts := Split(in)
		if got := Join(parts); got != Normalize(in) {
			t.Errorf("Join(Split(%q)) = %q, want %q", in, got, Normalize(in))
		}
		if diff := cmp.Diff(parts, Split(Join(parts))); diff != "" {
			t.Errorf("Split(Join(Split(%q))) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestFencedRoundTrip(t *testing.T) {
	in := "p\n\n~~~\nx\n\n\n\ny\n~~~\n\nq"
	parts := SplitFenced(in)
	if diff := cmp.Diff(parts, SplitFenced(Join(parts))); diff != "" {
		t.Errorf("SplitFenced round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaceholderCollision(t *testing.T) {
	in := "\x00fence0\x00\n\n~~~\na\n\nb\n~~~"
	want := []string{"\x00fence0\x00", "~~~\na\n\nb\n~~~"}
	if diff := cmp.Diff(want, SplitFenced(in)); diff != "" {
		t.Errorf("SplitFenced mismatch (-want +got):\n%s", diff)
	}
}
