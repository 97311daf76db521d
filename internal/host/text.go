package host

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Cursor movement over markup. Offsets are byte offsets that always sit on
// grapheme cluster boundaries, so combined characters and emoji move and
// delete as one unit.

func nextGrapheme(s string, pos int) int {
	if pos >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[pos:], -1)
	return pos + len(cluster)
}

func prevGrapheme(s string, pos int) int {
	start := lineStart(s, pos)
	if start == pos && pos > 0 {
		// Step over the newline ending the previous line.
		return pos - 1
	}
	last := start
	g := uniseg.NewGraphemes(s[start:pos])
	for g.Next() {
		from, _ := g.Positions()
		last = start + from
	}
	return last
}

func lineStart(s string, pos int) int {
	return strings.LastIndexByte(s[:pos], '\n') + 1
}

func lineEnd(s string, pos int) int {
	if i := strings.IndexByte(s[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(s)
}

// column returns the display width of the line up to pos.
func column(s string, pos int) int {
	return uniseg.StringWidth(s[lineStart(s, pos):pos])
}

// offsetAtColumn returns the offset in s[start:end] closest to display
// column col without passing it.
func offsetAtColumn(s string, start, end, col int) int {
	pos, width := start, 0
	state := -1
	rest := s[start:end]
	for rest != "" {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if width+w > col {
			break
		}
		width += w
		pos += len(cluster)
	}
	return pos
}

func lineUp(s string, pos int) int {
	start := lineStart(s, pos)
	if start == 0 {
		return 0
	}
	prev := lineStart(s, start-1)
	return offsetAtColumn(s, prev, start-1, column(s, pos))
}

func lineDown(s string, pos int) int {
	end := lineEnd(s, pos)
	if end == len(s) {
		return len(s)
	}
	return offsetAtColumn(s, end+1, lineEnd(s, end+1), column(s, pos))
}

// deleteRange removes s[from:to].
func deleteRange(s string, from, to int) string {
	return s[:from] + s[to:]
}

// wrap splits line into pieces no wider than width display cells, breaking
// between grapheme clusters.
func wrap(line string, width int) []string {
	if width <= 0 || uniseg.StringWidth(line) <= width {
		return []string{line}
	}

	var out []string
	var cur strings.Builder
	curWidth := 0
	state := -1
	rest := line
	for rest != "" {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if curWidth+w > width && cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteString(cluster)
		curWidth += w
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
