package split

import (
	"fmt"
	"regexp"
	"strings"
)

// Separator is the boundary between two blocks.
const Separator = "\n\n"

// FenceMarker is the minimal line prefix opening or closing a fenced region.
const FenceMarker = "~~~"

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Normalize removes carriage returns and collapses runs of three or more
// newlines to a single blank line.
func Normalize(markup string) string {
	markup = strings.ReplaceAll(markup, "\r", "")
	return blankRuns.ReplaceAllString(markup, Separator)
}

// Split normalizes markup and splits it at blank lines. Empty fragments are
// kept, so the result always has at least one element.
func Split(markup string) []string {
	return strings.Split(Normalize(markup), Separator)
}

// Join concatenates blocks with a blank line between each pair.
func Join(blocks []string) string {
	return strings.Join(blocks, Separator)
}

// SplitFenced works like Split but never splits inside a fenced region.
//
// A fenced region starts at a line of three or more tildes, optionally
// followed by spaces, and ends at the first following line that begins with
// three or more tildes. An unterminated region runs to the end of the input.
func SplitFenced(markup string) []string {
	markup = strings.ReplaceAll(markup, "\r", "")

	regions := FencedRegions(markup)
	if len(regions) == 0 {
		return Split(markup)
	}

	salt := placeholderSalt(markup)
	tokens := make([]string, len(regions))

	var sb strings.Builder
	last := 0
	for i, r := range regions {
		tokens[i] = fmt.Sprintf("\x00%sfence%d\x00", salt, i)
		sb.WriteString(markup[last:r.Start])
		sb.WriteString(tokens[i])
		last = r.End
	}
	sb.WriteString(markup[last:])

	blocks := Split(sb.String())

	next := 0
	for i, block := range blocks {
		for next < len(tokens) && strings.Contains(block, tokens[next]) {
			block = strings.Replace(block, tokens[next], markup[regions[next].Start:regions[next].End], 1)
			next++
		}
		blocks[i] = block
	}
	return blocks
}

// Region is a half-open byte range [Start, End) of a fenced region,
// including its opening and closing marker lines but not the newline that
// follows the closing marker.
type Region struct {
	Start int
	End   int
}

// FencedRegions returns the fenced regions of markup in order. Regions never
// overlap; a marker line seen inside an open region closes it.
func FencedRegions(markup string) []Region {
	var regions []Region

	open := -1
	pos := 0
	for pos <= len(markup) {
		end := strings.IndexByte(markup[pos:], '\n')
		if end < 0 {
			end = len(markup)
		} else {
			end += pos
		}
		line := markup[pos:end]

		switch {
		case open < 0 && isFenceOpener(line):
			open = pos
		case open >= 0 && strings.HasPrefix(line, FenceMarker):
			regions = append(regions, Region{Start: open, End: end})
			open = -1
		}

		if end == len(markup) {
			break
		}
		pos = end + 1
	}

	if open >= 0 {
		regions = append(regions, Region{Start: open, End: len(markup)})
	}
	return regions
}

// isFenceOpener reports whether line is only tildes, at least three, with
// optional trailing spaces.
func isFenceOpener(line string) bool {
	line = strings.TrimRight(line, " ")
	return len(line) >= len(FenceMarker) && strings.Trim(line, "~") == ""
}

// placeholderSalt returns a string that makes placeholder tokens unique
// within markup.
func placeholderSalt(markup string) string {
	salt := ""
	for strings.Contains(markup, "\x00"+salt+"fence") {
		salt += "_"
	}
	return salt
}
