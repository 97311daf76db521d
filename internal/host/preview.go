package host

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockAtoms start a new preview line.
var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Hr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Pre: true, atom.Blockquote: true,
	atom.Table: true, atom.Tr: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
}

// gapAtoms are followed by a blank preview line.
var gapAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Pre: true, atom.Blockquote: true, atom.Ul: true, atom.Ol: true,
	atom.Table: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Hr: true,
}

// previewText flattens rendered HTML into plain text lines for the block
// list. Whitespace collapses outside pre; list items get a bullet and rules
// become a dashed line.
func previewText(fragment string) []string {
	var (
		lines []string
		cur   strings.Builder
		gap   bool
		pre   int
		skip  int
	)
	push := func(line string, keepEmpty bool) {
		if line == "" && !keepEmpty {
			return
		}
		if gap && len(lines) > 0 {
			lines = append(lines, "")
		}
		gap = false
		lines = append(lines, line)
	}
	flush := func() {
		line := strings.TrimRight(cur.String(), " ")
		cur.Reset()
		push(line, false)
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			flush()
			return lines

		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := string(z.Text())
			if pre > 0 {
				for i, part := range strings.Split(text, "\n") {
					if i > 0 {
						push(cur.String(), true)
						cur.Reset()
					}
					cur.WriteString(part)
				}
				continue
			}
			text = strings.Join(strings.Fields(text), " ")
			if text == "" {
				continue
			}
			if cur.Len() > 0 && !strings.HasSuffix(cur.String(), " ") {
				cur.WriteByte(' ')
			}
			cur.WriteString(text)

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := z.TagName()
			a := atom.Lookup(tn)
			switch a {
			case atom.Script, atom.Style:
				if tt == html.StartTagToken {
					skip++
				}
				continue
			case atom.Img:
				alt := ""
				if hasAttr {
					alt = attr(z, "alt")
				}
				cur.WriteString("[" + alt + "]")
				continue
			}
			if blockAtoms[a] {
				flush()
			}
			switch a {
			case atom.Li:
				cur.WriteString("• ")
			case atom.Hr:
				cur.WriteString("────")
				flush()
				gap = true
			case atom.Pre:
				pre++
			}

		case html.EndTagToken:
			tn, _ := z.TagName()
			a := atom.Lookup(tn)
			switch a {
			case atom.Script, atom.Style:
				skip = max(0, skip-1)
				continue
			case atom.Pre:
				pre = max(0, pre-1)
			}
			if blockAtoms[a] {
				flush()
			}
			if gapAtoms[a] {
				gap = true
			}
		}
	}
}

func attr(z *html.Tokenizer, name string) string {
	for {
		k, v, more := z.TagAttr()
		if string(k) == name {
			return string(v)
		}
		if !more {
			return ""
		}
	}
}
