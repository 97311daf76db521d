// Package renderer converts block markup into its HTML display form.
//
// A Renderer is the only required capability:
//
//	html, err := r.Render("# Title")
//
// A renderer may also decide how a document is partitioned into blocks by
// implementing Splitter, and how blocks are put back together by
// implementing Joiner. Callers never type-assert directly; they use the
// package level Split and Join helpers, which fall back to the default
// paragraph policy of package split.
//
// Built-in renderers:
//
//   - Markdown: CommonMark + GFM through goldmark, default block splitting
//   - FencedMarkdown: Markdown with a split policy that keeps ~~~ fenced
//     regions in one block
//   - Plain: escaped paragraphs, no markup interpretation
package renderer
