// Package markdown converts the blog's markdown dialect into display HTML.
// It is the single converter in the repository: the API detail payload and
// the authoring CLI both render through it.
//
// Supported constructs: ATX headings (# through ######), bold, italic,
// strikethrough, inline code, fenced code blocks with an optional language
// badge, bullet and numbered lists, links, images, blockquotes, tables,
// horizontal rules, and blank-line paragraph breaks.
package markdown

import (
	"bytes"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBold             = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnderscore   = regexp.MustCompile(`__(.+?)__`)
	reItalic           = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnderscore = regexp.MustCompile(`_([^_]+)_`)
	reStrikethrough    = regexp.MustCompile(`~~(.+?)~~`)
	reInlineCode       = regexp.MustCompile("`([^`]+)`")
	reLink             = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reImage            = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	reHeading          = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	reOrderedItem      = regexp.MustCompile(`^\d+\.\s`)
)

// Render converts md into HTML.
func Render(md string) string {
	var buf bytes.Buffer
	RenderTo(&buf, md)
	return buf.String()
}

// blockState tracks which container element is currently open while the
// renderer walks the source line by line.
type blockState int

const (
	blockNone blockState = iota
	blockParagraph
	blockList
	blockOrderedList
	blockQuote
	blockTable
)

// renderer carries the open-block bookkeeping for one document.
type renderer struct {
	buf   *bytes.Buffer
	block blockState

	inCode    bool
	codeBadge bool // current code block carries a language badge wrapper

	tableBodyOpen bool
}

// RenderTo writes the HTML representation of md to buf.
func RenderTo(buf *bytes.Buffer, md string) {
	r := &renderer{buf: buf}
	for _, raw := range strings.Split(md, "\n") {
		r.line(strings.TrimRight(raw, "\r"))
	}
	r.closeBlock()
	r.closeCode()
}

// closeBlock terminates whichever container element is open.
func (r *renderer) closeBlock() {
	switch r.block {
	case blockParagraph:
		r.buf.WriteString("</p>")
	case blockList:
		r.buf.WriteString("</ul>")
	case blockOrderedList:
		r.buf.WriteString("</ol>")
	case blockQuote:
		r.buf.WriteString("</blockquote>")
	case blockTable:
		if r.tableBodyOpen {
			r.buf.WriteString("</tbody>")
			r.tableBodyOpen = false
		}
		r.buf.WriteString("</table>")
	}
	r.block = blockNone
}

func (r *renderer) closeCode() {
	if !r.inCode {
		return
	}
	r.buf.WriteString("</code></pre>")
	if r.codeBadge {
		r.buf.WriteString("</div>")
		r.codeBadge = false
	}
	r.inCode = false
}

// open switches the current container, closing the previous one first.
func (r *renderer) open(b blockState, tag string) {
	if r.block == b {
		return
	}
	r.closeBlock()
	r.buf.WriteString(tag)
	r.block = b
}

func (r *renderer) line(line string) {
	if strings.HasPrefix(line, "```") {
		if r.inCode {
			r.closeCode()
			return
		}
		r.closeBlock()
		lang := strings.TrimSpace(line[3:])
		if lang != "" {
			escaped := html.EscapeString(lang)
			r.buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang">` + escaped + `</span>`)
			r.buf.WriteString(`<pre class="code-block"><code class="language-` + escaped + `">`)
			r.codeBadge = true
		} else {
			r.buf.WriteString(`<pre class="code-block"><code>`)
		}
		r.inCode = true
		return
	}

	if r.inCode {
		r.buf.WriteString(html.EscapeString(line))
		r.buf.WriteString("\n")
		return
	}

	if strings.TrimSpace(line) == "" {
		r.closeBlock()
		return
	}

	switch {
	case isRule(line):
		r.closeBlock()
		r.buf.WriteString("<hr/>")
	case reHeading.MatchString(line):
		m := reHeading.FindStringSubmatch(line)
		level := strconv.Itoa(len(m[1]))
		r.closeBlock()
		r.buf.WriteString("<h" + level + ">")
		r.buf.WriteString(FormatInline(strings.TrimSpace(m[2])))
		r.buf.WriteString("</h" + level + ">")
	case strings.HasPrefix(line, "|"):
		r.tableRow(line)
	case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
		r.open(blockList, "<ul>")
		r.buf.WriteString("<li>")
		r.buf.WriteString(FormatInline(strings.TrimSpace(line[2:])))
		r.buf.WriteString("</li>")
	case reOrderedItem.MatchString(line):
		r.open(blockOrderedList, "<ol>")
		item := reOrderedItem.ReplaceAllString(line, "")
		r.buf.WriteString("<li>")
		r.buf.WriteString(FormatInline(strings.TrimSpace(item)))
		r.buf.WriteString("</li>")
	case strings.HasPrefix(line, "> "):
		r.open(blockQuote, "<blockquote>")
		r.buf.WriteString(FormatInline(strings.TrimSpace(line[2:])))
	default:
		if r.block == blockParagraph {
			r.buf.WriteString(" ")
		} else {
			r.open(blockParagraph, "<p>")
		}
		r.buf.WriteString(FormatInline(strings.TrimSpace(line)))
	}
}

func (r *renderer) tableRow(line string) {
	if r.block != blockTable {
		r.open(blockTable, "<table>")
		r.buf.WriteString("<thead><tr>")
		for _, cell := range tableCells(line) {
			r.buf.WriteString("<th>" + FormatInline(cell) + "</th>")
		}
		r.buf.WriteString("</tr></thead>")
		return
	}
	if isTableSeparator(line) {
		if !r.tableBodyOpen {
			r.buf.WriteString("<tbody>")
			r.tableBodyOpen = true
		}
		return
	}
	if !r.tableBodyOpen {
		r.buf.WriteString("<tbody>")
		r.tableBodyOpen = true
	}
	r.buf.WriteString("<tr>")
	for _, cell := range tableCells(line) {
		r.buf.WriteString("<td>" + FormatInline(cell) + "</td>")
	}
	r.buf.WriteString("</tr>")
}

// isRule reports whether the line is a horizontal rule (--- or ***).
func isRule(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "---") || t == "***"
}

func tableCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	line = strings.Trim(strings.TrimSpace(line), "|")
	for _, cell := range strings.Split(line, "|") {
		cleaned := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(cell), "-", ""), ":", "")
		if cleaned != "" {
			return false
		}
	}
	return true
}

// applyOutsideTags applies fn only to text segments outside HTML tags so
// formatting regexes never touch URLs inside href attributes.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// FormatInline applies inline formatting (images, links, code, bold,
// italic, strikethrough) to a single line of text.
func FormatInline(s string) string {
	escaped := html.EscapeString(s)

	escaped = reImage.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reImage.FindStringSubmatch(m)
		src := SafeURL(match[2])
		if src == "" {
			return match[1]
		}
		return `<img loading="lazy" decoding="async" alt="` + match[1] + `" src="` + src + `"/>`
	})

	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + match[1] + `</a>`
	})

	// Inline code is swapped out for placeholders so the bold/italic
	// regexes cannot reformat content inside backticks.
	var codeSpans []string
	escaped = reInlineCode.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00IC" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, "<code>"+match[1]+"</code>")
		return placeholder
	})

	escaped = applyOutsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldUnderscore.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = reItalicUnderscore.ReplaceAllString(seg, "<em>$1</em>")
		seg = reStrikethrough.ReplaceAllString(seg, "<del>$1</del>")
		return seg
	})

	for i, code := range codeSpans {
		escaped = strings.Replace(escaped, "\x00IC"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return escaped
}

// SafeURL validates a URL for use in an HTML attribute. Relative paths,
// fragments, and http/https/mailto/tel schemes pass; everything else is
// dropped.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
