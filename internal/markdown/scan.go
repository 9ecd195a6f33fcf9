package markdown

import (
	"sort"
	"strings"
)

// LinkKind classifies where a link destination was found.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// LinkSpan is a link destination located in a markdown source.
//
// Destination is the text exactly as written, without surrounding angle
// brackets; Start and End are its byte offsets in the scanned source.
type LinkSpan struct {
	Kind        LinkKind
	Destination string
	Start       int
	End         int
	Line        int
}

// ScanLinks returns every inline link, image and reference definition
// destination in src, in document order.
//
// Fenced code blocks (``` and ~~~) and inline code spans are skipped. The scan
// is line based and deliberately permissive: it does not require the link
// text to be well formed CommonMark.
func ScanLinks(src []byte) []LinkSpan {
	text := string(src)
	spans := make([]LinkSpan, 0)

	inCodeBlock := false
	activeFence := ""
	lineNum := 0

	for offset := 0; offset <= len(text); {
		lineNum++
		end := strings.IndexByte(text[offset:], '\n')
		if end == -1 {
			end = len(text)
		} else {
			end += offset
		}
		line := text[offset:end]

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "```"):
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "```")
		case strings.HasPrefix(trimmed, "~~~"):
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "~~~")
		case !inCodeBlock:
			code := inlineCodeRanges(line)
			spans = append(spans, scanLine(line, offset, lineNum, code)...)
		}

		if end == len(text) {
			break
		}
		offset = end + 1
	}

	return spans
}

func toggleFencedBlock(inCodeBlock bool, activeFence string, fence string) (bool, string) {
	if !inCodeBlock {
		return true, fence
	}
	if activeFence == fence {
		return false, ""
	}
	return inCodeBlock, activeFence
}

type byteRange struct{ start, end int }

// inlineCodeRanges returns the [start,end) ranges covered by backtick code
// spans, delimiters included. An unclosed run of backticks is literal text.
func inlineCodeRanges(line string) []byteRange {
	if !strings.Contains(line, "`") {
		return nil
	}

	var ranges []byteRange
	for i := 0; i < len(line); {
		if line[i] != '`' {
			i++
			continue
		}
		run := 1
		for i+run < len(line) && line[i+run] == '`' {
			run++
		}
		marker := strings.Repeat("`", run)
		closeRel := strings.Index(line[i+run:], marker)
		if closeRel == -1 {
			i += run
			continue
		}
		end := i + run + closeRel + run
		ranges = append(ranges, byteRange{start: i, end: end})
		i = end
	}
	return ranges
}

func insideCode(ranges []byteRange, pos int) bool {
	for _, r := range ranges {
		if pos >= r.start && pos < r.end {
			return true
		}
	}
	return false
}

func scanLine(line string, base int, lineNum int, code []byteRange) []LinkSpan {
	var spans []LinkSpan

	if span, ok := referenceDefinition(line, base, lineNum); ok && !insideCode(code, span.Start-base) {
		spans = append(spans, span)
	}

	for i := 0; i+1 < len(line); i++ {
		if line[i] != ']' || line[i+1] != '(' || insideCode(code, i) {
			continue
		}
		open := findLinkTextStart(line, i)
		if open == -1 {
			continue
		}
		start, end, ok := destinationBounds(line, i+2)
		if !ok {
			continue
		}
		kind := LinkKindInline
		if open > 0 && line[open-1] == '!' {
			kind = LinkKindImage
		}
		spans = append(spans, LinkSpan{
			Kind:        kind,
			Destination: line[start:end],
			Start:       base + start,
			End:         base + end,
			Line:        lineNum,
		})
		i = end - 1
	}

	sort.SliceStable(spans, func(a, b int) bool { return spans[a].Start < spans[b].Start })
	return spans
}

// findLinkTextStart walks back from the closing bracket to its opening
// bracket, honouring nested brackets in the link text.
func findLinkTextStart(line string, closeBracket int) int {
	depth := 0
	for j := closeBracket - 1; j >= 0; j-- {
		switch line[j] {
		case ']':
			depth++
		case '[':
			if depth == 0 {
				return j
			}
			depth--
		}
	}
	return -1
}

// destinationBounds locates the destination starting at pos (just after the
// opening parenthesis or the reference colon). Leading blanks are skipped.
// Angle-bracket destinations run to the closing '>'; bare destinations stop at
// whitespace or at the ')' that balances the link.
func destinationBounds(line string, pos int) (int, int, bool) {
	for pos < len(line) && (line[pos] == ' ' || line[pos] == '\t') {
		pos++
	}
	if pos >= len(line) {
		return 0, 0, false
	}

	if line[pos] == '<' {
		closeRel := strings.IndexByte(line[pos+1:], '>')
		if closeRel == -1 {
			return 0, 0, false
		}
		return pos + 1, pos + 1 + closeRel, true
	}

	depth := 0
	end := pos
scan:
	for ; end < len(line); end++ {
		switch line[end] {
		case ' ', '\t', '\r':
			break scan
		case '(':
			depth++
		case ')':
			if depth == 0 {
				break scan
			}
			depth--
		}
	}
	if end == pos {
		return 0, 0, false
	}
	return pos, end, true
}

// referenceDefinition recognises "[label]: destination" lines. Footnote
// definitions ("[^1]: ...") are not links.
func referenceDefinition(line string, base int, lineNum int) (LinkSpan, bool) {
	indent := 0
	for indent < len(line) && indent < 3 && line[indent] == ' ' {
		indent++
	}
	rest := line[indent:]
	if !strings.HasPrefix(rest, "[") || strings.HasPrefix(rest, "[^") {
		return LinkSpan{}, false
	}

	// The label is the first bracketed run and must be followed by ':'.
	labelEnd := strings.IndexByte(rest, ']')
	if labelEnd <= 1 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != ':' {
		return LinkSpan{}, false
	}
	if strings.IndexByte(rest[1:labelEnd], '[') != -1 {
		return LinkSpan{}, false
	}

	start, end, ok := destinationBounds(line, indent+labelEnd+2)
	if !ok {
		return LinkSpan{}, false
	}
	return LinkSpan{
		Kind:        LinkKindReferenceDefinition,
		Destination: line[start:end],
		Start:       base + start,
		End:         base + end,
		Line:        lineNum,
	}, true
}
