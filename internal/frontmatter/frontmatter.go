package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitelinks/internal/toc"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input. Both LF and CRLF delimiters are recognised.
func Split(content []byte) (raw []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	rawEnd := start + idx + len(nl)
	return content[start:rawEnd], content[start+idx+len(closeSeq):], true, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Fields are the front matter keys sitelinks acts on. Unknown keys are ignored.
type Fields struct {
	Title              string `yaml:"title"`
	Slug               string `yaml:"slug"`
	Permalink          string `yaml:"permalink"`
	Draft              bool   `yaml:"draft"`
	TOCMinHeadingLevel int    `yaml:"toc_min_heading_level"`
	TOCMaxHeadingLevel int    `yaml:"toc_max_heading_level"`
}

// Decode unmarshals raw frontmatter into Fields.
func Decode(raw []byte) (Fields, error) {
	var f Fields
	if len(bytes.TrimSpace(raw)) == 0 {
		return f, nil
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Fields{}, err
	}
	return f, nil
}

// TOCWindow returns the per-document heading window override; zero bounds
// mean "use the configured default".
func (f Fields) TOCWindow() toc.Window {
	return toc.Window{Min: f.TOCMinHeadingLevel, Max: f.TOCMaxHeadingLevel}
}
