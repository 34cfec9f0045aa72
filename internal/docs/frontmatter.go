package docs

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrUnterminatedFrontMatter is returned when a document opens a front matter
// block that never closes.
var ErrUnterminatedFrontMatter = errors.New("front matter opened with --- but never closed")

// FrontMatter holds the fields the inventory reads. Unknown keys are ignored.
type FrontMatter struct {
	ID              string  `yaml:"id"`
	Title           string  `yaml:"title"`
	Slug            string  `yaml:"slug"`
	SidebarLabel    string  `yaml:"sidebar_label"`
	SidebarPosition float64 `yaml:"sidebar_position"`
	Draft           bool    `yaml:"draft"`
	Unlisted        bool    `yaml:"unlisted"`
}

// splitFrontMatter separates a leading "---" delimited YAML block from the body.
// CRLF documents are handled.
func splitFrontMatter(content []byte) (front, body []byte, had bool, err error) {
	nl := []byte("\n")
	if bytes.HasPrefix(content, []byte("---\r\n")) {
		nl = []byte("\r\n")
	} else if !bytes.HasPrefix(content, []byte("---\n")) {
		return nil, content, false, nil
	}
	start := 3 + len(nl)
	rest := content[start:]
	if bytes.HasPrefix(rest, append([]byte("---"), nl...)) {
		return []byte{}, rest[3+len(nl):], true, nil
	}
	closing := append(append([]byte{}, nl...), []byte("---")...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return nil, nil, false, ErrUnterminatedFrontMatter
	}
	front = rest[:idx+len(nl)]
	after := rest[idx+len(closing):]
	switch {
	case bytes.HasPrefix(after, nl):
		after = after[len(nl):]
	case len(after) == 0:
	default:
		// "---" followed by other text is not a delimiter.
		return nil, content, false, nil
	}
	return front, after, true, nil
}

// parseFrontMatter returns the decoded fields, the raw YAML block and the body.
func parseFrontMatter(content []byte) (fm FrontMatter, front, body []byte, err error) {
	front, body, had, err := splitFrontMatter(content)
	if err != nil {
		return FrontMatter{}, nil, nil, err
	}
	if had && len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &fm); err != nil {
			return FrontMatter{}, nil, nil, err
		}
	}
	return fm, front, body, nil
}
