package config

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// YearPlaceholder is replaced by the construction year in copyright templates.
const YearPlaceholder = "{year}"

// ResolveCopyright interpolates year into template. Both "{year}" and the
// template-literal spelling "${year}" are accepted.
func ResolveCopyright(template string, year int) string {
	y := strconv.Itoa(year)
	out := strings.ReplaceAll(template, "${year}", y)
	return strings.ReplaceAll(out, YearPlaceholder, y)
}

func defaultCopyrightTemplate(title string) string {
	if title == "" {
		return "Copyright © " + YearPlaceholder + "."
	}
	return fmt.Sprintf("Copyright © %s %s.", YearPlaceholder, title)
}

var allowedCopyrightTags = map[atom.Atom]bool{
	atom.Br:     true,
	atom.A:      true,
	atom.B:      true,
	atom.Strong: true,
	atom.Em:     true,
	atom.I:      true,
	atom.Span:   true,
}

// checkCopyrightHTML parses the copyright as an HTML fragment and rejects
// block or unknown elements.
func checkCopyrightHTML(s string) error {
	if !strings.ContainsRune(s, '<') {
		return nil
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return fmt.Errorf("parse copyright html: %w", err)
	}
	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && !allowedCopyrightTags[n.DataAtom] {
			return fmt.Errorf("copyright contains disallowed element <%s>", n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, n := range nodes {
		if err := walk(n); err != nil {
			return err
		}
	}
	return nil
}
