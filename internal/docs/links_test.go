package docs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	body := []byte(`# Title

An [inline](setup.md) link, an ![image](img/logo.svg) and <https://example.com>.

A [reference][ref] link.

` + "```" + `
[not a link](inside-code.md)
` + "```" + `

And ` + "`[code](span.md)`" + `.

[ref]: https://linkit-wiki.com/Linkit/
`)

	got := ExtractLinks(body)
	want := []Link{
		{Kind: LinkKindInline, Destination: "setup.md"},
		{Kind: LinkKindImage, Destination: "img/logo.svg"},
		{Kind: LinkKindAuto, Destination: "https://example.com"},
		{Kind: LinkKindInline, Destination: "https://linkit-wiki.com/Linkit/"},
		{Kind: LinkKindReferenceDefinition, Destination: "https://linkit-wiki.com/Linkit/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkClassification(t *testing.T) {
	assert.True(t, Link{Destination: "https://x.dev"}.IsExternal())
	assert.True(t, Link{Destination: "mailto:a@b.c"}.IsExternal())
	assert.False(t, Link{Destination: "../intro.md"}.IsExternal())

	assert.True(t, Link{Destination: "../intro.md#top"}.IsMarkdownFile())
	assert.True(t, Link{Destination: "page.mdx?x=1"}.IsMarkdownFile())
	assert.False(t, Link{Destination: "https://x.dev/readme.md"}.IsMarkdownFile())
	assert.False(t, Link{Destination: "/docs/intro"}.IsMarkdownFile())
}

func TestSplitFrontMatter(t *testing.T) {
	front, body, had, err := splitFrontMatter([]byte("---\r\nid: x\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "id: x\r\n", string(front))
	assert.Equal(t, "body\r\n", string(body))

	front, body, had, err = splitFrontMatter([]byte("---\n---\nbody"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Empty(t, front)
	assert.Equal(t, "body", string(body))

	_, body, had, err = splitFrontMatter([]byte("no front matter"))
	require.NoError(t, err)
	assert.False(t, had)
	assert.Equal(t, "no front matter", string(body))
}
