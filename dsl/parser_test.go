package dsl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/rml2csv/dsl"
)

const sampleRML = `<?xml version="1.0"?>
<document filename="invoice.pdf">
  <template>
    <pageTemplate id="first">
      <frame id="body" x1="2cm" y1="2cm" width="17cm" height="25cm"/>
    </pageTemplate>
  </template>
  <story>
    <para>Hello <font name="Helvetica">bold</font> world</para>
  </story>
</document>
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleRML)
	require.NoError(t, err)

	assert.Equal(t, "document", doc.Tag)
	assert.Equal(t, "invoice.pdf", doc.Get("filename"))
	require.Len(t, doc.Children, 2)

	tmpl := doc.First("template")
	require.NotNil(t, tmpl)
	pts := tmpl.ChildrenByTag("pageTemplate")
	require.Len(t, pts, 1)
	assert.Equal(t, "first", pts[0].Get("id"))

	frame := pts[0].First("frame")
	require.NotNil(t, frame)
	v, ok := frame.Attr("x1")
	assert.True(t, ok)
	assert.Equal(t, "2cm", v)
	_, ok = frame.Attr("missing")
	assert.False(t, ok)
}

func TestParseKeepsTextAndTail(t *testing.T) {
	doc, err := dsl.ParseString(`<para>Hello <font>bold</font> world<br/>!</para>`)
	require.NoError(t, err)

	assert.Equal(t, "Hello ", doc.Text)
	require.Len(t, doc.Children, 2)
	assert.Equal(t, "bold", doc.Children[0].Text)
	assert.Equal(t, " world", doc.Children[0].Tail)
	assert.Equal(t, "!", doc.Children[1].Tail)
	assert.Equal(t, "Hello bold world!", doc.TextContent())
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"unclosed": `<document><story></document>`,
		"empty":    ``,
		"garbage":  `hello`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dsl.ParseString(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, dsl.ErrMalformedMarkup), "got %v", err)
		})
	}
}

func TestParseLatin1(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"iso-8859-1\"?><para>caf\xe9</para>"
	doc, err := dsl.ParseString(input)
	require.NoError(t, err)
	assert.Equal(t, "café", doc.Text)
}

func TestNilNodeHelpers(t *testing.T) {
	var n *dsl.Node
	assert.Equal(t, "", n.Get("x"))
	assert.Nil(t, n.First("x"))
	assert.Nil(t, n.ChildrenByTag("x"))
	assert.Equal(t, "", n.TextContent())
}
