// Package markup converts Markdown fragments into HTML fragments.
//
// A Converter is built once from Options and carries no state between calls.
// Fragments that end up in one document go through Converter.Document, which
// keeps heading anchors unique across them.
package markup

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// DefaultLangPrefix is the CSS class prefix for fenced code blocks.
const DefaultLangPrefix = "language-"

// DefaultQuotes holds the double and single quote pairs used by the typographer.
const DefaultQuotes = "“”‘’"

// Options controls how Markdown is rendered to HTML.
type Options struct {
	// HTML passes raw HTML tags in the source through to the output.
	HTML bool `yaml:"html" json:"html"`
	// XHTML closes void tags with a slash (<br />).
	XHTML bool `yaml:"xhtmlOut" json:"xhtmlOut"`
	// Breaks converts newlines inside paragraphs into <br>.
	Breaks bool `yaml:"breaks" json:"breaks"`
	// LangPrefix prefixes the language class of fenced code blocks.
	LangPrefix string `yaml:"langPrefix" json:"langPrefix"`
	// Typographer enables quote beautification and punctuation replacement.
	Typographer bool `yaml:"typographer" json:"typographer"`
	// Quotes is the quadruple: left double, right double, left single, right single.
	Quotes string `yaml:"quotes" json:"quotes"`
}

// DefaultOptions returns the conservative parser defaults: no raw HTML, no
// hard breaks, no typographer.
func DefaultOptions() Options {
	return Options{
		LangPrefix: DefaultLangPrefix,
		Quotes:     DefaultQuotes,
	}
}

// Validate reports option combinations that cannot be rendered.
func (o Options) Validate() error {
	if o.Typographer && utf8.RuneCountInString(o.quotes()) != 4 {
		return fmt.Errorf("quotes must hold exactly 4 characters, got %q", o.Quotes)
	}
	return nil
}

func (o Options) quotes() string {
	if o.Quotes == "" {
		return DefaultQuotes
	}
	return o.Quotes
}

func (o Options) langPrefix() string {
	if o.LangPrefix == "" {
		return DefaultLangPrefix
	}
	return o.LangPrefix
}

// Converter renders Markdown fragments to HTML fragments.
type Converter struct {
	md goldmark.Markdown
}

// New builds a Converter for the given options.
func New(opts Options) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	extensions := []goldmark.Extender{extension.Table, extension.Strikethrough}
	if opts.Typographer {
		extensions = append(extensions, extension.NewTypographer(
			extension.WithTypographicSubstitutions(quoteSubstitutions(opts.quotes())),
		))
	}

	var rendererOpts []renderer.Option
	if opts.HTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	if opts.XHTML {
		rendererOpts = append(rendererOpts, html.WithXHTML())
	}
	if opts.Breaks {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	rendererOpts = append(rendererOpts, renderer.WithNodeRenderers(
		util.Prioritized(&fencedCodeRenderer{prefix: opts.langPrefix()}, 100),
	))

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &Converter{md: md}, nil
}

// ToHTML converts one Markdown fragment on its own. Heading anchors are
// unique within the fragment only.
func (c *Converter) ToHTML(source string) (string, error) {
	return c.convert(source, NewHeadingIDs())
}

// Document returns a converter for the fragments of one document. Heading
// anchors are unique across every fragment it converts.
func (c *Converter) Document() *DocumentConverter {
	return &DocumentConverter{conv: c, ids: NewHeadingIDs()}
}

func (c *Converter) convert(source string, ids parser.IDs) (string, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(ids))
	if err := c.md.Convert([]byte(source), &buf, parser.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// DocumentConverter converts the fragments of one document in order.
// It is not safe for concurrent use.
type DocumentConverter struct {
	conv *Converter
	ids  *HeadingIDs
}

// ToHTML converts the next fragment of the document.
func (d *DocumentConverter) ToHTML(source string) (string, error) {
	return d.conv.convert(source, d.ids)
}

// quoteSubstitutions maps the quote quadruple onto the typographer's
// punctuation table. Apostrophes take the right single quote.
func quoteSubstitutions(quotes string) map[extension.TypographicPunctuation][]byte {
	glyphs := []rune(quotes)
	return map[extension.TypographicPunctuation][]byte{
		extension.LeftDoubleQuote:  []byte(string(glyphs[0])),
		extension.RightDoubleQuote: []byte(string(glyphs[1])),
		extension.LeftSingleQuote:  []byte(string(glyphs[2])),
		extension.RightSingleQuote: []byte(string(glyphs[3])),
		extension.Apostrophe:       []byte(string(glyphs[3])),
	}
}
