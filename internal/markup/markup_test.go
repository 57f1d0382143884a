package markup

import (
	"strings"
	"testing"
)

func mustConverter(t *testing.T, opts Options) *Converter {
	t.Helper()
	conv, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return conv
}

func TestToHTML(t *testing.T) {
	tests := []struct {
		name         string
		opts         Options
		source       string
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "heading gets an anchor id",
			opts:         DefaultOptions(),
			source:       "## Installation\n",
			wantContains: []string{`<h2 id="installation">Installation</h2>`},
		},
		{
			name:         "raw html omitted by default",
			opts:         DefaultOptions(),
			source:       "<div>hi</div>\n",
			wantContains: []string{"raw HTML omitted"},
			wantAbsent:   []string{"<div>"},
		},
		{
			name:         "raw html passes through when enabled",
			opts:         Options{HTML: true},
			source:       "<div>hi</div>\n",
			wantContains: []string{"<div>hi</div>"},
		},
		{
			name:         "soft breaks kept without breaks option",
			opts:         DefaultOptions(),
			source:       "first\nsecond\n",
			wantContains: []string{"<p>first\nsecond</p>"},
			wantAbsent:   []string{"<br"},
		},
		{
			name:         "breaks converts newlines",
			opts:         Options{Breaks: true},
			source:       "first\nsecond\n",
			wantContains: []string{"first<br>"},
		},
		{
			name:         "xhtml closes void tags",
			opts:         Options{Breaks: true, XHTML: true},
			source:       "first\nsecond\n",
			wantContains: []string{"first<br />"},
		},
		{
			name:         "default language prefix",
			opts:         DefaultOptions(),
			source:       "```go\nfmt.Println(1 < 2)\n```\n",
			wantContains: []string{`<pre><code class="language-go">fmt.Println(1 &lt; 2)`, "</code></pre>"},
		},
		{
			name:         "custom language prefix",
			opts:         Options{LangPrefix: "lang-"},
			source:       "```sh\nmake\n```\n",
			wantContains: []string{`<code class="lang-sh">make`},
		},
		{
			name:         "fenced block without language",
			opts:         DefaultOptions(),
			source:       "```\nplain\n```\n",
			wantContains: []string{"<pre><code>plain\n</code></pre>"},
		},
		{
			name:         "typographer uses default quotes",
			opts:         Options{Typographer: true},
			source:       "Say \"hello\" now\n",
			wantContains: []string{"“hello”"},
		},
		{
			name:         "typographer uses configured quotes",
			opts:         Options{Typographer: true, Quotes: "«»‹›"},
			source:       "Say \"hello\" now\n",
			wantContains: []string{"«hello»"},
		},
		{
			name:         "quotes untouched without typographer",
			opts:         DefaultOptions(),
			source:       "Say \"hello\" now\n",
			wantContains: []string{"&quot;hello&quot;"},
		},
		{
			name:         "tables are rendered",
			opts:         DefaultOptions(),
			source:       "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := mustConverter(t, tt.opts)
			got, err := conv.ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want it to contain %q", got, want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("ToHTML() = %q, should not contain %q", got, absent)
				}
			}
		})
	}
}

func TestToHTML_Deterministic(t *testing.T) {
	conv := mustConverter(t, Options{HTML: true, Breaks: true, Typographer: true})
	source := "# Title\n\nSome \"quoted\" text\nwith a break.\n"

	first, err := conv.ToHTML(source)
	if err != nil {
		t.Fatal(err)
	}
	second, err := conv.ToHTML(source)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("ToHTML() not deterministic:\n%q\n%q", first, second)
	}
}

func TestNew_InvalidQuotes(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"too few glyphs", Options{Typographer: true, Quotes: "“”"}, true},
		{"too many glyphs", Options{Typographer: true, Quotes: "“”‘’x"}, true},
		{"ignored without typographer", Options{Quotes: "x"}, false},
		{"empty falls back to default", Options{Typographer: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
