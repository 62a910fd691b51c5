package layout

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// Printer writes HTML, escaping text and attribute values. The first write
// error is kept and every later call is skipped.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter creates a Printer over w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Raw writes trusted markup
func (p *Printer) Raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// Text writes escaped text
func (p *Printer) Text(s string) {
	p.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped
func (p *Printer) Attr(name, value string) {
	p.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Flag writes a boolean attribute when on is set
func (p *Printer) Flag(name string, on bool) {
	if on {
		p.Raw(" " + name)
	}
}

// Element writes <tag attrs>text</tag>
func (p *Printer) Element(tag, class, text string) {
	p.Raw("<" + tag)
	if class != "" {
		p.Attr("class", class)
	}
	p.Raw(">")
	p.Text(text)
	p.Raw("</" + tag + ">")
}

// Render writes a child component
func (p *Printer) Render(ctx context.Context, c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

// Err returns the first write error
func (p *Printer) Err() error {
	return p.err
}

// Href builds a link to path with the given query
func Href(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
