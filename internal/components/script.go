// Package components renders the site's shared page fragments as templ
// components: analytics tags, the scroll-to-top button and the basic page
// layout.
package components

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

// Strategy is the Next.js script loading strategy. It is carried through to
// the rendered tag as data-strategy.
type Strategy string

const (
	AfterInteractive  Strategy = "afterInteractive"
	LazyOnload        Strategy = "lazyOnload"
	BeforeInteractive Strategy = "beforeInteractive"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case AfterInteractive, LazyOnload, BeforeInteractive:
		return true
	}
	return false
}

func (s Strategy) orDefault() Strategy {
	if s == "" {
		return AfterInteractive
	}
	return s
}

const jsMediaType = "application/javascript"

var scriptMinifier = func() *minify.M {
	m := minify.New()
	m.AddFunc(jsMediaType, js.Minify)
	return m
}()

// MinifyScript minifies an inline script body.
func MinifyScript(src string) (string, error) {
	out, err := scriptMinifier.String(jsMediaType, src)
	if err != nil {
		return "", fmt.Errorf("minify script: %w", err)
	}
	return out, nil
}

// jsString renders s as a JavaScript string literal. encoding/json escapes
// <, > and & so the literal cannot close the surrounding script tag.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// attr renders ` name="value"` with value escaped, or nothing when value is
// empty.
func attr(name, value string) string {
	if value == "" {
		return ""
	}
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

// inlineScript writes <script attrs>body</script>, minifying body on request.
func inlineScript(w io.Writer, attrs, body string, minified bool) error {
	if minified {
		small, err := MinifyScript(body)
		if err != nil {
			return err
		}
		body = small
	} else {
		body = "\n" + strings.TrimSpace(body) + "\n"
	}
	_, err := io.WriteString(w, "<script"+attrs+">"+body+"</script>")
	return err
}
