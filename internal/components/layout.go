package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Default class names used by BasicPageLayout.
const (
	DefaultPageClass        = "basic-page"
	DefaultContainerClass   = "basic-page-container"
	DefaultIntroClass       = "basic-page-intro"
	DefaultContentGridClass = "basic-page-content-grid"
)

// LayoutFunc wraps a page. The wrapped content is available to it through
// templ.GetChildren.
type LayoutFunc func(title string) templ.Component

// BasicPageLayoutProps configures BasicPageLayout. Empty class names take the
// defaults, except HeadingClassName which is omitted.
type BasicPageLayoutProps struct {
	Title   string
	Heading string
	Intro   string
	// Layout wraps the page, e.g. the site's shell. Nil renders the page bare.
	Layout LayoutFunc

	HeadingClassName     string
	PageClassName        string
	ContainerClassName   string
	IntroClassName       string
	ContentGridClassName string
}

// BasicPageLayout renders a content page with a heading, an optional intro and
// the children in a content grid. The intro and grid are left out when empty.
func BasicPageLayout(props BasicPageLayoutProps, children templ.Component) templ.Component {
	page := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := "<div" + attr("class", or(props.PageClassName, DefaultPageClass)) + ">" +
			"<div" + attr("class", or(props.ContainerClassName, DefaultContainerClass)) + ">" +
			"<h1" + attr("class", props.HeadingClassName) + ">" + templ.EscapeString(props.Heading) + "</h1>"
		if _, err := io.WriteString(w, open); err != nil {
			return err
		}

		if props.Intro != "" {
			intro := "<div" + attr("class", or(props.IntroClassName, DefaultIntroClass)) + ">" +
				templ.EscapeString(props.Intro) + "</div>"
			if _, err := io.WriteString(w, intro); err != nil {
				return err
			}
		}

		if children != nil {
			if _, err := io.WriteString(w, "<div"+attr("class", or(props.ContentGridClassName, DefaultContentGridClass))+">"); err != nil {
				return err
			}
			// Children must not see the layout's children.
			if err := children.Render(templ.ClearChildren(ctx), w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</div>"); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</div></div>")
		return err
	})

	if props.Layout == nil {
		return page
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return props.Layout(props.Title).Render(templ.WithChildren(ctx, page), w)
	})
}

func or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
