package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// DefaultScrollThreshold is how far, in pixels, the page must be scrolled
// before the button shows.
const DefaultScrollThreshold = 300

const scrollButtonID = "htk-scroll-to-top"

// defaultScrollStyle is applied when no class name is given. display is
// controlled by the script.
const defaultScrollStyle = "position:fixed;bottom:2rem;right:2rem;width:3rem;height:3rem;" +
	"border-radius:50%;border:none;background:var(--color-primary, #007bff);color:white;" +
	"cursor:pointer;align-items:center;justify-content:center;" +
	"box-shadow:0 2px 8px rgba(0,0,0,0.2);transition:opacity 0.3s, transform 0.3s;" +
	"opacity:1;z-index:1000;display:none"

const arrowIcon = `<svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" ` +
	`stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M18 15l-6-6-6 6"></path></svg>`

// ScrollToTopProps configures ScrollToTop. Nil pointers take the defaults.
type ScrollToTopProps struct {
	ClassName  string
	Threshold  *int
	ShowButton *bool
	Minify     bool
}

// ScrollToTop renders a hidden button that appears once the page is scrolled
// past the threshold and scrolls back to the top when clicked.
func ScrollToTop(props ScrollToTopProps) templ.Component {
	if props.ShowButton != nil && !*props.ShowButton {
		return templ.NopComponent
	}
	threshold := DefaultScrollThreshold
	if props.Threshold != nil {
		threshold = *props.Threshold
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		style, visible := defaultScrollStyle, "flex"
		if props.ClassName != "" {
			style, visible = "display:none", ""
		}

		button := `<button type="button"` +
			attr("id", scrollButtonID) +
			attr("class", props.ClassName) +
			attr("style", style) +
			attr("aria-label", "Scroll to top") +
			attr("data-threshold", strconv.Itoa(threshold)) +
			">" + arrowIcon + "</button>"
		if _, err := io.WriteString(w, button); err != nil {
			return err
		}

		body := `
(function(){
  var b = document.getElementById(` + jsString(scrollButtonID) + `);
  if (!b) return;
  var threshold = ` + strconv.Itoa(threshold) + `;
  function toggle(){ b.style.display = window.pageYOffset > threshold ? ` + jsString(visible) + ` : "none"; }
  b.addEventListener("click", function(){ window.scrollTo({top: 0, behavior: "smooth"}); });
  window.addEventListener("scroll", toggle);
  toggle();
})();
`
		return inlineScript(w, "", body, props.Minify)
	})
}
