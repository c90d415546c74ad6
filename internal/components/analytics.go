package components

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

const (
	gtagLoaderURL  = "https://www.googletagmanager.com/gtag/js?id="
	fbeventsURL    = "https://connect.facebook.net/en_US/fbevents.js"
	pixelNoscript  = "https://www.facebook.com/tr?id=%s&ev=PageView&noscript=1"
	placeholderTag = "[PLACEHOLDER"
)

var pixelIDPattern = regexp.MustCompile(`^\d{15,16}$`)

// GoogleAnalyticsProps configures GoogleAnalytics.
type GoogleAnalyticsProps struct {
	// MeasurementID is the GA4 id, e.g. G-XXXXXXXXXX.
	MeasurementID string
	Strategy      Strategy
	Minify        bool
}

// GoogleAnalytics renders the gtag.js loader and its config call. Nothing is
// rendered for an empty or placeholder measurement id.
func GoogleAnalytics(props GoogleAnalyticsProps) templ.Component {
	id := props.MeasurementID
	if id == "" || strings.HasPrefix(id, placeholderTag) {
		return templ.NopComponent
	}
	strategy := string(props.Strategy.orDefault())

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loader := "<script async" +
			attr("src", gtagLoaderURL+url.QueryEscape(id)) +
			attr("data-strategy", strategy) + "></script>"
		if _, err := io.WriteString(w, loader); err != nil {
			return err
		}

		body := `
window.dataLayer = window.dataLayer || [];
function gtag(){dataLayer.push(arguments);}
gtag('js', new Date());
gtag('config', ` + jsString(id) + `);
`
		return inlineScript(w, attr("id", "google-analytics")+attr("data-strategy", strategy), body, props.Minify)
	})
}

// MetaPixelProps configures MetaPixel.
type MetaPixelProps struct {
	// PixelID is the 15 or 16 digit Meta pixel id.
	PixelID         string
	Strategy        Strategy
	DisablePageView bool
	Minify          bool
}

// ValidPixelID reports whether id has the shape of a Meta pixel id.
func ValidPixelID(id string) bool {
	return pixelIDPattern.MatchString(id)
}

// MetaPixel renders the fbq bootstrap and init call, plus a PageView event and
// its noscript fallback unless DisablePageView is set. Invalid ids render
// nothing.
func MetaPixel(props MetaPixelProps) templ.Component {
	id := props.PixelID
	if !ValidPixelID(id) {
		return templ.NopComponent
	}
	strategy := string(props.Strategy.orDefault())

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body strings.Builder
		body.WriteString(`
!function(f,b,e,v,n,t,s)
{if(f.fbq)return;n=f.fbq=function(){n.callMethod?
n.callMethod.apply(n,arguments):n.queue.push(arguments)};
if(!f._fbq)f._fbq=n;n.push=n;n.loaded=!0;n.version='2.0';
n.queue=[];t=b.createElement(e);t.async=!0;
t.src=v;s=b.getElementsByTagName(e)[0];
s.parentNode.insertBefore(t,s)}(window, document,'script',
`)
		body.WriteString("'" + fbeventsURL + "');\n")
		body.WriteString("fbq('init', " + jsString(id) + ");\n")
		if !props.DisablePageView {
			body.WriteString("fbq('track', 'PageView');\n")
		}

		attrs := attr("id", "meta-pixel-init") + attr("data-strategy", strategy)
		if err := inlineScript(w, attrs, body.String(), props.Minify); err != nil {
			return err
		}
		if props.DisablePageView {
			return nil
		}

		img := `<noscript><img height="1" width="1" style="display:none"` +
			attr("src", fmt.Sprintf(pixelNoscript, id)) + ` alt=""></noscript>`
		_, err := io.WriteString(w, img)
		return err
	})
}

// TrackMetaEvent returns the script statement that sends a standard pixel
// event, e.g. for an onclick handler. The call is skipped in the browser
// when the pixel is not loaded.
func TrackMetaEvent(eventName string, params map[string]any) (string, error) {
	return fbqCall("track", eventName, params)
}

// TrackMetaCustomEvent is TrackMetaEvent for custom event names.
func TrackMetaCustomEvent(eventName string, params map[string]any) (string, error) {
	return fbqCall("trackCustom", eventName, params)
}

func fbqCall(action, eventName string, params map[string]any) (string, error) {
	args := "'" + action + "', " + jsString(eventName)
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return "", fmt.Errorf("encode %s params: %w", eventName, err)
		}
		args += ", " + string(encoded)
	}
	return "if (typeof window.fbq === 'function') { fbq(" + args + "); }", nil
}
