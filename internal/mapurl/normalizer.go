// Package mapurl rewrites arbitrary map-service links into a form that can
// be rendered inside an inline frame. Admins paste whatever the map provider
// gave them: a bare embed URL, a full iframe snippet, a coordinate link, a
// place link or an opaque shortened URL. Normalization is best effort; an
// unrecognized shape is returned unchanged with Embeddable false so callers
// fall back to an "open externally" affordance instead of a broken frame.
package mapurl

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Result is the outcome of normalizing one map link.
type Result struct {
	// EmbedURL is the best-effort embeddable URL, or the cleaned input when
	// no known pattern matched.
	EmbedURL string `json:"embed_url"`

	// Embeddable reports whether EmbedURL is actually safe to put in a frame.
	Embeddable bool `json:"embeddable"`

	// Coordinate holds the extracted lon/lat point for coordinate-bearing
	// links, nil otherwise.
	Coordinate *orb.Point `json:"coordinate,omitempty"`
}

var (
	iframeSrcPattern  = regexp.MustCompile(`src="([^"]+)"`)
	coordinatePattern = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
)

// Normalize rewrites raw into an embeddable map URL. It is pure, synchronous
// and total: any input degrades to the non-embeddable fallback rather than
// failing. Rules are tried in order and the first match wins.
func Normalize(raw string) Result {
	working := strings.TrimSpace(raw)

	// Unwrap pasted iframe snippets down to their src attribute
	if strings.Contains(working, "<iframe") {
		if match := iframeSrcPattern.FindStringSubmatch(working); match != nil {
			working = match[1]
		}
	}

	// Already an embed URL
	if strings.Contains(working, "/embed") || strings.Contains(working, "output=embed") {
		return Result{EmbedURL: working, Embeddable: true}
	}

	// Coordinate-bearing link: @lat,lng
	if match := coordinatePattern.FindStringSubmatch(working); match != nil {
		lat, latErr := strconv.ParseFloat(match[1], 64)
		lng, lngErr := strconv.ParseFloat(match[2], 64)
		if latErr == nil && lngErr == nil {
			point := orb.Point{lng, lat}
			return Result{
				EmbedURL:   fmt.Sprintf("https://www.google.com/maps?q=%s,%s&z=15&output=embed", match[1], match[2]),
				Embeddable: true,
				Coordinate: &point,
			}
		}
	}

	// Search link: ?q=<query>
	if idx := strings.Index(working, "?q="); idx >= 0 {
		query := working[idx+len("?q="):]
		if amp := strings.Index(query, "&"); amp >= 0 {
			query = query[:amp]
		}
		if query != "" {
			return Result{
				EmbedURL:   fmt.Sprintf("https://www.google.com/maps?q=%s&output=embed", query),
				Embeddable: true,
			}
		}
	}

	// Place link: /maps/place/<name>/...
	if idx := strings.Index(working, "/maps/place/"); idx >= 0 {
		place := working[idx+len("/maps/place/"):]
		if slash := strings.Index(place, "/"); slash >= 0 {
			place = place[:slash]
		}
		if place != "" {
			place = strings.ReplaceAll(place, "+", " ")
			return Result{
				EmbedURL:   fmt.Sprintf("https://www.google.com/maps?q=%s&output=embed", url.QueryEscape(place)),
				Embeddable: true,
			}
		}
	}

	// Unrecognized shape, e.g. a shortened link. Callers must not embed it.
	return Result{EmbedURL: working, Embeddable: false}
}
