package mapurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_IframeSnippetIsUnwrapped(t *testing.T) {
	input := `<iframe src="https://www.google.com/maps/embed?pb=!1m18!2m3" width="600" height="450"></iframe>`

	result := Normalize(input)

	assert.True(t, result.Embeddable)
	assert.Equal(t, "https://www.google.com/maps/embed?pb=!1m18!2m3", result.EmbedURL)
}

func TestNormalize_EmbedURLPassesThrough(t *testing.T) {
	tests := []string{
		"https://www.google.com/maps/embed?pb=!1m18",
		"https://maps.google.com/maps?q=bekasi&output=embed",
	}

	for _, input := range tests {
		result := Normalize(input)
		assert.True(t, result.Embeddable, input)
		assert.Equal(t, input, result.EmbedURL, input)
	}
}

func TestNormalize_CoordinateLink(t *testing.T) {
	result := Normalize("https://www.google.com/maps/@-6.123,107.456,15z")

	assert.True(t, result.Embeddable)
	assert.Contains(t, result.EmbedURL, "-6.123")
	assert.Contains(t, result.EmbedURL, "107.456")
	assert.Contains(t, result.EmbedURL, "output=embed")

	// Coordinate is lon/lat
	assert.NotNil(t, result.Coordinate)
	assert.Equal(t, 107.456, result.Coordinate.Lon())
	assert.Equal(t, -6.123, result.Coordinate.Lat())
}

func TestNormalize_QueryLink(t *testing.T) {
	result := Normalize("https://maps.google.com/maps?q=Harapan+Indah&hl=id")

	assert.True(t, result.Embeddable)
	assert.Equal(t, "https://www.google.com/maps?q=Harapan+Indah&output=embed", result.EmbedURL)
}

func TestNormalize_PlaceLink(t *testing.T) {
	result := Normalize("https://www.google.com/maps/place/Grand+Galaxy+Park/data=!3m1")

	assert.True(t, result.Embeddable)
	assert.Equal(t, "https://www.google.com/maps?q=Grand+Galaxy+Park&output=embed", result.EmbedURL)
}

func TestNormalize_ShortLinkFallsBack(t *testing.T) {
	result := Normalize("https://maps.app.goo.gl/AbCdEf123")

	assert.False(t, result.Embeddable)
	assert.Equal(t, "https://maps.app.goo.gl/AbCdEf123", result.EmbedURL)
	assert.Nil(t, result.Coordinate)
}

func TestNormalize_IframeWithUnrecognizedSrcFallsBack(t *testing.T) {
	result := Normalize(`<iframe src="https://maps.app.goo.gl/short"></iframe>`)

	assert.False(t, result.Embeddable)
	assert.Equal(t, "https://maps.app.goo.gl/short", result.EmbedURL)
}

func TestNormalize_RuleOrder(t *testing.T) {
	// A link carrying both a coordinate and a q parameter uses the
	// coordinate rule first
	result := Normalize("https://www.google.com/maps/@-6.2,106.8,12z?q=ignored")

	assert.True(t, result.Embeddable)
	assert.Contains(t, result.EmbedURL, "-6.2,106.8")
}

func TestNormalize_GarbageInputNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not a url at all",
		"<iframe>",
		"<iframe src=\"\">",
		"?q=",
		"/maps/place/",
		"@,",
	}

	for _, input := range inputs {
		assert.NotPanics(t, func() {
			result := Normalize(input)
			assert.False(t, result.Embeddable, input)
		}, input)
	}
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	result := Normalize("  https://maps.app.goo.gl/xyz  ")

	assert.Equal(t, "https://maps.app.goo.gl/xyz", result.EmbedURL)
}
