package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("img-bytes"))

	t.Run("valid png data URL", func(t *testing.T) {
		ct, data, ok := parseDataURL("data:image/png;base64," + payload)
		assert.True(t, ok)
		assert.Equal(t, "image/png", ct)
		assert.Equal(t, []byte("img-bytes"), data)
	})

	t.Run("plain URL passes through", func(t *testing.T) {
		_, _, ok := parseDataURL("https://example.com/cover.png")
		assert.False(t, ok)
	})

	t.Run("empty string", func(t *testing.T) {
		_, _, ok := parseDataURL("")
		assert.False(t, ok)
	})

	t.Run("missing content type", func(t *testing.T) {
		_, _, ok := parseDataURL("data:;base64," + payload)
		assert.False(t, ok)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, ok := parseDataURL("data:image/png;base64,!!not-base64!!")
		assert.False(t, ok)
	})
}

func TestIsCoverKey(t *testing.T) {
	assert.True(t, isCoverKey("covers/abc.png"))
	assert.False(t, isCoverKey("covers/"))
	assert.False(t, isCoverKey("https://example.com/covers/abc.png"))
	assert.False(t, isCoverKey(""))
}
