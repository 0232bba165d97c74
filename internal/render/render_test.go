package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/paginater/internal/exposure"
)

func sample() *exposure.Map {
	m := exposure.NewMap()
	m.Set("title", "Go & paging")
	m.Set("tags", []any{"go", "api"})
	return m
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": JSON, "JSON": JSON, "yml": YAML, " yaml ": YAML, "xml": XML}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFromMIME(t *testing.T) {
	assert.Equal(t, YAML, FromMIME("application/x-yaml"))
	assert.Equal(t, XML, FromMIME("text/xml"))
	assert.Equal(t, JSON, FromMIME("application/json"))
	assert.Equal(t, JSON, FromMIME(""))
}

func TestEncode(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{JSON, "{\"title\":\"Go \\u0026 paging\",\"tags\":[\"go\",\"api\"]}\n"},
		{YAML, "title: Go & paging\ntags:\n  - go\n  - api\n"},
		{XML, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<response>\n  <title>Go &amp; paging</title>\n  <tags>\n    <item>go</item>\n    <item>api</item>\n  </tags>\n</response>\n"},
	}
	for _, tc := range tests {
		t.Run(string(tc.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, tc.format, sample()))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, Format("csv"), sample())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json; charset=utf-8", JSON.ContentType())
	assert.Equal(t, "application/yaml; charset=utf-8", YAML.ContentType())
	assert.Equal(t, "application/xml; charset=utf-8", XML.ContentType())
}
