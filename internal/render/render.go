// Package render encodes response values as JSON, YAML or XML.
package render

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	XML  Format = "xml"
)

// XMLRoot names the document element XML output is wrapped in.
const XMLRoot = "response"

var ErrUnknownFormat = errors.New("unknown format")

// MIME types offered during content negotiation, in preference order.
var MIMETypes = []string{
	"application/json",
	"application/yaml",
	"application/x-yaml",
	"text/yaml",
	"application/xml",
	"text/xml",
}

// ParseFormat accepts a format name or extension. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "xml":
		return XML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FromMIME maps a negotiated media type to a format, defaulting to JSON.
func FromMIME(mime string) Format {
	switch mime {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return YAML
	case "application/xml", "text/xml":
		return XML
	}
	return JSON
}

func (f Format) ContentType() string {
	switch f {
	case YAML:
		return "application/yaml; charset=utf-8"
	case XML:
		return "application/xml; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

// Encode writes v to w. XML output is wrapped in a <response> element and ends with a newline
// like the other formats do.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case XML:
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.EncodeElement(v, xml.StartElement{Name: xml.Name{Local: XMLRoot}}); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
