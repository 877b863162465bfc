package format

import (
	"encoding/xml"
)

// xmlCodec implements Codec for XML.
type xmlCodec struct{}

// XML returns an indented XML codec.
func XML() Codec {
	return &xmlCodec{}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as indented XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	return xml.MarshalIndent(v, "", "  ")
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
