// Package format provides content-type aware marshaling for carrier reports.
package format

import (
	"fmt"
	"sort"
	"strings"
)

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// builtinCodecs returns the codecs selectable by name.
func builtinCodecs() map[string]Codec {
	return map[string]Codec{
		"json":    JSON(),
		"yaml":    YAML(),
		"xml":     XML(),
		"msgpack": MessagePack(),
	}
}

// Lookup returns the codec registered under name (case-insensitive).
func Lookup(name string) (Codec, error) {
	codecs := builtinCodecs()
	if c, ok := codecs[strings.ToLower(name)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	codecs := builtinCodecs()
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
