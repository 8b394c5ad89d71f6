package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeFormData JSON-encodes each form field value into a string suitable
// for form submission. HTML escaping is disabled so multi-byte and markup
// characters survive the round trip as-is.
func EncodeFormData(data map[string]interface{}) (map[string]string, error) {
	out := make(map[string]string, len(data))
	for k, v := range data {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode form field %q: %w", k, err)
		}
		// Encoder appends a trailing newline.
		out[k] = strings.TrimSuffix(buf.String(), "\n")
	}
	return out, nil
}
