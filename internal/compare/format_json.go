package compare

import (
	"encoding/json"
	"strings"
)

// JSONFormatter writes a comparison as one JSON document, or with Lines set
// as one CarrierChange object per line for streaming into jq or a loader.
// Legal names keep '&' and '<' unescaped.
type JSONFormatter struct {
	Pretty bool
	Lines  bool
}

// Format renders cs. The output always ends with a newline.
func (jf *JSONFormatter) Format(cs *ComparisonSet) (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)

	if jf.Lines {
		for _, c := range cs.Changes {
			if err := enc.Encode(c); err != nil {
				return "", err
			}
		}
		return b.String(), nil
	}

	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(cs); err != nil {
		return "", err
	}
	return b.String(), nil
}
