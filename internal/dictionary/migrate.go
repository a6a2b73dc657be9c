package dictionary

import (
	"fmt"
	"io"
	"regexp"

	"gopkg.in/yaml.v2"
)

// bareKey matches object keys written without quotes, e.g. `{tares: 0.1`
var bareKey = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// MigrateLegacyWeights rewrites the legacy frequency file, an object literal
// with unquoted keys, as a plain YAML mapping sorted by word
func MigrateLegacyWeights(r io.Reader, w io.Writer) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy weights: %w", err)
	}
	quoted := bareKey.ReplaceAll(data, []byte(`$1"$2":`))
	weights, err := ParseWeights(quoted)
	if err != nil {
		return 0, err
	}
	out, err := yaml.Marshal(weights)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal weights: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return 0, fmt.Errorf("failed to write weights: %w", err)
	}
	return len(weights), nil
}
