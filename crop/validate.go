package crop

import (
	"fmt"
	"strconv"
	"strings"
)

// MsgInvalidNumbers is returned alone when any non-empty input fails
// numeric parsing. Parse failures mask presence and range checks.
const MsgInvalidNumbers = "Please ensure all inputs are valid numbers"

// ParseInputs validates the raw form values, given in field order.
// It returns either a complete in-range feature vector, or a non-empty
// list of messages in field order. It never does both.
func ParseInputs(raw []string) (FeatureVector, []string) {
	var vec FeatureVector
	if len(raw) != len(Fields) {
		return vec, []string{MsgInvalidNumbers}
	}

	var present [NumFeatures]bool
	for i, s := range raw {
		if s == "" {
			continue
		}
		// Surrounding whitespace is tolerated, but a blank-padded empty
		// value is a parse failure, not a missing field.
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return vec, []string{MsgInvalidNumbers}
		}
		vec[i] = v
		present[i] = true
	}

	var msgs []string
	for i, f := range Fields {
		if !present[i] {
			msgs = append(msgs, f.Name+" is required")
		}
	}
	if len(msgs) > 0 {
		return vec, msgs
	}

	for i, f := range Fields {
		if vec[i] < f.Min || vec[i] > f.Max {
			msgs = append(msgs, fmt.Sprintf("%s must be between %g and %g", f.Name, f.Min, f.Max))
		}
	}
	return vec, msgs
}
