package crop

import (
	"fmt"
	"testing"
)

func validRaw() []string {
	return []string{"90", "42", "43", "20.8", "82", "6.5", "202.9"}
}

func TestParseInputsValid(t *testing.T) {
	vec, msgs := ParseInputs(validRaw())
	if len(msgs) != 0 {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	want := FeatureVector{90, 42, 43, 20.8, 82, 6.5, 202.9}
	if vec != want {
		t.Fatalf("expected %v, got %v", want, vec)
	}
}

func TestParseInputsMissingField(t *testing.T) {
	for i, f := range Fields {
		raw := validRaw()
		raw[i] = ""
		_, msgs := ParseInputs(raw)
		if len(msgs) != 1 {
			t.Fatalf("%s: expected one message, got %v", f.Name, msgs)
		}
		want := f.Name + " is required"
		if msgs[0] != want {
			t.Fatalf("expected %q, got %q", want, msgs[0])
		}
	}
}

func TestParseInputsAllMissing(t *testing.T) {
	_, msgs := ParseInputs(make([]string, len(Fields)))
	if len(msgs) != len(Fields) {
		t.Fatalf("expected %d messages, got %v", len(Fields), msgs)
	}
	for i, f := range Fields {
		if msgs[i] != f.Name+" is required" {
			t.Fatalf("message %d out of field order: %q", i, msgs[i])
		}
	}
}

func TestParseInputsOutOfRange(t *testing.T) {
	for i, f := range Fields {
		for _, bad := range []float64{f.Min - 1, f.Max + 1} {
			raw := validRaw()
			raw[i] = fmt.Sprintf("%g", bad)
			_, msgs := ParseInputs(raw)
			if len(msgs) != 1 {
				t.Fatalf("%s=%g: expected one message, got %v", f.Name, bad, msgs)
			}
			want := fmt.Sprintf("%s must be between %g and %g", f.Name, f.Min, f.Max)
			if msgs[0] != want {
				t.Fatalf("expected %q, got %q", want, msgs[0])
			}
		}
	}
}

func TestParseInputsBoundsInclusive(t *testing.T) {
	raw := validRaw()
	raw[0] = "0"
	raw[1] = "140"
	_, msgs := ParseInputs(raw)
	if len(msgs) != 0 {
		t.Fatalf("bounds should be inclusive, got %v", msgs)
	}
}

func TestParseInputsNonNumericShortCircuits(t *testing.T) {
	raw := validRaw()
	raw[3] = "warm"
	raw[5] = "" // missing field must not be reported once parsing fails
	_, msgs := ParseInputs(raw)
	if len(msgs) != 1 || msgs[0] != MsgInvalidNumbers {
		t.Fatalf("expected generic parse message, got %v", msgs)
	}
}

func TestParseInputsWhitespace(t *testing.T) {
	// A padded number parses; a blank-only value is a parse failure
	// rather than a missing field.
	raw := validRaw()
	raw[0] = " 90 "
	vec, msgs := ParseInputs(raw)
	if len(msgs) != 0 {
		t.Fatalf("padded number should parse, got %v", msgs)
	}
	if vec[0] != 90 {
		t.Fatalf("expected 90, got %v", vec[0])
	}

	raw = validRaw()
	raw[4] = "   "
	_, msgs = ParseInputs(raw)
	if len(msgs) != 1 || msgs[0] != MsgInvalidNumbers {
		t.Fatalf("expected generic parse message for blank input, got %v", msgs)
	}
}

func TestParseInputsMissingMasksRange(t *testing.T) {
	raw := validRaw()
	raw[0] = ""
	raw[6] = "500" // out of range, but presence errors come first
	_, msgs := ParseInputs(raw)
	if len(msgs) != 1 || msgs[0] != "Nitrogen is required" {
		t.Fatalf("expected only the required message, got %v", msgs)
	}
}
