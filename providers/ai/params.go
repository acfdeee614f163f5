package ai

import "fmt"

// Param is a recognized generation parameter key. The enumeration is closed:
// keys outside it are rejected at configuration time, never silently dropped
// or passed through to a vendor. Each adapter documents how every key maps to
// its vendor's wire format (including "ignored" where the vendor lacks the
// concept).
type Param string

const (
	ParamMaxTokens        Param = "maxTokens"        // int: output token cap
	ParamTemperature      Param = "temperature"      // float: sampling temperature
	ParamTopP             Param = "topP"             // float: nucleus sampling mass
	ParamTopK             Param = "topK"             // int: top-k sampling cutoff
	ParamStopSequences    Param = "stopSequences"    // []string: generation stop strings
	ParamCandidateCount   Param = "candidateCount"   // int: number of completions
	ParamFrequencyPenalty Param = "frequencyPenalty" // float: repetition penalty
	ParamPresencePenalty  Param = "presencePenalty"  // float: new-topic penalty
)

type paramKind int

const (
	kindInt paramKind = iota
	kindFloat
	kindStrings
)

// paramKinds is the authoritative enumeration: membership defines which keys
// are recognized, the value defines the accepted Go value shape.
var paramKinds = map[Param]paramKind{
	ParamMaxTokens:        kindInt,
	ParamTemperature:      kindFloat,
	ParamTopP:             kindFloat,
	ParamTopK:             kindInt,
	ParamStopSequences:    kindStrings,
	ParamCandidateCount:   kindInt,
	ParamFrequencyPenalty: kindFloat,
	ParamPresencePenalty:  kindFloat,
}

// Params is a set of generation parameters keyed by the closed [Param]
// enumeration. It carries values as supplied by the caller; adapters read
// them through the typed accessors when building vendor payloads.
type Params map[Param]any

// Validate checks every entry against the recognized key set and its expected
// value shape. It fails with a [ValidationError] on the first unknown key or
// mistyped value.
func (p Params) Validate() error {
	for key, value := range p {
		kind, ok := paramKinds[key]
		if !ok {
			return &ValidationError{Message: fmt.Sprintf("unsupported parameter key %q", key)}
		}

		switch kind {
		case kindInt:
			if _, ok := intValue(value); !ok {
				return &ValidationError{Message: fmt.Sprintf("parameter %q requires an integer value, got %T", key, value)}
			}
		case kindFloat:
			if _, ok := floatValue(value); !ok {
				return &ValidationError{Message: fmt.Sprintf("parameter %q requires a numeric value, got %T", key, value)}
			}
		case kindStrings:
			if _, ok := stringsValue(value); !ok {
				return &ValidationError{Message: fmt.Sprintf("parameter %q requires a []string value, got %T", key, value)}
			}
		}
	}

	return nil
}

// Clone returns a shallow copy of the set. A nil receiver clones to nil.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a copy of p with every entry of overrides applied on top.
func (p Params) Merge(overrides Params) Params {
	if len(overrides) == 0 {
		return p.Clone()
	}
	out := make(Params, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Int returns the integer value for key, if present and integral.
func (p Params) Int(key Param) (int, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	return intValue(v)
}

// Float returns the numeric value for key, if present.
func (p Params) Float(key Param) (float64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	return floatValue(v)
}

// Strings returns the string-slice value for key, if present.
func (p Params) Strings(key Param) ([]string, bool) {
	v, ok := p[key]
	if !ok {
		return nil, false
	}
	return stringsValue(v)
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		// Accept integral floats so values decoded from JSON still work.
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringsValue(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case string:
		return []string{s}, true
	}
	return nil, false
}
