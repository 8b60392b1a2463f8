package drift

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Pair is the comparison result for one named environment pair.
type Pair struct {
	Name    string  `json:"name"`
	RawRisk string  `json:"risk"`
	Issues  []Issue `json:"issues"`
}

// Risk returns the pair's normalized risk level.
func (p Pair) Risk() Level {
	return Normalize(p.RawRisk)
}

type pairBody struct {
	Risk   json.RawMessage `json:"risk"`
	Issues json.RawMessage `json:"issues"`
}

// Response is the body returned by the comparison API.
type Response struct {
	RawRisk string `json:"risk"`
	// Pairs keeps the order in which pair names appear in the JSON object.
	Pairs   []Pair `json:"pairs"`
	Message string `json:"message,omitempty"`
}

// Risk returns the normalized global risk.
func (r *Response) Risk() Level {
	return Normalize(r.RawRisk)
}

// UnmarshalJSON decodes the response, preserving the key order of "pairs".
// Values of unexpected types are treated as absent.
func (r *Response) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		*r = Response{}
		return nil
	}

	var top struct {
		Risk    json.RawMessage `json:"risk"`
		Pairs   json.RawMessage `json:"pairs"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}

	*r = Response{
		RawRisk: rawString(top.Risk),
		Message: rawString(top.Message),
	}

	pairs, err := decodePairs(top.Pairs)
	if err != nil {
		return fmt.Errorf("decoding pairs: %w", err)
	}
	r.Pairs = pairs
	return nil
}

// MarshalJSON writes the response in the API's shape, with "pairs" as an
// object whose keys keep their original order.
func (r Response) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"risk":`)
	if err := writeJSON(&buf, r.RawRisk); err != nil {
		return nil, err
	}
	buf.WriteString(`,"pairs":{`)
	for i, p := range r.Pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, p.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		issues := p.Issues
		if issues == nil {
			issues = []Issue{}
		}
		if err := writeJSON(&buf, struct {
			Risk   string  `json:"risk"`
			Issues []Issue `json:"issues"`
		}{p.RawRisk, issues}); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	if r.Message != "" {
		buf.WriteString(`,"message":`)
		if err := writeJSON(&buf, r.Message); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func decodePairs(data json.RawMessage) ([]Pair, error) {
	if !isObject(data) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var pairs []Pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("pair %q: %w", name, err)
		}
		pair := Pair{Name: name}
		if isObject(raw) {
			var body pairBody
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, fmt.Errorf("pair %q: %w", name, err)
			}
			pair.RawRisk = rawString(body.Risk)
			if isArray(body.Issues) {
				if err := json.Unmarshal(body.Issues, &pair.Issues); err != nil {
					return nil, fmt.Errorf("pair %q issues: %w", name, err)
				}
			}
		}
		pairs = append(pairs, pair)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return pairs, nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || raw[0] != '"' {
		return ""
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// ErrUnknownLevel is returned by Validate for risk values outside low/medium/high.
var ErrUnknownLevel = errors.New("unknown risk level")

// Validate rejects any risk or issue severity that lenient parsing would
// silently degrade to low. An absent issue severity is allowed.
func (r *Response) Validate() error {
	var errs []error
	if !Valid(r.RawRisk) {
		errs = append(errs, fmt.Errorf("%w: risk %q", ErrUnknownLevel, r.RawRisk))
	}
	for _, p := range r.Pairs {
		if !Valid(p.RawRisk) {
			errs = append(errs, fmt.Errorf("%w: pair %q risk %q", ErrUnknownLevel, p.Name, p.RawRisk))
		}
		for n, iss := range p.Issues {
			if sev := iss.RawSeverity(); sev != "" && !Valid(sev) {
				errs = append(errs, fmt.Errorf("%w: pair %q issue %d severity %q", ErrUnknownLevel, p.Name, n+1, sev))
			}
		}
	}
	return errors.Join(errs...)
}
