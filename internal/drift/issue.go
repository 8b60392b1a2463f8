package drift

import (
	"bytes"
	"encoding/json"
)

// IssueKind distinguishes the two shapes an issue may arrive in.
type IssueKind int

const (
	// PlainIssue is a bare JSON string.
	PlainIssue IssueKind = iota
	// StructuredIssue is any other JSON value, normally an object with
	// severity, message and title fields.
	StructuredIssue
)

// Issue is a single drift issue reported for a pair.
type Issue struct {
	Kind     IssueKind
	Message  string
	Title    string
	severity string
	raw      json.RawMessage
}

// PlainMessage builds a plain string issue.
func PlainMessage(text string) Issue {
	return Issue{Kind: PlainIssue, Message: text}
}

// Structured builds a structured issue. severity may be empty.
func Structured(severity, message, title string) Issue {
	iss := Issue{Kind: StructuredIssue, Message: message, Title: title, severity: severity}
	obj := map[string]string{}
	if severity != "" {
		obj["severity"] = severity
	}
	if message != "" {
		obj["message"] = message
	}
	if title != "" {
		obj["title"] = title
	}
	iss.raw, _ = json.Marshal(obj)
	return iss
}

// UnmarshalJSON accepts either a JSON string or any other JSON value.
// Only string-typed message, title and severity fields are honored.
func (i *Issue) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*i = PlainMessage(text)
		return nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return err
	}
	*i = Issue{Kind: StructuredIssue, raw: json.RawMessage(compact.Bytes())}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Numbers, arrays and null carry no fields; they render as JSON.
		return nil
	}
	i.Message = stringField(fields, "message")
	i.Title = stringField(fields, "title")
	i.severity = stringField(fields, "severity")
	return nil
}

// MarshalJSON writes the issue back in the shape it was received.
func (i Issue) MarshalJSON() ([]byte, error) {
	if i.Kind == PlainIssue {
		return json.Marshal(i.Message)
	}
	if len(i.raw) == 0 {
		return []byte("null"), nil
	}
	return i.raw, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Text returns the display string: the plain message, or the structured
// message, falling back to the title and then to the compact JSON value.
func (i Issue) Text() string {
	if i.Kind == PlainIssue {
		return i.Message
	}
	if i.Message != "" {
		return i.Message
	}
	if i.Title != "" {
		return i.Title
	}
	if len(i.raw) == 0 {
		return "null"
	}
	return string(i.raw)
}

// Severity returns the issue's own severity when it is present and valid.
func (i Issue) Severity() (Level, bool) {
	if i.Kind == PlainIssue || !Valid(i.severity) {
		return "", false
	}
	return Normalize(i.severity), true
}

// RawSeverity returns the severity string exactly as received.
func (i Issue) RawSeverity() string {
	return i.severity
}

// AnnotationLevel resolves the level used for the issue's CI annotation:
// explicit severity, then keyword inference, then the pair's risk.
func (i Issue) AnnotationLevel(pairRisk Level) Level {
	if sev, ok := i.Severity(); ok {
		return sev
	}
	return Infer(i.Text(), pairRisk)
}
