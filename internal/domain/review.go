package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Severity is the severity reported for an issue. Only "high" changes how an
// issue is presented; every other value renders the same way.
type Severity string

// SeverityHigh marks an issue that should stand out.
const SeverityHigh Severity = "high"

// IsHigh reports whether the severity is exactly "high". Variants such as
// "High" or " high" are treated like any other severity.
func (s Severity) IsHigh() bool {
	return s == SeverityHigh
}

// Issue is a single finding returned by the analysis service.
type Issue struct {
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
}

// Score is one named metric on the 0-10 scale.
type Score struct {
	Metric string
	Value  float64
}

// Scores is an ordered metric mapping. The order is the order in which the
// service wrote the keys of the JSON object.
type Scores []Score

// Get returns the value for metric.
func (s Scores) Get(metric string) (float64, bool) {
	for _, sc := range s {
		if sc.Metric == metric {
			return sc.Value, true
		}
	}
	return 0, false
}

// Metrics returns the metric names in order.
func (s Scores) Metrics() []string {
	names := make([]string, 0, len(s))
	for _, sc := range s {
		names = append(names, sc.Metric)
	}
	return names
}

// UnmarshalJSON decodes a JSON object while keeping key order.
// A repeated key keeps its first position and takes the last value.
func (s *Scores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("scores: expected object, got %v", tok)
	}

	out := Scores{}
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("scores: expected key, got %v", keyTok)
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("scores[%q]: %w", key, err)
		}
		if i, seen := index[key]; seen {
			out[i].Value = v
			continue
		}
		index[key] = len(out)
		out = append(out, Score{Metric: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}

// MarshalJSON encodes the scores as a JSON object in order.
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sc := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sc.Metric)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(sc.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ReviewRequest is the body posted to the analysis service.
// ID identifies the submission locally and is never sent.
type ReviewRequest struct {
	ID       string `json:"-"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// ReviewResult is the analysis returned by the service.
type ReviewResult struct {
	Summary         string   `json:"summary"`
	Scores          Scores   `json:"scores"`
	Issues          []Issue  `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// HasIssues returns true if the result contains any issues.
func (r *ReviewResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// HighSeverityCount returns the number of high severity issues.
func (r *ReviewResult) HighSeverityCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity.IsHigh() {
			n++
		}
	}
	return n
}
