package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ClassifyError marks a per-message classification failure. The batch
// scheduler logs it and drops the message; it never fails a whole run.
type ClassifyError struct {
	MessageID string
	Err       error
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("classify message %s: %v", e.MessageID, e.Err)
}

func (e *ClassifyError) Unwrap() error { return e.Err }

const defaultInstruction = "判斷這封郵件是否為需要加入行事曆的行程（會議、繳交期限、活動、約診等）。"

// oracleVerdict is the raw JSON shape the oracle is asked to return.
// Date/time come in as pointers so JSON null, a missing key, and the
// literal string "null" can all be told apart from a real value.
type oracleVerdict struct {
	ShouldAdd     bool    `json:"should_add"`
	Confidence    float64 `json:"confidence"`
	SuggestedDate *string `json:"suggested_date"`
	SuggestedTime *string `json:"suggested_time"`
	Reason        string  `json:"reason"`
}

// ClassifyMessage runs one oracle call for one message and returns the
// normalized verdict. Where the oracle leaves the date or time empty (or
// answers the literal "null"), the heuristic extractor's value is
// substituted so callers never see a "null" sentinel.
func ClassifyMessage(ctx context.Context, oracle Oracle, msg Message, instruction string, now time.Time) (ClassificationVerdict, string, error) {
	prompt := buildClassifyPrompt(msg, instruction)

	raw, err := oracle.Generate(ctx, prompt)
	if err != nil {
		return ClassificationVerdict{}, "", &ClassifyError{MessageID: msg.ID, Err: err}
	}

	jsonText, ok := extractJSONObject(raw)
	if !ok {
		return ClassificationVerdict{}, "", &ClassifyError{MessageID: msg.ID, Err: fmt.Errorf("no JSON object in response: %s", truncateForLog(raw))}
	}

	var parsed oracleVerdict
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return ClassificationVerdict{}, "", &ClassifyError{MessageID: msg.ID, Err: fmt.Errorf("parsing verdict: %w", err)}
	}

	text := msg.Subject + " " + msg.Snippet
	verdict := ClassificationVerdict{
		ShouldAdd:  parsed.ShouldAdd,
		Confidence: parsed.Confidence,
		Reason:     strings.TrimSpace(parsed.Reason),
	}

	source := "oracle"
	if date, ok := optionalString(parsed.SuggestedDate); ok {
		verdict.SuggestedDate = date
	} else {
		verdict.SuggestedDate = ExtractDate(text, msg.ReceivedAt, now)
		source = "heuristic"
	}
	if t, ok := optionalString(parsed.SuggestedTime); ok {
		verdict.SuggestedTime = t
	} else {
		verdict.SuggestedTime = ExtractTime(text)
	}

	return verdict, source, nil
}

func buildClassifyPrompt(msg Message, instruction string) string {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		instruction = defaultInstruction
	}

	return fmt.Sprintf(`%s

郵件主旨: %s
郵件內容: %s

Respond with a single JSON object only (no markdown):
{"should_add": true/false, "confidence": 0.0-1.0, "suggested_date": "YYYY-MM-DD" or null, "suggested_time": "HH:MM" or null, "reason": "..."}`,
		instruction, msg.Subject, msg.Snippet)
}

// extractJSONObject returns the first balanced {...} substring, skipping
// brace characters inside JSON string literals.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// optionalString reports whether the oracle actually provided a value:
// nil, "", and the literal "null" all count as absent.
func optionalString(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	if v == "" || strings.EqualFold(v, "null") {
		return "", false
	}
	return v, true
}

func truncateForLog(s string) string {
	if len(s) > 256 {
		return s[:256] + fmt.Sprintf("... [truncated, total_length=%d]", len(s))
	}
	return s
}
