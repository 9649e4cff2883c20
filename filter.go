package main

import (
	"fmt"
	"strings"
)

// FilterMessages partitions messages into candidates and keyword-removed
// items. A message is removed when any non-empty keyword appears
// (case-insensitively) as a substring of "subject snippet". Order is
// preserved in both outputs.
func FilterMessages(messages []Message, removeKeywords []string) ([]Message, []RejectedItem) {
	var candidates []Message
	var removed []RejectedItem

	for _, msg := range messages {
		haystack := strings.ToLower(msg.Subject + " " + msg.Snippet)
		matched := ""
		for _, kw := range removeKeywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			if strings.Contains(haystack, strings.ToLower(kw)) {
				matched = kw
				break
			}
		}
		if matched != "" {
			removed = append(removed, RejectedItem{
				Message:    msg,
				Reason:     fmt.Sprintf("matched remove keyword %q", matched),
				Confidence: 1.0,
			})
			continue
		}
		candidates = append(candidates, msg)
	}
	return candidates, removed
}
