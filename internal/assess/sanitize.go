package assess

import "strings"

// SanitizeReply isolates the JSON payload from a raw generation reply.
// Models wrap JSON in code fences or prose despite instructions; this
// strips fences and otherwise scans for the first top-level {...} or [...]
// span using bracket-depth matching, so braces inside string values do not
// terminate the scan early. If no bracketed span exists the trimmed text is
// returned unchanged and the validator will reject it. Never fails.
func SanitizeReply(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return text
	}

	if stripped, ok := stripCodeFence(text); ok {
		text = stripped
	}

	if span, ok := firstJSONSpan(text); ok {
		return span
	}

	return text
}

// stripCodeFence removes a surrounding ``` fence, including a language tag
// such as ```json on the opening line.
func stripCodeFence(text string) (string, bool) {
	if !strings.HasPrefix(text, "```") {
		return text, false
	}

	body := text[len("```"):]
	if newline := strings.IndexByte(body, '\n'); newline >= 0 {
		// Drop the rest of the opening fence line (language tag).
		body = body[newline+1:]
	}

	if closing := strings.LastIndex(body, "```"); closing >= 0 {
		body = body[:closing]
	}

	return strings.TrimSpace(body), true
}

// firstJSONSpan finds the first balanced top-level object or array. The scan
// is string-aware: brackets inside quoted values, including escaped quotes,
// do not affect the depth count. A span that opens but never closes is
// returned to its end so a repair pass can still salvage truncated output.
func firstJSONSpan(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	// Unterminated span, likely truncated output.
	return text[start:], true
}
