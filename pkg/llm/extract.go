package llm

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractJSON locates a JSON array or object inside raw completion text. It
// prefers the interior of a ```json fenced block, otherwise operates on the
// whole text, then slices from the first '[' or '{' to the last ']' or '}'
// and validates the result.
//
// This is a best-effort heuristic: it does not balance brackets, so it will
// mis-parse JSON embedded inside prose that contains unrelated trailing
// braces. Extraction succeeds whenever the outermost bracket pair spans
// exactly the intended payload, which holds for every completion the prompts
// in this repository ask for.
func ExtractJSON(text string) (json.RawMessage, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return nil, false
	}

	end := strings.LastIndex(text, "]")
	if e := strings.LastIndex(text, "}"); e > end {
		end = e
	}
	if end < start {
		return nil, false
	}

	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

// QueryJSON performs a single completion attempt and extracts its JSON
// payload. Stages that have their own fallback path (profile extraction,
// billing synthesis) use this instead of the full validated loop.
func QueryJSON(ctx context.Context, c Completer, prompt string, maxTokens int) (json.RawMessage, bool) {
	raw, err := c.Complete(ctx, prompt, maxTokens)
	if err != nil {
		return nil, false
	}
	return ExtractJSON(raw)
}
