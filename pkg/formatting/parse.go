package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed reports content that is not JSON, bare or fenced.
var ErrParseFailed = errors.New("failed to parse response")

// Models sometimes wrap their JSON in a markdown fence despite the
// instructions. Capture the fenced body, with or without a language tag.
var fencedJSON = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// Parse unmarshals model output into T, trying the raw content first
// and the contents of a code fence second.
func Parse[T any](content string) (T, error) {
	var out T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &out); err == nil {
		return out, nil
	}

	if m := fencedJSON.FindStringSubmatch(content); len(m) >= 2 {
		body := strings.TrimSpace(m[1])
		if err := json.Unmarshal([]byte(body), &out); err == nil {
			return out, nil
		}
	}

	return out, fmt.Errorf("%w: %s", ErrParseFailed, content)
}
