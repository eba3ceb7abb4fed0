package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls a JSON object of type T out of raw model output. It
// tolerates markdown fences, prose around the object, comments, and numbers
// written as ".8". If validator is non-nil it runs on the decoded value.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := firstObject(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	block = repairJSON(block)

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

var scorePattern = regexp.MustCompile(`-?\d+(?:\.\d+)?|-?\.\d+`)

// ExtractScore reads the first number in raw and checks it lies in lo..hi.
// Models asked to "respond only with the number" still add words around it.
func ExtractScore(raw string, lo, hi float64) (float64, error) {
	m := scorePattern.FindString(raw)
	if m == "" {
		return 0, fmt.Errorf("%w: no number in %q", ErrInvalidOutput, truncate(raw, 40))
	}
	if strings.HasPrefix(m, ".") || strings.HasPrefix(m, "-.") {
		m = strings.Replace(m, ".", "0.", 1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%w: score %g outside %g..%g", ErrInvalidOutput, v, lo, hi)
	}
	return v, nil
}

// Number decodes from a JSON number or a numeric string. Models fill
// "score" slots with either.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	v, err := ExtractScore(s, -1e9, 1e9)
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// stripCodeFences drops the ``` marker lines and keeps what they enclose.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// jsonScanner walks s tracking whether the cursor is inside a string
// literal, honoring escapes.
type jsonScanner struct {
	s        string
	inString bool
	escaped  bool
}

// step advances over s[i] and reports whether that byte is structural
// (outside any string literal, and not a quote).
func (sc *jsonScanner) step(i int) bool {
	c := sc.s[i]
	switch {
	case sc.escaped:
		sc.escaped = false
		return false
	case sc.inString && c == '\\':
		sc.escaped = true
		return false
	case c == '"':
		sc.inString = !sc.inString
		return false
	default:
		return !sc.inString
	}
}

// firstObject returns the first balanced {...} block, or "".
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	sc := &jsonScanner{s: s}
	depth := 0
	for i := start; i < len(s); i++ {
		if !sc.step(i) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON removes // and /* */ comments and rewrites ".5"/"-.5" as
// "0.5"/"-0.5", touching nothing inside string literals.
func repairJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	sc := &jsonScanner{s: s}

	for i := 0; i < len(s); i++ {
		if !sc.step(i) {
			b.WriteByte(s[i])
			continue
		}
		c := s[i]
		next := byte(0)
		if i+1 < len(s) {
			next = s[i+1]
		}

		switch {
		case c == '/' && next == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
		case c == '/' && next == '*':
			end := strings.Index(s[i+2:], "*/")
			if end == -1 {
				return b.String()
			}
			i += end + 3
		case c == '.' && isDigit(next) && leadsNumber(s, i):
			b.WriteString("0.")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// leadsNumber reports whether the '.' at i starts a number, judging by the
// last non-space byte before it.
func leadsNumber(s string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch s[j] {
		case ' ', '\n', '\r', '\t':
			continue
		case ':', ',', '[', '{', '-':
			return true
		default:
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
