package template

import "strings"

// Placeholders returns the names of the {name} blocks in tmpl in order of
// appearance. Unbalanced braces are skipped.
func Placeholders(tmpl string) []string {
	var names []string
	scan(tmpl, func(name string, ok bool) string {
		if ok {
			names = append(names, name)
		}
		return ""
	})
	return names
}

// Expand replaces every {name} block with resolve(name). Blocks resolve
// rejects are left in place for cleanup.
func Expand(tmpl string, resolve func(name string) (string, bool)) string {
	return scan(tmpl, func(name string, ok bool) string {
		if !ok {
			return name
		}
		if v, found := resolve(name); found {
			return v
		}
		return "{" + name + "}"
	})
}

// scan walks tmpl, calling emit for each brace block with its inner text.
// An unmatched '{' is passed through verbatim with ok=false.
func scan(tmpl string, emit func(name string, ok bool) string) string {
	var b strings.Builder
	i := 0
	for i < len(tmpl) {
		if tmpl[i] != '{' {
			b.WriteByte(tmpl[i])
			i++
			continue
		}
		j := i + 1
		depth := 1
		for j < len(tmpl) && depth > 0 {
			switch tmpl[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		if depth != 0 {
			b.WriteString(emit(tmpl[i:], false))
			break
		}
		b.WriteString(emit(strings.TrimSpace(tmpl[i+1:j-1]), true))
		i = j
	}
	return b.String()
}
