package source

import "strings"

// TitleLabel converts a snake_case property name into a human-friendly label:
// tokens are split on underscores, first letter upper-cased, and rejoined
// with single spaces ("created_at" -> "Created At").
func TitleLabel(name string) string {
	if name == "" {
		return ""
	}

	words := strings.Split(name, "_")
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, strings.ToUpper(word[:1])+word[1:])
	}
	return strings.Join(segments, " ")
}
