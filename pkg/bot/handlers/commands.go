package handlers

import "strings"

// parseAddCommand splits "/add term - translation" into its parts.
func parseAddCommand(text string) (term, translation string, ok bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, "/add"))
	parts := strings.SplitN(rest, " - ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	term = strings.TrimSpace(parts[0])
	translation = strings.TrimSpace(parts[1])
	if term == "" || translation == "" {
		return "", "", false
	}
	return term, translation, true
}

// parseNewSetCommand splits "/newset name: term1, term2" into a set
// name and its member terms.
func parseNewSetCommand(text string) (name string, terms []string, ok bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, "/newset"))
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return "", nil, false
	}
	name = strings.TrimSpace(parts[0])
	if name == "" {
		return "", nil, false
	}
	for _, term := range strings.Split(parts[1], ",") {
		term = strings.TrimSpace(term)
		if term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return "", nil, false
	}
	return name, terms, true
}

// parseScopeArg extracts an optional word set name from commands like
// "/review fruit". An empty result means the whole vocabulary.
func parseScopeArg(text, command string) string {
	return strings.TrimSpace(strings.TrimPrefix(text, command))
}
