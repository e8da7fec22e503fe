package usecase

import "strings"

const contextSeparator = "\n\n"

// CombineContext joins vector context and stats context, vector first, dropping empty parts.
// The result is empty only when both inputs are empty.
func CombineContext(vectorContext, statsContext string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{vectorContext, statsContext} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, contextSeparator)
}
