package aiclients

import "strings"

// ExtractJSON trims an LLM reply down to its JSON payload: markdown fences
// and surrounding prose are stripped, then the text is cut to the outermost
// balanced object or array. Returns "" when no balanced value is found.
func ExtractJSON(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatchingBrace(response, objStart); end != -1 {
			return strings.TrimSpace(response[objStart : end+1])
		}
		return ""
	}
	if arrStart != -1 {
		if end := findMatchingBracket(response, arrStart); end != -1 {
			return strings.TrimSpace(response[arrStart : end+1])
		}
	}
	return ""
}

func findMatchingBrace(s string, start int) int {
	return findMatching(s, start, '{', '}')
}

func findMatchingBracket(s string, start int) int {
	return findMatching(s, start, '[', ']')
}

func findMatching(s string, start int, openCh, closeCh byte) int {
	if start >= len(s) || s[start] != openCh {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
