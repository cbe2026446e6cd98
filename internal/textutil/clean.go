// Package textutil cleans free-text model output before it is reused
// downstream, where markdown wrapping would otherwise leak into the next
// prompt.
package textutil

import "strings"

// StripMarkdownFences removes a single ``` ... ``` wrapper from model output.
// The opening fence may carry a language tag. Text without a complete fence
// pair passes through unchanged apart from whitespace trimming.
func StripMarkdownFences(text string) string {
	text = strings.TrimSpace(text)
	body, ok := strings.CutPrefix(text, "```")
	if !ok {
		return text
	}

	// Content starts on the line after the opening backticks; anything still
	// on the opening line is a language tag.
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return text
	}
	body = body[nl+1:]

	closing := strings.LastIndex(body, "```")
	if closing < 0 {
		return text
	}
	return strings.TrimSuffix(body[:closing], "\n")
}

// CleanModelText strips fences and trims whitespace from a model response so
// the result can be forwarded as a prompt.
func CleanModelText(text string) string {
	return strings.TrimSpace(StripMarkdownFences(text))
}
