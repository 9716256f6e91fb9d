package ir

import "strings"

// NewSourceUnit splits text into lines, accepting both LF and CRLF endings.
// Lines keep a trailing '\r' so linebreak checks can see it.
func NewSourceUnit(filename, text string) SourceUnit {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return SourceUnit{Filename: filename, Text: text, Lines: lines}
}
