// Package reclassify converts unstructured line-oriented text into
// markdown using ordered line-level heuristics. It is the alternate entry
// point used when no structured project model exists, e.g. for prose
// coming back from a text-generation model.
package reclassify

import "strings"

type headingRule struct {
	prefix string // matched case-insensitively against the trimmed line
	markup string
}

// headingRules is scanned top to bottom; the first match wins. Order is
// part of the contract, so this stays an ordered table rather than a set
// of independent conditionals.
var headingRules = []headingRule{
	{"introduction", "# Introduction"},
	{"installation", "## Installation"},
	{"usage", "## Usage"},
	{"license", "## License"},
	{"authors", "## Authors"},
	{"credits", "## Credits"},
	{"acknowledgments", "## Acknowledgments"},
	{"features", "## Features"},
	{"how to contribute", "## How to Contribute"},
	{"tests", "## Tests"},
}

// Reclassify rewrites raw text line by line into section headings, bullet
// lists, code fences, links and paragraphs. A single boolean tracks
// whether the emitter is inside a fenced code block.
func Reclassify(input string) string {
	var out []string
	insideCodeBlock := false

	for _, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)

		if markup, ok := matchHeading(line); ok {
			out = append(out, markup)
			continue
		}

		if content, ok := matchBullet(line); ok {
			out = append(out, "- "+content)
			continue
		}

		if isInlineCode(line) {
			out = append(out, line)
			continue
		}

		if strings.HasPrefix(raw, "    ") {
			if !insideCodeBlock {
				out = append(out, "```")
				insideCodeBlock = true
			}
			out = append(out, line)
			continue
		}
		if strings.HasPrefix(line, "```") {
			out = append(out, line)
			insideCodeBlock = !insideCodeBlock
			continue
		}

		// A non-code line while inside a block closes the fence, then the
		// line is classified normally.
		if insideCodeBlock {
			out = append(out, "```")
			insideCodeBlock = false
		}

		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			out = append(out, "["+line+"]("+line+")")
			continue
		}

		out = append(out, line)
	}

	if insideCodeBlock {
		out = append(out, "```")
	}

	return strings.Join(out, "\n")
}

func matchHeading(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, rule := range headingRules {
		if strings.HasPrefix(lower, rule.prefix) {
			return rule.markup, true
		}
	}
	return "", false
}

func matchBullet(line string) (string, bool) {
	for _, marker := range []string{"-", "*", "•"} {
		rest, ok := strings.CutPrefix(line, marker)
		if !ok {
			continue
		}
		if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		return strings.TrimLeft(rest, " \t"), true
	}
	return "", false
}

func isInlineCode(line string) bool {
	return len(line) >= 2 &&
		strings.HasPrefix(line, "`") &&
		strings.HasSuffix(line, "`") &&
		!strings.HasPrefix(line, "```")
}
