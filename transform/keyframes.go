package transform

import (
	"strings"
	"unicode"
)

const keyframesHeader = "@keyframes"

// ExtractKeyframes scans raw CSS text for @keyframes blocks, removes them
// and returns the cleaned text together with a name -> body table. The body
// is the interior of the block verbatim, nested braces included, so it can
// be re-parsed as a standalone rule list later. A repeated name overwrites
// the earlier occurrence. Running extraction on already cleaned text is a
// no-op.
func ExtractKeyframes(src string) (string, map[string]string) {
	keyframes := make(map[string]string)

	for {
		idx := strings.Index(src, keyframesHeader)
		if idx < 0 {
			return src, keyframes
		}

		rest := src[idx+len(keyframesHeader):]
		name, open := scanKeyframeName(rest)
		if open < 0 {
			// Malformed header, leave the tail for the parser to reject.
			return src, keyframes
		}

		// Brace-depth matching: keyframe bodies contain nested blocks, so a
		// single non-recursive pattern match cannot find the closing brace.
		depth := 0
		end := -1
		for i := open; i < len(rest); i++ {
			switch rest[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			// Unbalanced braces, nothing safe to extract.
			return src, keyframes
		}

		if name != "" {
			keyframes[name] = rest[open+1 : end]
		}
		src = src[:idx] + rest[end+1:]
	}
}

// scanKeyframeName reads the animation name following the @keyframes header
// and returns it together with the offset of the opening brace, or -1 when
// the header is not followed by a braced block.
func scanKeyframeName(s string) (string, int) {
	i := 0
	for i < len(s) && unicode.IsSpace(rune(s[i])) {
		i++
	}
	start := i
	for i < len(s) && s[i] != '{' && !unicode.IsSpace(rune(s[i])) {
		i++
	}
	name := s[start:i]
	for i < len(s) && unicode.IsSpace(rune(s[i])) {
		i++
	}
	if i >= len(s) || s[i] != '{' {
		return name, -1
	}
	return name, i
}
