package summary

import "strings"

// MarkerPrefix starts every summary comment body.
const MarkerPrefix = "GPT summary of "

// DefaultContextRadius is the number of patch lines kept on each side of the anchor.
const DefaultContextRadius = 5

// Marker returns the body prefix identifying the summary comment for sha.
func Marker(sha string) string {
	return MarkerPrefix + sha + ": "
}

// HasMarker reports whether any comment already carries the marker for sha.
func HasMarker(comments []Comment, sha string) bool {
	marker := Marker(sha)
	for _, c := range comments {
		if strings.HasPrefix(c.Body, marker) {
			return true
		}
	}
	return false
}

// Anchor locates the first added line of a patch and the context around it.
// Line is the index of that line in the newline-split patch (the hunk header counts as line 0).
type Anchor struct {
	Line int
	Hunk string
}

// FindAnchor returns the anchor for patch with radius lines of context before it
// and radius-1 lines after it. The window is clamped to the patch bounds.
// ok is false when the patch has no line starting with "+".
func FindAnchor(patch string, radius int) (Anchor, bool) {
	lines := strings.Split(patch, "\n")

	index := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "+") {
			index = i
			break
		}
	}
	if index < 0 {
		return Anchor{Line: -1}, false
	}

	start := max(index-radius, 0)
	end := min(index+radius, len(lines))

	return Anchor{
		Line: index,
		Hunk: strings.Join(lines[start:end], "\n"),
	}, true
}
