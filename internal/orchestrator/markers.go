package orchestrator

import (
	"regexp"
	"strings"

	"github.com/spec-kit/resolution-service/internal/domain"
)

// Control markers the model may embed in free text. They signal an intended
// transition, are inspected by the safety gate, and are always stripped
// before a message is persisted or displayed.
const (
	MarkerEscalate      = "ESCALATE_TO_HUMAN"
	MarkerClose         = "CLOSE_TICKET_CONFIRMED"
	MarkerHandoffPrefix = "HANDOFF_TO:"
)

// MarkerKind tags a parsed control marker.
type MarkerKind string

const (
	MarkerKindNone     MarkerKind = ""
	MarkerKindEscalate MarkerKind = "escalate"
	MarkerKindClose    MarkerKind = "close"
	MarkerKindHandoff  MarkerKind = "handoff"
)

// Marker is a parsed control marker.
type Marker struct {
	Kind MarkerKind
	// Target is the persona category for handoff markers.
	Target domain.Category
}

var markerRe = regexp.MustCompile(`(ESCALATE_TO_HUMAN|CLOSE_TICKET_CONFIRMED|HANDOFF_TO:(\w+))`)

// ParseMarker inspects raw model output for a control marker. A marker is
// honored only when it appears exactly once and at the end of the message;
// anything else (repeated markers, markers mid-text, unknown handoff
// categories) is ignored, which fails toward inaction.
func ParseMarker(raw string) (Marker, bool) {
	matches := markerRe.FindAllStringSubmatch(raw, -1)
	if len(matches) != 1 {
		return Marker{}, false
	}

	match := matches[0]
	token := match[1]
	idx := strings.LastIndex(raw, token)
	tail := strings.TrimSpace(raw[idx+len(token):])
	if tail != "" {
		return Marker{}, false
	}

	switch {
	case token == MarkerEscalate:
		return Marker{Kind: MarkerKindEscalate}, true
	case token == MarkerClose:
		return Marker{Kind: MarkerKindClose}, true
	case strings.HasPrefix(token, MarkerHandoffPrefix):
		category := strings.ToLower(match[2])
		if !domain.ValidCategory(category) {
			return Marker{}, false
		}
		return Marker{Kind: MarkerKindHandoff, Target: domain.Category(category)}, true
	}
	return Marker{}, false
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Clean removes every control marker from raw model output along with any
// excess blank lines left behind. The cleaned form is what gets persisted
// and shown to the user; the unstripped form is what the gate inspected.
func Clean(raw string) string {
	cleaned := markerRe.ReplaceAllString(raw, "")
	cleaned = blankRunRe.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
