package orchestrator

import (
	"testing"

	"github.com/spec-kit/resolution-service/internal/domain"
)

func TestParseMarker(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantOK     bool
		wantKind   MarkerKind
		wantTarget domain.Category
	}{
		{
			name:     "escalate at end",
			raw:      "This needs hands-on work.\nESCALATE_TO_HUMAN",
			wantOK:   true,
			wantKind: MarkerKindEscalate,
		},
		{
			name:     "close at end",
			raw:      "Great, closing now.\nCLOSE_TICKET_CONFIRMED",
			wantOK:   true,
			wantKind: MarkerKindClose,
		},
		{
			name:       "handoff with valid category",
			raw:        "This is a printing problem.\nHANDOFF_TO:printer",
			wantOK:     true,
			wantKind:   MarkerKindHandoff,
			wantTarget: domain.CategoryPrinter,
		},
		{
			name:   "marker mid text ignored",
			raw:    "ESCALATE_TO_HUMAN is what I would do, but let's try one more thing.",
			wantOK: false,
		},
		{
			name:   "repeated markers ignored",
			raw:    "CLOSE_TICKET_CONFIRMED\nCLOSE_TICKET_CONFIRMED",
			wantOK: false,
		},
		{
			name:   "mixed markers ignored",
			raw:    "ESCALATE_TO_HUMAN\nCLOSE_TICKET_CONFIRMED",
			wantOK: false,
		},
		{
			name:   "unknown handoff category ignored",
			raw:    "Passing you along.\nHANDOFF_TO:gardening",
			wantOK: false,
		},
		{
			name:   "no marker",
			raw:    "Try restarting the router and tell me what happens.",
			wantOK: false,
		},
		{
			name:     "trailing whitespace tolerated",
			raw:      "Done here.\nESCALATE_TO_HUMAN\n  ",
			wantOK:   true,
			wantKind: MarkerKindEscalate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker, ok := ParseMarker(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseMarker ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if marker.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", marker.Kind, tt.wantKind)
			}
			if marker.Target != tt.wantTarget {
				t.Errorf("target = %q, want %q", marker.Target, tt.wantTarget)
			}
		})
	}
}

func TestCleanStripsMarkers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "single marker stripped",
			raw:  "All set on my side.\nCLOSE_TICKET_CONFIRMED",
			want: "All set on my side.",
		},
		{
			name: "handoff marker stripped",
			raw:  "Handing over.\n\nHANDOFF_TO:network",
			want: "Handing over.",
		},
		{
			name: "every occurrence stripped",
			raw:  "ESCALATE_TO_HUMAN first\nESCALATE_TO_HUMAN",
			want: "first",
		},
		{
			name: "blank runs collapsed",
			raw:  "line one\n\n\nCLOSE_TICKET_CONFIRMED\n\n\nline two",
			want: "line one\n\nline two",
		},
		{
			name: "plain text untouched",
			raw:  "Check the cable, please.",
			want: "Check the cable, please.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
