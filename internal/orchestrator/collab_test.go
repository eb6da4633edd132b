package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spec-kit/resolution-service/internal/domain"
	"github.com/spec-kit/resolution-service/internal/llm"
)

func TestMatchedDomains(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []domain.Category
	}{
		{
			name: "single domain",
			text: "My printer shows a paper jam error",
			want: []domain.Category{domain.CategoryPrinter},
		},
		{
			name: "two domains",
			text: "I cannot print over the office wifi",
			want: []domain.Category{domain.CategoryNetwork, domain.CategoryPrinter},
		},
		{
			name: "no domains",
			text: "Something is wrong",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchedDomains(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("MatchedDomains = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MatchedDomains[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsCrossDomain(t *testing.T) {
	if !IsCrossDomain("printer fails over the vpn", domain.CategoryPrinter) {
		t.Error("vpn keyword should make a printer issue cross-domain")
	}
	if IsCrossDomain("printer out of toner", domain.CategoryPrinter) {
		t.Error("pure printer issue is not cross-domain")
	}
	if !IsCrossDomain("email password locked out", domain.CategoryEmail) {
		t.Error("security keywords should make an email issue cross-domain")
	}
}

func TestAdviseCollectsOpinions(t *testing.T) {
	client := &stubClient{fn: func(req llm.Request) (*llm.Response, error) {
		return textResponse("Check the DNS settings first."), nil
	}}
	collab := NewCollaborator(client, nil)

	advisory := collab.Advise(context.Background(), domain.CategoryPrinter, "cannot print over the office wifi and vpn")
	if advisory == "" {
		t.Fatal("expected an advisory note")
	}
	if !strings.Contains(advisory, "Noah (Network Support)") {
		t.Errorf("advisory should name the network persona, got %q", advisory)
	}
	if strings.Contains(advisory, "Paula") {
		t.Errorf("primary persona must not advise itself, got %q", advisory)
	}
}

func TestAdviseDegradesOnFailure(t *testing.T) {
	client := &stubClient{err: errors.New("timeout")}
	collab := NewCollaborator(client, nil)

	if advisory := collab.Advise(context.Background(), domain.CategoryPrinter, "wifi printing issue"); advisory != "" {
		t.Errorf("failed advisory calls must degrade to empty, got %q", advisory)
	}
}

func TestAdviseCapsAdvisors(t *testing.T) {
	calls := 0
	client := &stubClient{fn: func(req llm.Request) (*llm.Response, error) {
		calls++
		return textResponse("opinion"), nil
	}}
	collab := NewCollaborator(client, nil)

	collab.Advise(context.Background(), domain.CategoryGeneral, "email wifi laptop printer phone password trouble")
	if calls > 2 {
		t.Errorf("advisor calls = %d, want at most 2", calls)
	}
}
