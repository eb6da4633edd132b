package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/resolution-service/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		err          error
		wantCategory domain.Category
		wantUrgency  domain.TicketPriority
		wantSteps    int
	}{
		{
			name:         "clean json",
			text:         `{"category":"printer","urgency":"high","initialSteps":["Check the paper tray","Restart the printer"]}`,
			wantCategory: domain.CategoryPrinter,
			wantUrgency:  domain.TicketPriorityHigh,
			wantSteps:    2,
		},
		{
			name:         "json wrapped in fences",
			text:         "```json\n{\"category\":\"network\",\"urgency\":\"urgent\",\"initialSteps\":[]}\n```",
			wantCategory: domain.CategoryNetwork,
			wantUrgency:  domain.TicketPriorityUrgent,
		},
		{
			name:         "json wrapped in prose",
			text:         `Sure! Here is the classification: {"category":"email","urgency":"low","initialSteps":["Check webmail"]} Hope that helps.`,
			wantCategory: domain.CategoryEmail,
			wantUrgency:  domain.TicketPriorityLow,
			wantSteps:    1,
		},
		{
			name:         "garbage output falls back",
			text:         "I cannot classify this.",
			wantCategory: domain.CategoryGeneral,
			wantUrgency:  domain.TicketPriorityMedium,
		},
		{
			name:         "unknown category falls back, urgency kept",
			text:         `{"category":"plumbing","urgency":"high","initialSteps":[]}`,
			wantCategory: domain.CategoryGeneral,
			wantUrgency:  domain.TicketPriorityHigh,
		},
		{
			name:         "unknown urgency falls back, category kept",
			text:         `{"category":"security","urgency":"critical","initialSteps":[]}`,
			wantCategory: domain.CategorySecurity,
			wantUrgency:  domain.TicketPriorityMedium,
		},
		{
			name:         "transport error falls back",
			err:          errors.New("timeout"),
			wantCategory: domain.CategoryGeneral,
			wantUrgency:  domain.TicketPriorityMedium,
		},
		{
			name:         "blank steps dropped",
			text:         `{"category":"phone","urgency":"medium","initialSteps":["  ","Reboot the handset"]}`,
			wantCategory: domain.CategoryPhone,
			wantUrgency:  domain.TicketPriorityMedium,
			wantSteps:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := NewTriageClassifier(&stubClient{resp: textResponse(tt.text), err: tt.err}, nil)
			result := classifier.Classify(context.Background(), "subject", "description")
			if result.Category != tt.wantCategory {
				t.Errorf("category = %q, want %q", result.Category, tt.wantCategory)
			}
			if result.Urgency != tt.wantUrgency {
				t.Errorf("urgency = %q, want %q", result.Urgency, tt.wantUrgency)
			}
			if len(result.InitialSteps) != tt.wantSteps {
				t.Errorf("steps = %d, want %d", len(result.InitialSteps), tt.wantSteps)
			}
		})
	}
}
