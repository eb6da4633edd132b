package orchestrator

import (
	"fmt"
	"strings"

	"github.com/spec-kit/resolution-service/internal/domain"
)

// RenderHistory flattens a conversation into "speaker: text" lines, most
// recent last, bounded by window. Agent names come from the lookup map;
// unknown agents render as "Agent".
func RenderHistory(msgs []domain.Message, agentNames map[string]string, window int) string {
	if window > 0 && len(msgs) > window {
		msgs = msgs[len(msgs)-window:]
	}
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		speaker := "Customer"
		if msg.FromAgent() {
			speaker = "Agent"
			if msg.AgentID != nil {
				if name, ok := agentNames[*msg.AgentID]; ok {
					speaker = name
				}
			}
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, strings.TrimSpace(msg.Body)))
	}
	return strings.Join(lines, "\n")
}

// LastAgentMessage returns the most recent agent-authored message, or nil.
func LastAgentMessage(msgs []domain.Message) *domain.Message {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].FromAgent() {
			return &msgs[i]
		}
	}
	return nil
}
