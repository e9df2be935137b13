package calls

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"dental-voice-agent/internal/vapi"
)

// StageEdge is one step of a deployment's conversational chain: a remote
// assistant id, the assistant that follows it, and the natural-language
// condition under which the platform hands the call over.
type StageEdge struct {
	AssistantID     string `json:"assistant_id"`
	NextAssistantID string `json:"next_assistant_id,omitempty"`
	Transition      string `json:"transition,omitempty"`
}

// StageChain is the ordered chain. It is deployment configuration, loaded from
// a file rather than baked into source, so variants differ only in data.
type StageChain []StageEdge

// LoadChain reads and validates a stage chain from a JSON file.
func LoadChain(path string) (StageChain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calls: read squad config %s: %w", path, err)
	}
	var chain StageChain
	if err := json.Unmarshal(data, &chain); err != nil {
		return nil, fmt.Errorf("calls: parse squad config %s: %w", path, err)
	}
	if err := chain.Validate(); err != nil {
		return nil, fmt.Errorf("calls: squad config %s: %w", path, err)
	}
	return chain, nil
}

func (c StageChain) Validate() error {
	if len(c) == 0 {
		return errors.New("at least one stage is required")
	}
	for i, e := range c {
		if e.AssistantID == "" {
			return fmt.Errorf("stage %d: assistant_id is required", i)
		}
		if e.NextAssistantID != "" && e.Transition == "" {
			return fmt.Errorf("stage %d: transition text is required when next_assistant_id is set", i)
		}
	}
	return nil
}

// SquadMembers expands the chain into the platform's squad payload, attaching
// the profile values to every stage so any assistant can interpolate them.
func (c StageChain) SquadMembers(profile map[string]string) []vapi.SquadMember {
	members := make([]vapi.SquadMember, 0, len(c))
	for _, e := range c {
		m := vapi.SquadMember{
			AssistantID:        e.AssistantID,
			AssistantOverrides: &vapi.AssistantOverrides{VariableValues: profile},
		}
		if e.NextAssistantID != "" {
			m.AssistantDestinations = []vapi.AssistantDestination{{
				Type:        "assistant",
				AssistantID: e.NextAssistantID,
				Description: e.Transition,
			}}
		}
		members = append(members, m)
	}
	return members
}
