package vapi

import (
	"encoding/json"
	"strings"
)

// Call is one snapshot of a remote call. The platform fills fields in as the
// call progresses, so everything past the id is optional; every consumer must
// do an explicit presence check instead of assuming a populated field.
type Call struct {
	ID string `json:"id"`

	StartedAt   *string `json:"startedAt,omitempty"`
	EndedAt     *string `json:"endedAt,omitempty"`
	EndedReason *string `json:"endedReason,omitempty"`

	Transcript   *string  `json:"transcript,omitempty"`
	RecordingURL *string  `json:"recordingUrl,omitempty"`
	Cost         *float64 `json:"cost,omitempty"`

	Customer *Customer `json:"customer,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

type Customer struct {
	Number string `json:"number"`
}

// Analysis is the platform's post-call analysis sub-object.
type Analysis struct {
	Summary           *string        `json:"summary,omitempty"`
	StructuredData    map[string]any `json:"structuredData,omitempty"`
	SuccessEvaluation *Evaluation    `json:"successEvaluation,omitempty"`
}

// Evaluation is the success-evaluation signal, which the platform reports as a
// string, boolean, or number depending on the assistant's rubric.
type Evaluation struct {
	raw any
}

func (e *Evaluation) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	e.raw = v
	return nil
}

func (e Evaluation) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.raw)
}

// Bool normalizes the evaluation: the string "true" (any case) is true, every
// other string is false; booleans pass through; numbers are true when non-zero.
func (e Evaluation) Bool() bool {
	switch v := e.raw.(type) {
	case string:
		return strings.EqualFold(v, "true")
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return false
	}
}

// CreateCallRequest is the outbound call creation payload: the squad of
// conversational stages, the platform number to dial from, and the callee.
type CreateCallRequest struct {
	Name          string   `json:"name"`
	Squad         Squad    `json:"squad"`
	PhoneNumberID string   `json:"phoneNumberId"`
	Customer      Customer `json:"customer"`
}

type Squad struct {
	Members []SquadMember `json:"members"`
}

// SquadMember is one conversational stage plus the transitions out of it.
type SquadMember struct {
	AssistantID           string                 `json:"assistantId"`
	AssistantDestinations []AssistantDestination `json:"assistantDestinations,omitempty"`
	AssistantOverrides    *AssistantOverrides    `json:"assistantOverrides,omitempty"`
}

// AssistantDestination carries the natural-language condition under which the
// platform hands the conversation to the next stage.
type AssistantDestination struct {
	Type        string `json:"type"`
	AssistantID string `json:"assistantId"`
	Description string `json:"description"`
}

type AssistantOverrides struct {
	VariableValues map[string]string `json:"variableValues"`
}
