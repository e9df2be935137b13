package calls

// CallRecord is the durable local representation of one outbound call attempt
// and its latest known outcome.
//
// Invariants:
// - IDs are unique within the store; they come from the remote platform.
// - Timestamp and PatientData are set once at creation and never mutated.
// - Once Results is populated, Status mirrors Results.Status exactly.
type CallRecord struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number,omitempty"`

	// Timestamp is the local creation time, "2006-01-02 15:04:05".
	Timestamp string `json:"timestamp"`

	Status Status `json:"status"`

	// PatientData is a value snapshot of the profile in effect when the call
	// was created. Later form submissions must never change it.
	PatientData map[string]string `json:"patient_data,omitempty"`

	// Results is the latest reconciled analysis; absent until the first fetch.
	Results *CallAnalysis `json:"results,omitempty"`
}

// Status is a derived call state. The named constants cover the normal
// lifecycle, but any raw end reason from the platform ("customer-did-not-answer",
// "assistant-error", ...) passes through verbatim, so this is an open set.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// CallAnalysis is the normalized view of one remote snapshot. It is recomputed
// from scratch on every fetch, never merged incrementally, so every field
// reflects exactly what the platform reported this time around.
//
// Nullable fields keep their json keys without omitempty so the API emits
// explicit nulls, matching what clients were built against.
type CallAnalysis struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	Summary           *string        `json:"summary"`
	StructuredData    map[string]any `json:"structured_data"`
	EndedReason       *string        `json:"ended_reason"`
	SuccessEvaluation *bool          `json:"success_evaluation"`

	StartedAt *string `json:"started_at"`
	EndedAt   *string `json:"ended_at"`

	// Duration is "{m}m {s}s" when both timestamps parse, the literal
	// "Unknown" when either is malformed, and null when either is missing.
	Duration *string `json:"duration"`

	Transcript   *string  `json:"transcript"`
	RecordingURL *string  `json:"recording_url"`
	Cost         *float64 `json:"cost"`

	StartedAtFormatted string `json:"started_at_formatted,omitempty"`
	EndedAtFormatted   string `json:"ended_at_formatted,omitempty"`
}

const recordTimestampLayout = "2006-01-02 15:04:05"
