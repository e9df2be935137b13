package calls

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dental-voice-agent/internal/vapi"
)

const durationUnknown = "Unknown"

const formattedTimestampLayout = "2006-01-02 15:04:05 UTC"

// Reconciler maps remote call snapshots to local records. Each run fetches a
// fresh snapshot, derives the status from scratch, and upserts the result;
// nothing depends on the record's previous state.
type Reconciler struct {
	client Client
	store  *Store
	clock  func() time.Time
	log    *slog.Logger
}

func NewReconciler(client Client, store *Store, log *slog.Logger) *Reconciler {
	return &Reconciler{client: client, store: store, clock: time.Now, log: log}
}

// Reconcile fetches the call's current snapshot, derives its analysis, and
// merges it into the store. An id unknown to the store gets a record
// synthesized on the fly rather than an error.
func (r *Reconciler) Reconcile(ctx context.Context, callID string) (*CallAnalysis, error) {
	call, err := r.client.GetCall(ctx, callID)
	if err != nil {
		r.log.Error("call fetch failed", "call_id", callID, "err", err)
		return nil, &RemoteError{Op: "fetch", CallID: callID, Err: err}
	}

	analysis := r.buildAnalysis(callID, call)

	rec := CallRecord{
		ID:        callID,
		Timestamp: r.clock().Format(recordTimestampLayout),
		Status:    analysis.Status,
		Results:   analysis,
	}
	if call.Customer != nil && call.Customer.Number != "" {
		rec.PhoneNumber = call.Customer.Number
	}
	r.store.Upsert(rec)

	return analysis, nil
}

// DeriveStatus maps one snapshot to a status. Priority order, first match
// wins: scheduled by default, in_progress once a start timestamp exists, then
// the end reason takes over. "completed" consults the success evaluation when
// present; any other non-empty end reason passes through verbatim.
func DeriveStatus(call *vapi.Call) Status {
	status := StatusScheduled

	if call.StartedAt != nil && *call.StartedAt != "" {
		status = StatusInProgress
	}

	if call.EndedReason != nil {
		switch {
		case *call.EndedReason == "completed":
			if eval, ok := successEvaluation(call); ok {
				if eval {
					status = StatusCompleted
				} else {
					status = StatusFailed
				}
			} else {
				status = StatusCompleted
			}
		case *call.EndedReason != "":
			status = Status(*call.EndedReason)
		}
	}
	return status
}

func successEvaluation(call *vapi.Call) (value, present bool) {
	if call.Analysis == nil || call.Analysis.SuccessEvaluation == nil {
		return false, false
	}
	return call.Analysis.SuccessEvaluation.Bool(), true
}

func (r *Reconciler) buildAnalysis(callID string, call *vapi.Call) *CallAnalysis {
	a := &CallAnalysis{
		ID:             callID,
		Status:         DeriveStatus(call),
		StructuredData: map[string]any{},
		EndedReason:    call.EndedReason,
		StartedAt:      call.StartedAt,
		EndedAt:        call.EndedAt,
		Transcript:     call.Transcript,
		RecordingURL:   call.RecordingURL,
		Cost:           call.Cost,
	}

	if call.Analysis != nil {
		a.Summary = call.Analysis.Summary
		if call.Analysis.StructuredData != nil {
			a.StructuredData = call.Analysis.StructuredData
		}
		if call.Analysis.SuccessEvaluation != nil {
			b := call.Analysis.SuccessEvaluation.Bool()
			a.SuccessEvaluation = &b
		}
	}

	if a.StartedAt != nil && *a.StartedAt != "" && a.EndedAt != nil && *a.EndedAt != "" {
		start, startErr := time.Parse(time.RFC3339, *a.StartedAt)
		end, endErr := time.Parse(time.RFC3339, *a.EndedAt)
		if startErr != nil || endErr != nil {
			r.log.Error("duration computation failed", "call_id", callID,
				"started_at", *a.StartedAt, "ended_at", *a.EndedAt)
			unknown := durationUnknown
			a.Duration = &unknown
		} else {
			secs := int(end.Sub(start).Seconds())
			d := fmt.Sprintf("%dm %ds", secs/60, secs%60)
			a.Duration = &d
			a.StartedAtFormatted = start.UTC().Format(formattedTimestampLayout)
			a.EndedAtFormatted = end.UTC().Format(formattedTimestampLayout)
		}
	}

	return a
}
