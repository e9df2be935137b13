package calls

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"dental-voice-agent/internal/vapi"
)

// Client is the remote calling platform surface the call services depend on.
type Client interface {
	CreateCall(ctx context.Context, req vapi.CreateCallRequest) (*vapi.Call, error)
	GetCall(ctx context.Context, id string) (*vapi.Call, error)
}

// Initiator starts outbound calls: it validates the input, expands the
// configured stage chain into a squad request, and records the new call as
// scheduled.
type Initiator struct {
	client        Client
	store         *Store
	chain         StageChain
	phoneNumberID string
	clock         func() time.Time
	log           *slog.Logger
}

func NewInitiator(client Client, store *Store, chain StageChain, phoneNumberID string, log *slog.Logger) *Initiator {
	return &Initiator{
		client:        client,
		store:         store,
		chain:         chain,
		phoneNumberID: phoneNumberID,
		clock:         time.Now,
		log:           log,
	}
}

// Initiate places one outbound call and returns the remote-assigned call id.
// Validation happens before any remote side effect; a remote failure leaves
// the store untouched.
func (in *Initiator) Initiate(ctx context.Context, phoneNumber string, profile map[string]string) (string, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return "", ErrPhoneRequired
	}
	if err := ValidateProfile(profile); err != nil {
		return "", err
	}

	snapshot := copyProfile(profile)
	req := vapi.CreateCallRequest{
		Name:          "test_call",
		Squad:         vapi.Squad{Members: in.chain.SquadMembers(snapshot)},
		PhoneNumberID: in.phoneNumberID,
		Customer:      vapi.Customer{Number: phoneNumber},
	}

	call, err := in.client.CreateCall(ctx, req)
	if err != nil {
		in.log.Error("call initiation failed", "phone_number", phoneNumber, "err", err)
		return "", &RemoteError{Op: "create", Err: err}
	}

	in.log.Info("call initiated", "call_id", call.ID, "phone_number", phoneNumber)

	in.store.Upsert(CallRecord{
		ID:          call.ID,
		PhoneNumber: phoneNumber,
		Timestamp:   in.clock().Format(recordTimestampLayout),
		Status:      StatusScheduled,
		PatientData: snapshot,
	})
	return call.ID, nil
}
