package vapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateCall_ReturnsRemoteID(t *testing.T) {
	var got CreateCallRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/call" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"call-123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", testLogger())
	call, err := c.CreateCall(context.Background(), CreateCallRequest{
		Name:          "test_call",
		PhoneNumberID: "pn-1",
		Customer:      Customer{Number: "+15550001111"},
		Squad: Squad{Members: []SquadMember{
			{AssistantID: "a1"},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if call.ID != "call-123" {
		t.Fatalf("expected call-123, got %q", call.ID)
	}
	if got.Customer.Number != "+15550001111" {
		t.Fatalf("customer number not forwarded, got %q", got.Customer.Number)
	}
	if got.PhoneNumberID != "pn-1" {
		t.Fatalf("phoneNumberId not forwarded, got %q", got.PhoneNumberID)
	}
}

func TestCreateCall_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"phoneNumberId must be a UUID"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", testLogger())
	_, err := c.CreateCall(context.Background(), CreateCallRequest{})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetCall_DecodesOptionalFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/call/call-7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "call-7",
			"startedAt": "2025-01-01T00:00:00Z",
			"endedAt": "2025-01-01T00:02:30Z",
			"endedReason": "completed",
			"analysis": {"summary": "ok", "successEvaluation": "TRUE"}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", testLogger())
	call, err := c.GetCall(context.Background(), "call-7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if call.StartedAt == nil || *call.StartedAt != "2025-01-01T00:00:00Z" {
		t.Fatalf("startedAt not decoded: %v", call.StartedAt)
	}
	if call.Analysis == nil || call.Analysis.SuccessEvaluation == nil {
		t.Fatalf("analysis not decoded")
	}
	if !call.Analysis.SuccessEvaluation.Bool() {
		t.Fatalf("expected TRUE to normalize to true")
	}
	if call.Transcript != nil {
		t.Fatalf("absent transcript should stay nil")
	}
}

func TestGetCall_UnknownIDIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Call not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", testLogger())
	if _, err := c.GetCall(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error for unknown call id")
	}
}

func TestEvaluation_Normalization(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{`"true"`, true},
		{`"TRUE"`, true},
		{`"True"`, true},
		{`"false"`, false},
		{`"FALSE"`, false},
		{`"maybe"`, false},
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
	}
	for _, tc := range cases {
		var e Evaluation
		if err := json.Unmarshal([]byte(tc.raw), &e); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if e.Bool() != tc.want {
			t.Fatalf("%s: expected %v", tc.raw, tc.want)
		}
	}
}

func TestEvaluation_NullStaysAbsent(t *testing.T) {
	var a Analysis
	if err := json.Unmarshal([]byte(`{"successEvaluation": null}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.SuccessEvaluation != nil {
		t.Fatalf("null evaluation should stay absent")
	}
}
