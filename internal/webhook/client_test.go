package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marcus/bookmodal/internal/models"
)

func testSubmission() models.Submission {
	return models.Submission{
		ID:          "sub-1",
		SubmittedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		Snapshot: models.NewSnapshot(models.BookingDraft{
			Name:           "Jane Doe",
			Email:          "jane@example.com",
			TreatmentID:    "cleaning",
			TreatmentLabel: "Cleaning",
			TimeSlotID:     "morning",
			TimeSlotLabel:  "Morning",
		}),
	}
}

func TestSendSignsBody(t *testing.T) {
	var gotEvent Event
	var gotSig string
	var bodyOK bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotSig = r.Header.Get(SignatureHeader)
		bodyOK = Verify("s3cret", body, gotSig)
		_ = json.Unmarshal(body, &gotEvent)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "s3cret")
	if err := c.Send(context.Background(), testSubmission()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotSig == "" {
		t.Fatal("signature header missing")
	}
	if !bodyOK {
		t.Error("signature did not verify against body")
	}
	if gotEvent.Type != "booking.requested" {
		t.Errorf("event type = %q", gotEvent.Type)
	}
	if gotEvent.Booking.ID != "sub-1" || gotEvent.Booking.TreatmentLabel != "Cleaning" {
		t.Errorf("booking payload = %+v", gotEvent.Booking)
	}
}

func TestSendWithoutSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(SignatureHeader) != "" {
			t.Error("unexpected signature header without secret")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "").Submit(context.Background(), testSubmission()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
}

func TestSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "").Send(context.Background(), testSubmission()); err == nil {
		t.Error("expected error on 502")
	}
}

func TestVerify(t *testing.T) {
	body := []byte(`{"a":1}`)
	sig := Sign("k", body)

	if !Verify("k", body, sig) {
		t.Error("valid signature rejected")
	}
	if Verify("other", body, sig) {
		t.Error("wrong secret accepted")
	}
	if Verify("k", body, "not-hex") {
		t.Error("malformed signature accepted")
	}
}
