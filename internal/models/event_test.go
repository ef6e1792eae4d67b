package models

import (
	"encoding/json"
	"testing"
)

func validWeeklyInput() EventInput {
	return EventInput{
		Name:         "Friday Night",
		EventType:    EventWeekly,
		DayOfWeek:    "Friday",
		VenueName:    "Club Paradiso",
		DealType:     DealRevenueShare,
		Commissions:  "20% over 5k",
		PaymentTerms: PayOneWeek,
	}
}

func fieldMessages(verr *ValidationError) map[string]string {
	msgs := make(map[string]string)
	for _, fe := range verr.Errors {
		msgs[fe.Field] = fe.Message
	}
	return msgs
}

func TestEventInputValidate(t *testing.T) {
	t.Run("valid weekly event passes", func(t *testing.T) {
		in := validWeeklyInput()
		if verr := in.Validate(); verr != nil {
			t.Fatalf("expected no errors, got %v", verr)
		}
	})

	t.Run("weekly event requires dayOfWeek and no eventDate", func(t *testing.T) {
		in := validWeeklyInput()
		in.DayOfWeek = ""
		in.EventDate = "2026-08-01"

		verr := in.Validate()
		if verr == nil {
			t.Fatal("expected validation error")
		}
		msgs := fieldMessages(verr)
		if _, ok := msgs["dayOfWeek"]; !ok {
			t.Error("expected dayOfWeek error")
		}
		if _, ok := msgs["eventDate"]; !ok {
			t.Error("expected eventDate error")
		}
	})

	t.Run("one-time event requires eventDate and no dayOfWeek", func(t *testing.T) {
		in := validWeeklyInput()
		in.EventType = EventOneTime

		verr := in.Validate()
		if verr == nil {
			t.Fatal("expected validation error")
		}
		msgs := fieldMessages(verr)
		if _, ok := msgs["eventDate"]; !ok {
			t.Error("expected eventDate error")
		}
		if _, ok := msgs["dayOfWeek"]; !ok {
			t.Error("expected dayOfWeek error")
		}
	})

	t.Run("monthly event rejects malformed date", func(t *testing.T) {
		in := validWeeklyInput()
		in.EventType = EventMonthly
		in.DayOfWeek = ""
		in.EventDate = "01/08/2026"

		verr := in.Validate()
		if verr == nil {
			t.Fatal("expected validation error")
		}
		if _, ok := fieldMessages(verr)["eventDate"]; !ok {
			t.Error("expected eventDate error")
		}
	})

	t.Run("entrance deal requires entranceShare", func(t *testing.T) {
		in := validWeeklyInput()
		in.DealType = DealRevenueShareEntrance

		verr := in.Validate()
		if verr == nil {
			t.Fatal("expected validation error")
		}
		if _, ok := fieldMessages(verr)["entranceShare"]; !ok {
			t.Error("expected entranceShare error")
		}

		in.EntranceShare = "100%"
		if verr := in.Validate(); verr != nil {
			t.Fatalf("expected no errors with entranceShare set, got %v", verr)
		}
	})

	t.Run("unknown enums are rejected", func(t *testing.T) {
		in := validWeeklyInput()
		in.EventType = "fortnightly"
		in.DealType = "flat-fee"
		in.PaymentTerms = "net-90"
		in.Status = "pending"

		verr := in.Validate()
		if verr == nil {
			t.Fatal("expected validation error")
		}
		msgs := fieldMessages(verr)
		for _, field := range []string{"eventType", "dealType", "paymentTerms", "status"} {
			if _, ok := msgs[field]; !ok {
				t.Errorf("expected %s error", field)
			}
		}
	})

	t.Run("nested expense errors are surfaced", func(t *testing.T) {
		in := validWeeklyInput()
		in.Expenses = []ExpenseInput{
			{Category: "Snacks", Amount: mustMoney(t, "50")},
		}

		verr := in.Validate()
		if verr == nil {
			t.Fatal("expected validation error")
		}
		if _, ok := fieldMessages(verr)["category"]; !ok {
			t.Error("expected category error from nested expense")
		}
	})
}

func TestEventInputToEvent(t *testing.T) {
	in := validWeeklyInput()
	in.Name = "  Friday Night  "

	ev := in.ToEvent("user-1")
	if ev.Name != "Friday Night" {
		t.Errorf("expected trimmed name, got %q", ev.Name)
	}
	if ev.UserID != "user-1" {
		t.Errorf("expected userId user-1, got %q", ev.UserID)
	}
	if ev.Status != StatusUpcoming {
		t.Errorf("expected status to default to upcoming, got %q", ev.Status)
	}
}

func TestEventPatchApply(t *testing.T) {
	base := func() *Event {
		in := validWeeklyInput()
		return in.ToEvent("user-1")
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		ev := base()
		status := StatusCompleted
		patch := EventPatch{Status: &status}

		if verr := patch.Apply(ev); verr != nil {
			t.Fatalf("expected no errors, got %v", verr)
		}
		if ev.Status != StatusCompleted {
			t.Errorf("expected completed, got %q", ev.Status)
		}
		if ev.Name != "Friday Night" {
			t.Errorf("name changed unexpectedly: %q", ev.Name)
		}
	})

	t.Run("type change re-checks the schedule", func(t *testing.T) {
		ev := base()
		oneTime := EventOneTime
		patch := EventPatch{EventType: &oneTime}

		verr := patch.Apply(ev)
		if verr == nil {
			t.Fatal("expected validation error: one-time event kept dayOfWeek and has no eventDate")
		}
	})

	t.Run("switching to entrance deal requires the share", func(t *testing.T) {
		ev := base()
		entrance := DealRevenueShareEntrance
		patch := EventPatch{DealType: &entrance}

		if verr := patch.Apply(ev); verr == nil {
			t.Fatal("expected entranceShare error")
		}
	})
}

func TestEventJSONShape(t *testing.T) {
	in := validWeeklyInput()
	ev := in.ToEvent("")
	ev.ID = "ev-1"

	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m["eventType"] != "weekly" {
		t.Errorf("expected eventType weekly, got %v", m["eventType"])
	}
	if _, ok := m["eventDate"]; ok {
		t.Error("empty eventDate should be omitted")
	}
	if _, ok := m["userId"]; ok {
		t.Error("empty userId should be omitted")
	}
}
