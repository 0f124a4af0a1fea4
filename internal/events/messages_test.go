package events

import (
	"testing"
	"time"
)

func TestExpenseEventRoundTrip(t *testing.T) {
	event := NewExpenseEvent(ActionCreated, 7)
	if event.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}

	body, err := event.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := ExpenseEventFromJSON(body)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Action != ActionCreated || decoded.ID != 7 {
		t.Fatalf("got %+v", decoded)
	}
	if !decoded.Timestamp.Round(time.Millisecond).Equal(event.Timestamp.Round(time.Millisecond)) {
		t.Fatalf("timestamp drift: %v vs %v", decoded.Timestamp, event.Timestamp)
	}
}

func TestExpenseEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ExpenseEventFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}
