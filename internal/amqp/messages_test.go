package amqp

import (
	"testing"
	"time"
)

func TestExportMessageRoundTrip(t *testing.T) {
	msg := NewExportMessage(42)
	if msg.MovementID != 42 {
		t.Fatalf("MovementID = %d", msg.MovementID)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ExportMessageFromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.MovementID != 42 {
		t.Errorf("MovementID = %d, want 42", parsed.MovementID)
	}
	if !parsed.Timestamp.Truncate(time.Millisecond).Equal(msg.Timestamp.Truncate(time.Millisecond)) {
		t.Errorf("timestamp drifted: %v vs %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestExportMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ExportMessageFromJSON([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}
