package events

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"blocktrack/core/types"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	return line
}

func TestLogEmitterRendersAttributes(t *testing.T) {
	logger, buf := captureLogger()
	emitter := NewLogEmitter(logger)

	emitter.Emit(ProductTransferred{
		ProductID: "prod-002",
		From:      "part-001",
		To:        "part-003",
		Status:    types.StatusInTransit,
		Location:  "Global Shipping Inc.",
		Timestamp: 5000,
	})

	line := decodeLine(t, buf)
	if line["event"] != TypeProductTransferred {
		t.Fatalf("expected event type %s, got %v", TypeProductTransferred, line["event"])
	}
	if line["productId"] != "prod-002" || line["from"] != "part-001" || line["to"] != "part-003" {
		t.Fatalf("missing transfer attributes: %v", line)
	}
	if line["status"] != string(types.StatusInTransit) {
		t.Fatalf("expected status attribute, got %v", line["status"])
	}
	if line["timestamp"] != "5000" {
		t.Fatalf("expected stringified timestamp, got %v", line["timestamp"])
	}
}

func TestLogEmitterPaymentAndWalletEvents(t *testing.T) {
	logger, buf := captureLogger()
	emitter := NewLogEmitter(logger)

	emitter.Emit(PaymentCreated{ID: "0xabc", From: "0x1", To: "0x2", Amount: "1.5", ProductID: "prod-001", Timestamp: 42})
	line := decodeLine(t, buf)
	if line["event"] != TypePaymentCreated || line["amount"] != "1.5" {
		t.Fatalf("unexpected payment line: %v", line)
	}

	buf.Reset()
	emitter.Emit(WalletConnected{Account: "0xf39f", ChainID: 1337})
	line = decodeLine(t, buf)
	if line["event"] != TypeWalletConnected || line["chainId"] != "1337" {
		t.Fatalf("unexpected wallet line: %v", line)
	}
}

type bareEvent struct{}

func (bareEvent) EventType() string { return "bare" }

func TestLogEmitterBareEvent(t *testing.T) {
	logger, buf := captureLogger()
	emitter := NewLogEmitter(logger)

	// Events without an attribute rendering still log their type.
	emitter.Emit(bareEvent{})
	line := decodeLine(t, buf)
	if line["event"] != "bare" {
		t.Fatalf("expected bare event type, got %v", line["event"])
	}

	buf.Reset()
	emitter.Emit(nil)
	if buf.Len() != 0 {
		t.Fatalf("nil event must not log: %s", buf.String())
	}
}
