package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		eventType string
		want      Severity
	}{
		{EventSeedGenerated, SeverityCritical},
		{EventSeatRevoked, SeverityCritical},
		{EventSeedAccessDenied, SeverityHigh},
		{EventSeedAccessed, SeverityMedium},
		{EventPartnerEnrolled, SeverityLow},
		{"SOMETHING_NEW", SeverityMedium},
	}
	for _, c := range cases {
		if got := Classify(c.eventType); got != c.want {
			t.Errorf("Classify(%s): expected %s, got: %s", c.eventType, c.want, got)
		}
	}
}

func TestRecord_AppendsToHotStore(t *testing.T) {
	log := New(store.NewMemStore(), "")

	log.Record(EventPartnerEnrolled, map[string]any{"wallet": "0xabc"})
	log.Record(EventSeedGenerated, map[string]any{"initiator": "0xdef"})

	events, err := log.Events("")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got: %d", len(events))
	}
	if events[0].Severity != SeverityCritical && events[1].Severity != SeverityCritical {
		t.Errorf("Expected a CRITICAL event in: %+v", events)
	}
}

func TestRecord_HotRetentionCap(t *testing.T) {
	log := New(store.NewMemStore(), "")

	for i := 0; i < hotRetention+25; i++ {
		log.Record(EventAPIKeyUsed, map[string]any{"n": i})
	}

	events, err := log.Events("")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != hotRetention {
		t.Errorf("Expected hot store capped at %d, got: %d", hotRetention, len(events))
	}
}

func TestEvents_SeverityFilterAndOrder(t *testing.T) {
	log := New(store.NewMemStore(), "")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	log.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	log.Record(EventPartnerEnrolled, nil)
	log.Record(EventSeedAccessDenied, map[string]any{"attempt": 1})
	log.Record(EventPartnerEnrolled, nil)
	log.Record(EventSeedAccessDenied, map[string]any{"attempt": 2})

	events, err := log.Events(SeverityHigh)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 HIGH events, got: %d", len(events))
	}
	// Newest first.
	if events[0].Details["attempt"] != float64(2) {
		t.Errorf("Expected newest event first, got: %+v", events[0])
	}
}

func TestRecord_WritesDayPartitionedFile(t *testing.T) {
	dir := t.TempDir()
	log := New(store.NewMemStore(), dir)
	fixed := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	log.now = func() time.Time { return fixed }

	log.Record(EventSeedGenerated, map[string]any{"initiator": "0xabc"})

	path := filepath.Join(dir, fmt.Sprintf("governance-%s.log", fixed.Format("2006-01-02")))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected audit file at %s: %v", path, err)
	}
	line := string(data)
	if !strings.Contains(line, EventSeedGenerated) || !strings.Contains(line, "CRITICAL") {
		t.Errorf("Unexpected audit line: %s", line)
	}
	if !strings.Contains(line, `"initiator":"0xabc"`) {
		t.Errorf("Expected details payload in audit line: %s", line)
	}
}

func TestRecord_SwallowsSinkFailures(t *testing.T) {
	// Point the mirror at a path that cannot be a directory.
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("file"), 0600); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}

	log := New(store.NewMemStore(), filepath.Join(blocked, "audit-logs"))

	// Must not panic or error; the hot store still records.
	log.Record(EventPartnerEnrolled, nil)

	events, err := log.Events("")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected event in hot store despite mirror failure, got: %d", len(events))
	}
}
