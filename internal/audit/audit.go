package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
)

// Severity classifies how security-relevant an event is.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Event types recorded by the governance core.
const (
	EventSeedGenerated          = "SEED_GENERATED"
	EventSeedRestored           = "SEED_RESTORED"
	EventSeedAccessed           = "PARTNER_SEED_ACCESSED"
	EventSeedAccessDenied       = "UNAUTHORIZED_SEED_ACCESS_ATTEMPT"
	EventSeedDistributed        = "SEED_DISTRIBUTED_TO_PARTNER"
	EventSeedAcknowledged       = "PARTNER_SEED_ACKNOWLEDGED"
	EventPartnerEnrolled        = "PARTNER_ENROLLED"
	EventPartnerStatusUpdated   = "PARTNER_STATUS_UPDATED"
	EventSeatAssigned           = "SEAT_ASSIGNED"
	EventSeatRevoked            = "SEAT_REVOKED"
	EventPartnerIntentDeclared  = "PARTNER_INTENT_DECLARATION"
	EventNonPartnerIntent       = "NON_PARTNER_INTENT_DECLARATION"
	EventPartnerVerified        = "PARTNER_VERIFIED"
	EventPartnerLoggedOut       = "PARTNER_LOGGED_OUT"
	EventAPIKeyIssued           = "API_KEY_ISSUED"
	EventAPIKeyUsed             = "API_KEY_USED"
	EventAPIKeyRevoked          = "API_KEY_REVOKED"
	EventAPIKeyRegenerated      = "API_KEY_REGENERATED"
	EventAPIKeyRateLimited      = "API_KEY_RATE_LIMITED"
	EventAPIKeyLimitsChanged    = "API_KEY_LIMITS_CHANGED"
	EventAPIKeyPermsChanged     = "API_KEY_PERMISSIONS_CHANGED"
	EventCredentialStored       = "TEAM_CREDENTIAL_STORED"
	EventCredentialAccessed     = "TEAM_CREDENTIAL_ACCESSED"
	EventCredentialStatusChange = "TEAM_CREDENTIAL_STATUS_CHANGED"
	EventCredentialRemoved      = "TEAM_CREDENTIAL_REMOVED"
)

// severities maps event types to their classification. Unknown types
// default to MEDIUM so a new event is never silently low-priority.
var severities = map[string]Severity{
	EventSeedGenerated:          SeverityCritical,
	EventSeedRestored:           SeverityCritical,
	EventSeatRevoked:            SeverityCritical,
	EventSeedAccessDenied:       SeverityHigh,
	EventNonPartnerIntent:       SeverityHigh,
	EventAPIKeyRateLimited:      SeverityHigh,
	EventSeedAccessed:           SeverityMedium,
	EventSeedDistributed:        SeverityMedium,
	EventPartnerVerified:        SeverityMedium,
	EventAPIKeyRevoked:          SeverityMedium,
	EventAPIKeyRegenerated:      SeverityMedium,
	EventAPIKeyLimitsChanged:    SeverityMedium,
	EventAPIKeyPermsChanged:     SeverityMedium,
	EventCredentialStored:       SeverityMedium,
	EventCredentialAccessed:     SeverityMedium,
	EventCredentialStatusChange: SeverityMedium,
	EventCredentialRemoved:      SeverityMedium,
	EventPartnerEnrolled:        SeverityLow,
	EventPartnerStatusUpdated:   SeverityLow,
	EventSeedAcknowledged:       SeverityLow,
	EventSeatAssigned:           SeverityLow,
	EventPartnerIntentDeclared:  SeverityLow,
	EventPartnerLoggedOut:       SeverityLow,
	EventAPIKeyIssued:           SeverityLow,
	EventAPIKeyUsed:             SeverityLow,
}

// Classify returns the severity for an event type.
func Classify(eventType string) Severity {
	if severity, ok := severities[eventType]; ok {
		return severity
	}
	return SeverityMedium
}

// Event is a single security event.
type Event struct {
	Type      string         `json:"eventType"`
	Severity  Severity       `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// hotRetention caps the hot store; older events survive only in the
// day-partitioned audit files.
const hotRetention = 1000

type document struct {
	Events []Event `json:"events"`
}

// Log is the append-only security event ledger. Events land in a hot JSON
// store capped at the most recent 1000 and are mirrored, unbounded, to a
// day-partitioned audit file.
type Log struct {
	mu  sync.Mutex
	hot store.Store
	dir string
	now func() time.Time
}

// New creates a security log. dir holds the day-partitioned files; an empty
// dir disables the file mirror (tests).
func New(hot store.Store, dir string) *Log {
	return &Log{hot: hot, dir: dir, now: time.Now}
}

// Record appends an event. Recording is best-effort: a store or filesystem
// failure must never fail the operation that produced the event, so errors
// are swallowed after the event is written to whichever sinks still work.
func (l *Log) Record(eventType string, details map[string]any) Event {
	event := Event{
		Type:      eventType,
		Severity:  Classify(eventType),
		Timestamp: l.now().UTC(),
		Details:   details,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var doc document
	if err := l.hot.Load(&doc); err != nil && err != store.ErrNotExist {
		// Hot store unreadable; still mirror to the audit file.
		l.appendAuditFile(event)
		return event
	}

	doc.Events = append(doc.Events, event)
	if len(doc.Events) > hotRetention {
		doc.Events = doc.Events[len(doc.Events)-hotRetention:]
	}
	_ = l.hot.Save(&doc)

	l.appendAuditFile(event)
	return event
}

// appendAuditFile writes one line to the current day's audit file.
func (l *Log) appendAuditFile(event Event) {
	if l.dir == "" {
		return
	}
	if err := os.MkdirAll(l.dir, 0700); err != nil {
		return
	}

	name := fmt.Sprintf("governance-%s.log", event.Timestamp.Format("2006-01-02"))
	path := filepath.Join(l.dir, name)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	detail, err := json.Marshal(event.Details)
	if err != nil {
		detail = []byte("{}")
	}
	line := fmt.Sprintf("[%s] %s (%s): %s\n",
		event.Timestamp.Format(time.RFC3339), event.Type, event.Severity, detail)
	_, _ = f.WriteString(line)
}

// Events returns hot events, newest first, optionally filtered by severity
// (empty severity means all).
func (l *Log) Events(severity Severity) ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var doc document
	if err := l.hot.Load(&doc); err != nil {
		if err == store.ErrNotExist {
			return nil, nil
		}
		return nil, err
	}

	events := doc.Events
	if severity != "" {
		filtered := events[:0:0]
		for _, event := range events {
			if event.Severity == severity {
				filtered = append(filtered, event)
			}
		}
		events = filtered
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events, nil
}
