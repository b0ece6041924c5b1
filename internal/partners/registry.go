package partners

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/wallet"
)

// Status tracks a partner through the lifecycle enrolled → acknowledged → seated.
type Status string

const (
	StatusEnrolled     Status = "enrolled"
	StatusAcknowledged Status = "acknowledged"
	StatusSeated       Status = "seated"
)

// IntentType classifies a declaration of interest.
type IntentType string

const (
	IntentSeekPartnership       IntentType = "SEEK_PARTNERSHIP"
	IntentUnderstandCovenant    IntentType = "UNDERSTAND_COVENANT"
	IntentGovernanceInquiry     IntentType = "GOVERNANCE_INQUIRY"
	IntentPhilosophicalInterest IntentType = "PHILOSOPHICAL_INTEREST"
	IntentOther                 IntentType = "OTHER"

	// IntentAcknowledgeSeed is appended by Acknowledge; it is not accepted
	// from external declarations.
	IntentAcknowledgeSeed IntentType = "ACKNOWLEDGE_SEED"
)

// IntentTypes lists the declaration types external callers may submit.
func IntentTypes() []IntentType {
	return []IntentType{
		IntentSeekPartnership,
		IntentUnderstandCovenant,
		IntentGovernanceInquiry,
		IntentPhilosophicalInterest,
		IntentOther,
	}
}

// Partner is an enrolled wallet with recognized standing in the collective.
// Partners are never hard-deleted; losing a seat demotes the status only.
type Partner struct {
	Wallet           string     `json:"wallet"`
	Alias            string     `json:"alias"`
	SecondaryWallet  string     `json:"secondaryWallet,omitempty"`
	Status           Status     `json:"status"`
	EnrolledAt       time.Time  `json:"enrolledAt"`
	DistributedAt    *time.Time `json:"seedDistributedAt,omitempty"`
	Acknowledged     bool       `json:"seedAcknowledged"`
	AcknowledgedAt   *time.Time `json:"seedAcknowledgedAt,omitempty"`
	TrustBurned      float64    `json:"trustBurned"`
	TallyAccumulated float64    `json:"tallyAccumulated"`
	Votes            int        `json:"governanceVotes"`
	Proposals        int        `json:"governanceProposals"`
}

// Seat is a named governance position with at most one active occupant.
type Seat struct {
	Name            string     `json:"seatName"`
	Occupant        string     `json:"occupant,omitempty"`
	OccupantAlias   string     `json:"occupantAlias,omitempty"`
	Revoked         bool       `json:"revoked"`
	AssignedAt      time.Time  `json:"assignedAt"`
	RevokedAt       *time.Time `json:"revokedAt,omitempty"`
	SucceededAt     *time.Time `json:"succeededAt,omitempty"`
	CredentialToken string     `json:"credentialToken,omitempty"`
	Transferable    bool       `json:"transferable"`
}

// Declaration is an immutable record of a wallet stating interest,
// classified as partner or non-partner at write time.
type Declaration struct {
	ID            string     `json:"id"`
	Wallet        string     `json:"wallet"`
	Name          string     `json:"name,omitempty"`
	IntentType    IntentType `json:"intentType"`
	Statement     string     `json:"intentStatement"`
	IdentityProof string     `json:"identityProof,omitempty"`
	DeclaredAt    time.Time  `json:"declaredAt"`
	IsPartner     bool       `json:"isPartner"`
}

// DistributionRecord marks one delivery of the recovery phrase to a partner.
type DistributionRecord struct {
	Partner       string    `json:"partner"`
	DistributedBy string    `json:"distributedBy"`
	DistributedAt time.Time `json:"distributedAt"`
}

// RevocationRecord marks one seat revocation and who lost it.
type RevocationRecord struct {
	Seat      string    `json:"seat"`
	Occupant  string    `json:"occupant,omitempty"`
	Reason    string    `json:"reason"`
	RevokedAt time.Time `json:"revokedAt"`
}

type distributionLedger struct {
	Pending     []string             `json:"pendingDistribution"`
	Distributed []DistributionRecord `json:"distributed"`
	Revoked     []RevocationRecord   `json:"revoked"`
}

type document struct {
	Partners     []Partner          `json:"partnersList"`
	Seats        map[string]*Seat   `json:"seats"`
	Declarations []Declaration      `json:"intentDeclarations"`
	Distribution distributionLedger `json:"distribution"`
}

// Registry manages partner lifecycle, seat assignment, and merit succession.
type Registry struct {
	mu    sync.Mutex
	store store.Store
	log   *audit.Log
	max   int
	now   func() time.Time
	newID func() string
}

// New creates a registry backed by st, auditing to log, with the given
// partner ceiling.
func New(st store.Store, log *audit.Log, maxPartners int) *Registry {
	return &Registry{
		store: st,
		log:   log,
		max:   maxPartners,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (r *Registry) load() (*document, error) {
	var doc document
	if err := r.store.Load(&doc); err != nil && err != store.ErrNotExist {
		return nil, fmt.Errorf("failed to load partner registry: %w", err)
	}
	if doc.Seats == nil {
		doc.Seats = make(map[string]*Seat)
	}
	return &doc, nil
}

func (r *Registry) save(doc *document) error {
	if err := r.store.Save(doc); err != nil {
		return fmt.Errorf("failed to save partner registry: %w", err)
	}
	return nil
}

func findPartner(doc *document, address string) *Partner {
	for i := range doc.Partners {
		if doc.Partners[i].Wallet == address {
			return &doc.Partners[i]
		}
	}
	return nil
}

// Enroll adds a wallet to the roster with zero counters. The roster is
// capacity-bounded; the error for a full roster carries the ceiling and
// current count so callers can report both.
func (r *Registry) Enroll(address, alias, secondaryWallet string) (*Partner, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}
	if len(alias) < 3 || len(alias) > 50 {
		return nil, cerrors.ErrInvalidAlias
	}
	if secondaryWallet != "" {
		if secondaryWallet, err = wallet.Normalize(secondaryWallet); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	if len(doc.Partners) >= r.max {
		return nil, fmt.Errorf("%w: %d of %d seats filled", cerrors.ErrCapacityExceeded, len(doc.Partners), r.max)
	}
	if findPartner(doc, address) != nil {
		return nil, cerrors.ErrDuplicatePartner
	}

	partner := Partner{
		Wallet:          address,
		Alias:           alias,
		SecondaryWallet: secondaryWallet,
		Status:          StatusEnrolled,
		EnrolledAt:      r.now().UTC(),
	}
	doc.Partners = append(doc.Partners, partner)
	doc.Distribution.Pending = append(doc.Distribution.Pending, address)

	if err := r.save(doc); err != nil {
		return nil, err
	}

	r.log.Record(audit.EventPartnerEnrolled, map[string]any{
		"partner":       address,
		"alias":         alias,
		"totalPartners": len(doc.Partners),
	})
	return &partner, nil
}

// RecordDistribution marks the recovery phrase as delivered to a partner
// and moves the wallet off the pending queue.
func (r *Registry) RecordDistribution(address, distributor string) error {
	address, err := wallet.Normalize(address)
	if err != nil {
		return err
	}
	distributor, err = wallet.Normalize(distributor)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return err
	}

	partner := findPartner(doc, address)
	if partner == nil {
		return cerrors.ErrPartnerNotFound
	}

	distributedAt := r.now().UTC()
	partner.DistributedAt = &distributedAt
	doc.Distribution.Distributed = append(doc.Distribution.Distributed, DistributionRecord{
		Partner:       address,
		DistributedBy: distributor,
		DistributedAt: distributedAt,
	})
	pending := doc.Distribution.Pending[:0]
	for _, w := range doc.Distribution.Pending {
		if w != address {
			pending = append(pending, w)
		}
	}
	doc.Distribution.Pending = pending

	if err := r.save(doc); err != nil {
		return err
	}

	r.log.Record(audit.EventSeedDistributed, map[string]any{
		"partner":          address,
		"distributedBy":    distributor,
		"totalDistributed": len(doc.Distribution.Distributed),
	})
	return nil
}

// Acknowledge records a partner's receipt and understanding of the recovery
// phrase, appending an intent declaration alongside the flag flip.
func (r *Registry) Acknowledge(address, statement string) error {
	address, err := wallet.Normalize(address)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return err
	}

	partner := findPartner(doc, address)
	if partner == nil {
		return cerrors.ErrPartnerNotFound
	}

	acknowledgedAt := r.now().UTC()
	partner.Acknowledged = true
	partner.AcknowledgedAt = &acknowledgedAt
	if partner.Status == StatusEnrolled {
		partner.Status = StatusAcknowledged
	}

	if statement == "" {
		statement = "No statement provided"
	}
	doc.Declarations = append(doc.Declarations, Declaration{
		ID:         r.newID(),
		Wallet:     address,
		IntentType: IntentAcknowledgeSeed,
		Statement:  statement,
		DeclaredAt: acknowledgedAt,
		IsPartner:  true,
	})

	if err := r.save(doc); err != nil {
		return err
	}

	r.log.Record(audit.EventSeedAcknowledged, map[string]any{
		"partner":        address,
		"intentProvided": statement != "No statement provided",
	})
	return nil
}

// UpdateStatus records a partner's latest-known counter totals. Inputs are
// absolute totals, not deltas; a zero input preserves the current value.
// A caller passing a stale lower total will regress the recorded figure.
func (r *Registry) UpdateStatus(address string, trustBurned, tallyAccumulated float64) (*Partner, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	partner := findPartner(doc, address)
	if partner == nil {
		return nil, cerrors.ErrPartnerNotFound
	}

	if trustBurned != 0 {
		partner.TrustBurned = trustBurned
	}
	if tallyAccumulated != 0 {
		partner.TallyAccumulated = tallyAccumulated
	}

	if err := r.save(doc); err != nil {
		return nil, err
	}

	r.log.Record(audit.EventPartnerStatusUpdated, map[string]any{
		"partner":          address,
		"trustBurned":      partner.TrustBurned,
		"tallyAccumulated": partner.TallyAccumulated,
	})
	updated := *partner
	return &updated, nil
}

// AssignSeat places an acknowledged partner into a named seat. The seat must
// be vacant or previously revoked, and the partner must not already hold one.
func (r *Registry) AssignSeat(address, seatName string) (*Seat, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}
	if seatName == "" {
		return nil, cerrors.ErrMissingField
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	partner := findPartner(doc, address)
	if partner == nil {
		return nil, cerrors.ErrPartnerNotFound
	}
	if partner.Status != StatusAcknowledged {
		return nil, cerrors.ErrNotEligible
	}
	if existing, ok := doc.Seats[seatName]; ok && !existing.Revoked {
		return nil, cerrors.ErrSeatOccupied
	}

	seat := &Seat{
		Name:            seatName,
		Occupant:        address,
		OccupantAlias:   partner.Alias,
		AssignedAt:      r.now().UTC(),
		CredentialToken: r.newID(),
	}
	doc.Seats[seatName] = seat
	partner.Status = StatusSeated

	if err := r.save(doc); err != nil {
		return nil, err
	}

	r.log.Record(audit.EventSeatAssigned, map[string]any{
		"seat":    seatName,
		"partner": address,
		"alias":   partner.Alias,
	})
	assigned := *seat
	return &assigned, nil
}

// RevokeSeat marks a seat revoked and runs succession: partners ranked by
// burned trust descending (tally descending as tiebreaker) are scanned for
// the first candidate not already holding an active seat. With no eligible
// candidate the seat stays vacant.
func (r *Registry) RevokeSeat(seatName, reason string) (*Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	seat, ok := doc.Seats[seatName]
	if !ok {
		return nil, cerrors.ErrSeatNotFound
	}
	if seat.Revoked {
		return nil, cerrors.ErrSeatRevoked
	}

	revokedAt := r.now().UTC()
	previous := seat.Occupant
	seat.Revoked = true
	seat.RevokedAt = &revokedAt
	seat.Occupant = ""
	seat.OccupantAlias = ""
	if p := findPartner(doc, previous); p != nil && p.Status == StatusSeated {
		p.Status = StatusAcknowledged
	}
	doc.Distribution.Revoked = append(doc.Distribution.Revoked, RevocationRecord{
		Seat:      seatName,
		Occupant:  previous,
		Reason:    reason,
		RevokedAt: revokedAt,
	})

	var successor *Partner
	for _, candidate := range rank(doc.Partners) {
		if occupiesActiveSeat(doc, candidate.Wallet) {
			continue
		}
		successor = findPartner(doc, candidate.Wallet)
		break
	}

	if successor != nil {
		succeededAt := r.now().UTC()
		doc.Seats[seatName] = &Seat{
			Name:            seatName,
			Occupant:        successor.Wallet,
			OccupantAlias:   successor.Alias,
			AssignedAt:      succeededAt,
			SucceededAt:     &succeededAt,
			CredentialToken: r.newID(),
		}
		successor.Status = StatusSeated
	}

	if err := r.save(doc); err != nil {
		return nil, err
	}

	details := map[string]any{
		"seat":     seatName,
		"revoked":  previous,
		"reason":   reason,
		"filledBy": nil,
	}
	if successor != nil {
		details["filledBy"] = successor.Wallet
	}
	r.log.Record(audit.EventSeatRevoked, details)

	result := *doc.Seats[seatName]
	return &result, nil
}

// Ranking is one row of the succession ordering.
type Ranking struct {
	Rank             int     `json:"rank"`
	Wallet           string  `json:"wallet"`
	Alias            string  `json:"alias"`
	TrustBurned      float64 `json:"trustBurned"`
	TallyAccumulated float64 `json:"tallyAccumulated"`
	Status           Status  `json:"status"`
}

// RankByBurnedTrust returns the ordering succession uses, exposed for
// transparency. Pure read.
func (r *Registry) RankByBurnedTrust() ([]Ranking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	ranked := rank(doc.Partners)
	rankings := make([]Ranking, len(ranked))
	for i, p := range ranked {
		rankings[i] = Ranking{
			Rank:             i + 1,
			Wallet:           p.Wallet,
			Alias:            p.Alias,
			TrustBurned:      p.TrustBurned,
			TallyAccumulated: p.TallyAccumulated,
			Status:           p.Status,
		}
	}
	return rankings, nil
}

// rank orders partners by trust burned descending, tally descending.
func rank(partners []Partner) []Partner {
	ranked := append([]Partner(nil), partners...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TrustBurned != ranked[j].TrustBurned {
			return ranked[i].TrustBurned > ranked[j].TrustBurned
		}
		return ranked[i].TallyAccumulated > ranked[j].TallyAccumulated
	})
	return ranked
}

func occupiesActiveSeat(doc *document, address string) bool {
	for _, seat := range doc.Seats {
		if !seat.Revoked && seat.Occupant == address {
			return true
		}
	}
	return false
}

// DeclareIntent appends an immutable declaration of interest. The wallet is
// classified partner/non-partner at write time; non-partner declarations
// raise a HIGH security event for review.
func (r *Registry) DeclareIntent(address, name string, intentType IntentType, statement, identityProof string) (*Declaration, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}
	valid := false
	for _, t := range IntentTypes() {
		if t == intentType {
			valid = true
			break
		}
	}
	if !valid {
		return nil, cerrors.ErrInvalidIntentType
	}
	if statement == "" {
		return nil, cerrors.ErrMissingField
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	declaration := Declaration{
		ID:            r.newID(),
		Wallet:        address,
		Name:          name,
		IntentType:    intentType,
		Statement:     statement,
		IdentityProof: identityProof,
		DeclaredAt:    r.now().UTC(),
		IsPartner:     findPartner(doc, address) != nil,
	}
	doc.Declarations = append(doc.Declarations, declaration)

	if err := r.save(doc); err != nil {
		return nil, err
	}

	event := audit.EventPartnerIntentDeclared
	if !declaration.IsPartner {
		event = audit.EventNonPartnerIntent
	}
	r.log.Record(event, map[string]any{
		"wallet":     address,
		"intentType": string(intentType),
		"statement":  statement,
	})
	return &declaration, nil
}

// Declarations returns intent declarations newest first, optionally limited
// to non-partner declarations for security review.
func (r *Registry) Declarations(nonPartnersOnly bool) ([]Declaration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	declarations := make([]Declaration, 0, len(doc.Declarations))
	for _, d := range doc.Declarations {
		if nonPartnersOnly && d.IsPartner {
			continue
		}
		declarations = append(declarations, d)
	}
	sort.SliceStable(declarations, func(i, j int) bool {
		return declarations[i].DeclaredAt.After(declarations[j].DeclaredAt)
	})
	return declarations, nil
}

// PartnerSummary is the aggregate view of one partner; no secrets.
type PartnerSummary struct {
	Wallet           string    `json:"wallet"`
	Alias            string    `json:"alias"`
	Status           Status    `json:"status"`
	EnrolledAt       time.Time `json:"enrolledAt"`
	SeedDistributed  bool      `json:"seedDistributed"`
	SeedAcknowledged bool      `json:"seedAcknowledged"`
	TrustBurned      float64   `json:"trustBurned"`
	TallyAccumulated float64   `json:"tallyAccumulated"`
	Votes            int       `json:"governanceVotes"`
}

// DistributionSummary counts the distribution ledger.
type DistributionSummary struct {
	Pending     int `json:"pending"`
	Distributed int `json:"distributed"`
	Revoked     int `json:"revoked"`
}

// StatusReport is the public aggregate view of the collective.
type StatusReport struct {
	MaxPartners     int                 `json:"maxPartners"`
	CurrentPartners int                 `json:"currentPartners"`
	SeatsFilled     int                 `json:"seatsFilled"`
	SeatsAvailable  int                 `json:"seatsAvailable"`
	Partners        []PartnerSummary    `json:"partners"`
	Seats           []Seat              `json:"seats"`
	Distribution    DistributionSummary `json:"distribution"`
}

// Status returns the aggregate governance view. Pure read.
func (r *Registry) Status() (*StatusReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	report := &StatusReport{
		MaxPartners:     r.max,
		CurrentPartners: len(doc.Partners),
		Distribution: DistributionSummary{
			Pending:     len(doc.Distribution.Pending),
			Distributed: len(doc.Distribution.Distributed),
			Revoked:     len(doc.Distribution.Revoked),
		},
	}
	for _, p := range doc.Partners {
		report.Partners = append(report.Partners, PartnerSummary{
			Wallet:           p.Wallet,
			Alias:            p.Alias,
			Status:           p.Status,
			EnrolledAt:       p.EnrolledAt,
			SeedDistributed:  p.DistributedAt != nil,
			SeedAcknowledged: p.Acknowledged,
			TrustBurned:      p.TrustBurned,
			TallyAccumulated: p.TallyAccumulated,
			Votes:            p.Votes,
		})
	}

	names := make([]string, 0, len(doc.Seats))
	for name := range doc.Seats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		seat := doc.Seats[name]
		report.Seats = append(report.Seats, *seat)
		if !seat.Revoked && seat.Occupant != "" {
			report.SeatsFilled++
		}
	}
	report.SeatsAvailable = r.max - report.CurrentPartners
	return report, nil
}

// Partner returns one partner record.
func (r *Registry) Partner(address string) (*Partner, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	partner := findPartner(doc, address)
	if partner == nil {
		return nil, cerrors.ErrPartnerNotFound
	}
	found := *partner
	return &found, nil
}

// IsPartner reports whether the wallet is enrolled. Invalid addresses are
// simply not partners.
func (r *Registry) IsPartner(address string) bool {
	address, err := wallet.Normalize(address)
	if err != nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load()
	if err != nil {
		return false
	}
	return findPartner(doc, address) != nil
}
