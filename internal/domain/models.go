package domain

import "time"

type ProcessorID string

const (
	ProcessorA ProcessorID = "processor-a"
	ProcessorB ProcessorID = "processor-b"
	ProcessorC ProcessorID = "processor-c"
)

// ProcessorIDs lists processors in display order. ProcessorA is the primary.
var ProcessorIDs = []ProcessorID{ProcessorA, ProcessorB, ProcessorC}

type ProcessorStatus string

const (
	ProcessorStatusHealthy  ProcessorStatus = "healthy"
	ProcessorStatusDegraded ProcessorStatus = "degraded"
	ProcessorStatusDown     ProcessorStatus = "down"
)

type Country string

const (
	CountryBR Country = "BR"
	CountryMX Country = "MX"
	CountryCO Country = "CO"
)

var Countries = []Country{CountryBR, CountryMX, CountryCO}

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodOxxo       PaymentMethod = "oxxo"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodPix,
	PaymentMethodOxxo,
}

type Phase string

const (
	PhasePreIncident   Phase = "pre_incident"
	PhaseIncidentStart Phase = "incident_start"
	PhaseRerouting     Phase = "rerouting"
	PhaseStabilized    Phase = "stabilized"
	PhaseRecovery      Phase = "recovery"
)

type RoutingEventType string

const (
	EventAuthRateDrop      RoutingEventType = "auth_rate_drop"
	EventAlertTriggered    RoutingEventType = "alert_triggered"
	EventFailoverInitiated RoutingEventType = "failover_initiated"
	EventTrafficRerouted   RoutingEventType = "traffic_rerouted"
	EventProcessorDown     RoutingEventType = "processor_down"
	EventRecoverySignal    RoutingEventType = "recovery_signal"
	EventTrafficRestored   RoutingEventType = "traffic_restored"
	EventSystemRecovered   RoutingEventType = "system_recovered"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// Transaction is one simulated payment attempt. Records are created in bulk
// by the generator and never mutated afterwards.
type Transaction struct {
	ID              string          `json:"id"`
	Timestamp       time.Time       `json:"timestamp"`
	ProcessorID     ProcessorID     `json:"processor_id"`
	ProcessorStatus ProcessorStatus `json:"processor_status"`
	Country         Country         `json:"country"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Amount          float64         `json:"amount"`
	Authorized      bool            `json:"authorized"`
	IsBaseline      bool            `json:"is_baseline"`
	Phase           Phase           `json:"phase"`
}

type RoutingEvent struct {
	ID          string           `json:"id"`
	Timestamp   time.Time        `json:"timestamp"`
	Type        RoutingEventType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Severity    Severity         `json:"severity"`
}

type Incident struct {
	ID               string         `json:"id"`
	StartTime        time.Time      `json:"start_time"`
	EndTime          *time.Time     `json:"end_time,omitempty"`
	BaselineAuthRate float64        `json:"baseline_auth_rate"`
	Events           []RoutingEvent `json:"events"`
}

type GeneratedData struct {
	Transactions         []Transaction `json:"transactions"`
	BaselineTransactions []Transaction `json:"baseline_transactions"`
	Incident             Incident      `json:"incident"`
	Seed                 int64         `json:"seed"`
}

type ProcessorMeta struct {
	Label      string `json:"label"`
	ShortLabel string `json:"short_label"`
	Role       string `json:"role"`
}

var ProcessorMetadata = map[ProcessorID]ProcessorMeta{
	ProcessorA: {Label: "Processor A", ShortLabel: "A", Role: "Primary"},
	ProcessorB: {Label: "Processor B", ShortLabel: "B", Role: "Backup"},
	ProcessorC: {Label: "Processor C", ShortLabel: "C", Role: "Backup"},
}

// ValidProcessor reports whether id is one of the known processors.
func ValidProcessor(id ProcessorID) bool {
	_, ok := ProcessorMetadata[id]
	return ok
}

func ValidCountry(c Country) bool {
	for _, v := range Countries {
		if v == c {
			return true
		}
	}
	return false
}

func ValidPaymentMethod(m PaymentMethod) bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}
