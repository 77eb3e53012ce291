package domain

import "time"

type TimePeriod string

const (
	TimePeriod15Min         TimePeriod = "15min"
	TimePeriod1Hour         TimePeriod = "1hr"
	TimePeriodSinceIncident TimePeriod = "since_incident"
)

func ValidTimePeriod(p TimePeriod) bool {
	switch p {
	case TimePeriod15Min, TimePeriod1Hour, TimePeriodSinceIncident:
		return true
	}
	return false
}

// FilterSelection is the active time period, country and payment method set.
// Countries and PaymentMethods are never empty.
type FilterSelection struct {
	TimePeriod     TimePeriod      `json:"time_period"`
	Countries      []Country       `json:"countries"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}

// DefaultFilterSelection returns all countries, all methods, since incident start.
func DefaultFilterSelection() FilterSelection {
	return FilterSelection{
		TimePeriod:     TimePeriodSinceIncident,
		Countries:      append([]Country(nil), Countries...),
		PaymentMethods: append([]PaymentMethod(nil), PaymentMethods...),
	}
}

// Clone returns a copy that shares no slices with s.
func (s FilterSelection) Clone() FilterSelection {
	return FilterSelection{
		TimePeriod:     s.TimePeriod,
		Countries:      append([]Country(nil), s.Countries...),
		PaymentMethods: append([]PaymentMethod(nil), s.PaymentMethods...),
	}
}

// FilterPatch is a partial FilterSelection; nil fields are left unchanged.
type FilterPatch struct {
	TimePeriod     *TimePeriod     `json:"time_period,omitempty"`
	Countries      []Country       `json:"countries,omitempty"`
	PaymentMethods []PaymentMethod `json:"payment_methods,omitempty"`
}

type ClockState struct {
	CurrentTime time.Time `json:"current_time"`
	Running     bool      `json:"running"`
	Speed       float64   `json:"speed"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

type ProcessorBucketData struct {
	AuthRate         float64         `json:"auth_rate"`
	BaselineAuthRate float64         `json:"baseline_auth_rate"`
	Volume           int             `json:"volume"`
	Authorized       int             `json:"authorized"`
	Declined         int             `json:"declined"`
	Status           ProcessorStatus `json:"status"`
}

type TimeBucket struct {
	Timestamp       time.Time                           `json:"timestamp"`
	Label           string                              `json:"label"`
	Processors      map[ProcessorID]ProcessorBucketData `json:"processors"`
	TotalVolume     int                                 `json:"total_volume"`
	OverallAuthRate float64                             `json:"overall_auth_rate"`
}

type IncidentMetrics struct {
	CurrentAuthRate        float64 `json:"current_auth_rate"`
	BaselineAuthRate       float64 `json:"baseline_auth_rate"`
	AuthRateDelta          float64 `json:"auth_rate_delta"`
	TotalTransactions      int     `json:"total_transactions"`
	AuthorizedCount        int     `json:"authorized_count"`
	DeclinedCount          int     `json:"declined_count"`
	EstimatedRevenueImpact float64 `json:"estimated_revenue_impact"`
	IncidentDurationMs     int64   `json:"incident_duration_ms"`
}

type ProcessorSummary struct {
	ProcessorID      ProcessorID     `json:"processor_id"`
	Label            string          `json:"label"`
	Role             string          `json:"role"`
	Status           ProcessorStatus `json:"status"`
	AuthRate         float64         `json:"auth_rate"`
	BaselineAuthRate float64         `json:"baseline_auth_rate"`
	Volume           int             `json:"volume"`
	VolumeShare      float64         `json:"volume_share"`
	AlertLevel       AlertLevel      `json:"alert_level"`
}

type CountryBreakdown struct {
	Country  Country `json:"country"`
	AuthRate float64 `json:"auth_rate"`
	Baseline float64 `json:"baseline"`
	Volume   int     `json:"volume"`
}

type MethodBreakdown struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
	Name          string        `json:"name"`
	AuthRate      float64       `json:"auth_rate"`
	Volume        int           `json:"volume"`
}

type AlertLevel string

const (
	AlertLevelCritical AlertLevel = "critical"
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelNormal   AlertLevel = "normal"
)

type Settings struct {
	AlertThreshold float64 `json:"alert_threshold"`
	ComparisonMode bool    `json:"comparison_mode"`
}

// FormattedMetrics carries the KPI card strings.
type FormattedMetrics struct {
	CurrentAuthRate        string `json:"current_auth_rate"`
	AuthRateDelta          string `json:"auth_rate_delta"`
	EstimatedRevenueImpact string `json:"estimated_revenue_impact"`
	IncidentDuration       string `json:"incident_duration"`
}

// Overview is every derived view evaluated against one clock and filter snapshot.
type Overview struct {
	Clock      ClockState         `json:"clock"`
	Filters    FilterSelection    `json:"filters"`
	Settings   Settings           `json:"settings"`
	Metrics    IncidentMetrics    `json:"metrics"`
	Formatted  FormattedMetrics   `json:"formatted"`
	AlertLevel AlertLevel         `json:"alert_level"`
	Processors []ProcessorSummary `json:"processors"`
	Countries  []CountryBreakdown `json:"countries"`
	Methods    []MethodBreakdown  `json:"methods"`
	Buckets    []TimeBucket       `json:"buckets"`
	Events     []RoutingEvent     `json:"events"`
}
