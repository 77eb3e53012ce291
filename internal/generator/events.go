package generator

import "github.com/grachmannico95/incident-replay/internal/domain"

// RoutingEvents returns the fixed incident-response timeline. It does not
// depend on the seed.
func RoutingEvents() []domain.RoutingEvent {
	return []domain.RoutingEvent{
		{
			ID:          "evt-1",
			Timestamp:   MinutesAfterBase(60),
			Type:        domain.EventAuthRateDrop,
			Title:       "Processor A auth rate drop detected",
			Description: "Authorization rate fell from 94% to 40% in the last 2 minutes",
			Severity:    domain.SeverityCritical,
		},
		{
			ID:          "evt-2",
			Timestamp:   MinutesAfterBase(62),
			Type:        domain.EventAlertTriggered,
			Title:       "Alert triggered: auth rate below threshold",
			Description: "Auth rate (40%) is below the 80% alert threshold for Processor A",
			Severity:    domain.SeverityWarning,
		},
		{
			ID:          "evt-3",
			Timestamp:   MinutesAfterBase(65),
			Type:        domain.EventFailoverInitiated,
			Title:       "Smart routing failover initiated",
			Description: "Orchestration layer activating backup processors",
			Severity:    domain.SeverityInfo,
		},
		{
			ID:          "evt-4",
			Timestamp:   MinutesAfterBase(67),
			Type:        domain.EventTrafficRerouted,
			Title:       "Traffic successfully rerouted",
			Description: "55% of traffic to Processor B, 35% to Processor C, 10% to Processor A",
			Severity:    domain.SeverityInfo,
		},
		{
			ID:          "evt-5",
			Timestamp:   MinutesAfterBase(80),
			Type:        domain.EventProcessorDown,
			Title:       "Processor A fully unavailable",
			Description: "Processor A has gone down. All traffic rerouted to B and C",
			Severity:    domain.SeverityCritical,
		},
		{
			ID:          "evt-6",
			Timestamp:   MinutesAfterBase(180),
			Type:        domain.EventRecoverySignal,
			Title:       "Recovery signal received for Processor A",
			Description: "Processor A is reporting healthy status. Beginning gradual restoration",
			Severity:    domain.SeverityInfo,
		},
		{
			ID:          "evt-7",
			Timestamp:   MinutesAfterBase(195),
			Type:        domain.EventTrafficRestored,
			Title:       "Traffic gradually restored to Processor A",
			Description: "Processor A receiving 35% of traffic at 93% auth rate",
			Severity:    domain.SeveritySuccess,
		},
		{
			ID:          "evt-8",
			Timestamp:   MinutesAfterBase(240),
			Type:        domain.EventSystemRecovered,
			Title:       "System fully recovered",
			Description: "Overall auth rate restored to 93.8%. Incident resolved",
			Severity:    domain.SeveritySuccess,
		},
	}
}
