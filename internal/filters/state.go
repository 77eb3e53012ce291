package filters

import (
	"fmt"
	"math"
	"sync"

	"github.com/grachmannico95/incident-replay/internal/domain"
)

// DefaultAlertThreshold is the auth rate below which a processor is flagged.
const DefaultAlertThreshold = 0.8

// State owns the dashboard's filter selection and display settings. The
// country and payment method sets are never empty.
type State struct {
	mu             sync.RWMutex
	selection      domain.FilterSelection
	alertThreshold float64
	comparisonMode bool
}

func NewState() *State {
	return &State{
		selection:      domain.DefaultFilterSelection(),
		alertThreshold: DefaultAlertThreshold,
	}
}

// Selection returns a copy of the active selection.
func (s *State) Selection() domain.FilterSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.Clone()
}

// Snapshot returns the selection and settings read under one lock, so a
// concurrent update is seen either entirely or not at all.
func (s *State) Snapshot() (domain.FilterSelection, domain.Settings) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.Clone(), domain.Settings{
		AlertThreshold: s.alertThreshold,
		ComparisonMode: s.comparisonMode,
	}
}

func (s *State) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Settings{
		AlertThreshold: s.alertThreshold,
		ComparisonMode: s.comparisonMode,
	}
}

// Apply merges patch into the selection. The whole patch is validated before
// anything changes; duplicate entries are collapsed.
func (s *State) Apply(patch domain.FilterPatch) (domain.FilterSelection, error) {
	if patch.TimePeriod != nil && !domain.ValidTimePeriod(*patch.TimePeriod) {
		return s.Selection(), fmt.Errorf("%w: %q", domain.ErrInvalidTimePeriod, *patch.TimePeriod)
	}

	var countries []domain.Country
	if patch.Countries != nil {
		var err error
		if countries, err = normalizeCountries(patch.Countries); err != nil {
			return s.Selection(), err
		}
	}

	var methods []domain.PaymentMethod
	if patch.PaymentMethods != nil {
		var err error
		if methods, err = normalizeMethods(patch.PaymentMethods); err != nil {
			return s.Selection(), err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.TimePeriod != nil {
		s.selection.TimePeriod = *patch.TimePeriod
	}
	if countries != nil {
		s.selection.Countries = countries
	}
	if methods != nil {
		s.selection.PaymentMethods = methods
	}
	return s.selection.Clone(), nil
}

// ToggleCountry adds or removes c. Removing the last selected country is a
// no-op.
func (s *State) ToggleCountry(c domain.Country) (domain.FilterSelection, error) {
	if !domain.ValidCountry(c) {
		return s.Selection(), fmt.Errorf("%w: %q", domain.ErrInvalidCountry, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if next := toggle(s.selection.Countries, c); len(next) > 0 {
		s.selection.Countries = next
	}
	return s.selection.Clone(), nil
}

// TogglePaymentMethod adds or removes m. Removing the last selected method is
// a no-op.
func (s *State) TogglePaymentMethod(m domain.PaymentMethod) (domain.FilterSelection, error) {
	if !domain.ValidPaymentMethod(m) {
		return s.Selection(), fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMethod, m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if next := toggle(s.selection.PaymentMethods, m); len(next) > 0 {
		s.selection.PaymentMethods = next
	}
	return s.selection.Clone(), nil
}

// Reset restores the default selection. Settings are left alone.
func (s *State) Reset() domain.FilterSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = domain.DefaultFilterSelection()
	return s.selection.Clone()
}

// SetAlertThreshold stores threshold clamped to [0, 1].
func (s *State) SetAlertThreshold(threshold float64) (domain.Settings, error) {
	if math.IsNaN(threshold) {
		return s.Settings(), fmt.Errorf("%w: NaN", domain.ErrInvalidThreshold)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.alertThreshold = math.Max(0, math.Min(1, threshold))
	return domain.Settings{AlertThreshold: s.alertThreshold, ComparisonMode: s.comparisonMode}, nil
}

func (s *State) ToggleComparisonMode() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparisonMode = !s.comparisonMode
	return domain.Settings{AlertThreshold: s.alertThreshold, ComparisonMode: s.comparisonMode}
}

func toggle[T comparable](set []T, item T) []T {
	next := make([]T, 0, len(set)+1)
	found := false
	for _, v := range set {
		if v == item {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, item)
	}
	return next
}

func normalizeCountries(in []domain.Country) ([]domain.Country, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: countries", domain.ErrEmptySelection)
	}
	seen := make(map[domain.Country]bool, len(in))
	out := make([]domain.Country, 0, len(in))
	for _, c := range in {
		if !domain.ValidCountry(c) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCountry, c)
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func normalizeMethods(in []domain.PaymentMethod) ([]domain.PaymentMethod, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: payment methods", domain.ErrEmptySelection)
	}
	seen := make(map[domain.PaymentMethod]bool, len(in))
	out := make([]domain.PaymentMethod, 0, len(in))
	for _, m := range in {
		if !domain.ValidPaymentMethod(m) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMethod, m)
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}
