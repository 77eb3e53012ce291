package pipeline

import "github.com/grachmannico95/incident-replay/internal/domain"

// CountryBaselines are the historical auth rates shown next to each country.
var CountryBaselines = map[domain.Country]float64{
	domain.CountryBR: 0.94,
	domain.CountryMX: 0.94,
	domain.CountryCO: 0.93,
}

var methodNames = map[domain.PaymentMethod]string{
	domain.PaymentMethodCreditCard: "Credit Card",
	domain.PaymentMethodDebitCard:  "Debit Card",
	domain.PaymentMethodPix:        "PIX",
	domain.PaymentMethodOxxo:       "OXXO",
}

// CountryBreakdown returns per-country auth rates. Countries with no volume
// are omitted.
func CountryBreakdown(txs []domain.Transaction) []domain.CountryBreakdown {
	volume := make(map[domain.Country]int, len(domain.Countries))
	authorized := make(map[domain.Country]int, len(domain.Countries))
	for _, tx := range txs {
		volume[tx.Country]++
		if tx.Authorized {
			authorized[tx.Country]++
		}
	}

	out := make([]domain.CountryBreakdown, 0, len(domain.Countries))
	for _, c := range domain.Countries {
		if volume[c] == 0 {
			continue
		}
		out = append(out, domain.CountryBreakdown{
			Country:  c,
			AuthRate: ratio(authorized[c], volume[c]),
			Baseline: CountryBaselines[c],
			Volume:   volume[c],
		})
	}
	return out
}

// MethodBreakdown returns per-payment-method auth rates. Methods with no
// volume are omitted.
func MethodBreakdown(txs []domain.Transaction) []domain.MethodBreakdown {
	volume := make(map[domain.PaymentMethod]int, len(domain.PaymentMethods))
	authorized := make(map[domain.PaymentMethod]int, len(domain.PaymentMethods))
	for _, tx := range txs {
		volume[tx.PaymentMethod]++
		if tx.Authorized {
			authorized[tx.PaymentMethod]++
		}
	}

	out := make([]domain.MethodBreakdown, 0, len(domain.PaymentMethods))
	for _, m := range domain.PaymentMethods {
		if volume[m] == 0 {
			continue
		}
		out = append(out, domain.MethodBreakdown{
			PaymentMethod: m,
			Name:          methodNames[m],
			AuthRate:      ratio(authorized[m], volume[m]),
			Volume:        volume[m],
		})
	}
	return out
}
