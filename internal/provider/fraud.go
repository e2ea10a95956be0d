package provider

import "context"

// FraudProvider queries an external fraud detection API.
type FraudProvider struct {
	client
}

// Kind implements Provider.
func (p *FraudProvider) Kind() Kind { return KindFraud }

// Fetch checks a phone number against the fraud API. API failures degrade
// to the fallback payload rather than an error.
func (p *FraudProvider) Fetch(ctx context.Context, phone string) (map[string]any, error) {
	raw, err := p.postJSON(ctx, p.cfg.BaseURL+"/fraud/check", map[string]string{
		"phone_number": phone,
	})
	if err != nil {
		p.log.Error().Ctx(ctx).Err(err).Msg("fraud check failed, using fallback data")
		return fraudFallback(), nil
	}
	return normalizeFraudData(raw), nil
}

// normalizeFraudData maps the provider's response fields onto the shape the
// aggregator merges.
func normalizeFraudData(raw map[string]any) map[string]any {
	return map[string]any{
		"risk_score":       getOr(raw, "risk_score", 0),
		"risk_level":       getOr(raw, "risk_level", "unknown"),
		"fraud_indicators": getOr(raw, "indicators", []any{}),
		"spam_reports":     getOr(raw, "spam_reports", 0),
		"blacklist_status": getOr(raw, "blacklisted", false),
		"verification": map[string]any{
			"verified": getOr(raw, "verified", false),
			"method":   raw["verification_method"],
			"date":     raw["verification_date"],
		},
	}
}

func fraudFallback() map[string]any {
	return map[string]any{
		"risk_score":       0,
		"risk_level":       "unknown",
		"fraud_indicators": []any{},
		"verification": map[string]any{
			"verified": false,
		},
	}
}
