package provider

import (
	"context"
	"net/url"
)

// CarrierProvider queries an external carrier lookup API.
type CarrierProvider struct {
	client
}

// Kind implements Provider.
func (p *CarrierProvider) Kind() Kind { return KindCarrier }

// Fetch looks up carrier data for a phone number. API failures degrade to
// the fallback payload rather than an error.
func (p *CarrierProvider) Fetch(ctx context.Context, phone string) (map[string]any, error) {
	lookupURL := p.cfg.BaseURL + "/carrier/lookup?phone=" + url.QueryEscape(phone)

	raw, err := p.getJSON(ctx, lookupURL)
	if err != nil {
		p.log.Error().Ctx(ctx).Err(err).Msg("carrier lookup failed, using fallback data")
		return carrierFallback(), nil
	}
	return normalizeCarrierData(raw), nil
}

// normalizeCarrierData maps the provider's response fields onto the shape
// the aggregator merges.
func normalizeCarrierData(raw map[string]any) map[string]any {
	return map[string]any{
		"carrier": map[string]any{
			"name":    raw["carrier_name"],
			"type":    raw["carrier_type"],
			"country": raw["country_code"],
			"network": map[string]any{
				"mcc":        raw["mcc"],
				"mnc":        raw["mnc"],
				"technology": raw["network_type"],
			},
		},
		"porting": map[string]any{
			"is_ported":        getOr(raw, "ported", false),
			"original_carrier": raw["original_carrier"],
			"port_date":        raw["port_date"],
		},
		"status": map[string]any{
			"active":    getOr(raw, "active", true),
			"roaming":   getOr(raw, "roaming", false),
			"last_seen": raw["last_seen"],
		},
	}
}

func carrierFallback() map[string]any {
	return map[string]any{
		"carrier": map[string]any{
			"name":    "Unknown",
			"type":    "Unknown",
			"country": "Unknown",
		},
		"status": map[string]any{
			"active":   true,
			"verified": false,
		},
	}
}
