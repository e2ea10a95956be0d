// Package number parses and normalizes phone numbers for analysis.
//
// Input must be in international format (a leading + and country code);
// there is no default region to guess against. Parsing and validation are
// delegated to the libphonenumber port.
package number

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidNumber is returned for input that does not parse as a phone
// number or fails validation against the country's numbering plan.
var ErrInvalidNumber = errors.New("invalid phone number")

// nonDigits matches everything that is not a decimal digit.
var nonDigits = regexp.MustCompile(`\D`)

// Number is a parsed, validated phone number. It is immutable once built.
type Number struct {
	// Raw is the input string as the caller supplied it.
	Raw string

	// E164 is the canonical +<country><national> form, used as the cache
	// key for analysis results.
	E164 string

	// International is the human-readable international format.
	International string

	// National is the national format without the country prefix.
	National string

	// Clean is the raw input with every non-digit stripped, the form the
	// social platform probes embed in URLs.
	Clean string

	// Region is the ISO 3166-1 alpha-2 region code ("ES", "US").
	Region string

	// CountryCode is the E.164 country calling code.
	CountryCode int

	// Type is the line type: "mobile", "fixed_line", "voip", ...
	Type string

	parsed *phonenumbers.PhoneNumber
}

// Parse parses raw as an international phone number. It fails with
// ErrInvalidNumber when the input cannot be parsed or is not valid for its
// numbering plan.
func Parse(raw string) (*Number, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidNumber)
	}

	parsed, err := phonenumbers.Parse(trimmed, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return nil, fmt.Errorf("%w: %s is not valid for its region", ErrInvalidNumber, trimmed)
	}

	return &Number{
		Raw:           raw,
		E164:          phonenumbers.Format(parsed, phonenumbers.E164),
		International: phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL),
		National:      phonenumbers.Format(parsed, phonenumbers.NATIONAL),
		Clean:         nonDigits.ReplaceAllString(trimmed, ""),
		Region:        phonenumbers.GetRegionCodeForNumber(parsed),
		CountryCode:   int(parsed.GetCountryCode()),
		Type:          typeName(phonenumbers.GetNumberType(parsed)),
		parsed:        parsed,
	}, nil
}

// CarrierName returns the carrier the number block is allocated to, or an
// empty string when the carrier data has no entry. Ported numbers keep
// reporting their original block owner; that limitation is inherent to
// prefix-based carrier data.
func (n *Number) CarrierName() string {
	name, err := phonenumbers.GetCarrierForNumber(n.parsed, "en")
	if err != nil {
		return ""
	}
	return name
}

// Location returns a human-readable description of the number's geographic
// area, or an empty string when none is known.
func (n *Number) Location() string {
	desc, err := phonenumbers.GetGeocodingForNumber(n.parsed, "en")
	if err != nil {
		return ""
	}
	return desc
}

// Timezones returns the IANA time zones the number's area spans.
func (n *Number) Timezones() []string {
	zones, err := phonenumbers.GetTimezonesForNumber(n.parsed)
	if err != nil {
		return nil
	}
	return zones
}

// typeName maps the library's line type enum to a stable lowercase label.
func typeName(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.FIXED_LINE:
		return "fixed_line"
	case phonenumbers.MOBILE:
		return "mobile"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "fixed_line_or_mobile"
	case phonenumbers.TOLL_FREE:
		return "toll_free"
	case phonenumbers.PREMIUM_RATE:
		return "premium_rate"
	case phonenumbers.SHARED_COST:
		return "shared_cost"
	case phonenumbers.VOIP:
		return "voip"
	case phonenumbers.PERSONAL_NUMBER:
		return "personal"
	case phonenumbers.PAGER:
		return "pager"
	case phonenumbers.UAN:
		return "uan"
	case phonenumbers.VOICEMAIL:
		return "voicemail"
	default:
		return "unknown"
	}
}

// String returns the international format.
func (n *Number) String() string {
	return n.International
}
