package analyzer

// mccByRegion maps ISO region codes to mobile country codes for the regions
// the tool most commonly sees. Unlisted regions report "unknown".
var mccByRegion = map[string]string{
	"AR": "722",
	"AT": "232",
	"BE": "206",
	"BR": "724",
	"CH": "228",
	"DE": "262",
	"ES": "214",
	"FR": "208",
	"GB": "234",
	"IE": "272",
	"IT": "222",
	"MX": "334",
	"NL": "204",
	"PT": "268",
	"US": "310",
}

// mccForRegion resolves the mobile country code for a region.
func mccForRegion(region string) string {
	if mcc, ok := mccByRegion[region]; ok {
		return mcc
	}
	return "unknown"
}
