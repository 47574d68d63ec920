package catalog

// WorldPartnerCode is the UN Comtrade sentinel partner code for world totals.
const WorldPartnerCode = "0"

// countryCodes maps UN M49 numeric codes to display names.
var countryCodes = map[string]string{
	"842": "United States",
	"156": "China",
	"276": "Germany",
	"392": "Japan",
	"410": "South Korea",
	"36":  "Australia",
	"124": "Canada",
	"826": "United Kingdom",
	"250": "France",
	"699": "India",
	"180": "Democratic Republic of the Congo",
	"360": "Indonesia",
	"76":  "Brazil",
	"380": "Italy",
	"528": "Netherlands",
	"56":  "Belgium",
	"710": "South Africa",
	"152": "Chile",
	"32":  "Argentina",
	"608": "Philippines",
	"643": "Russia",
	"0":   "World",
}

// flowCodes maps UN Comtrade flow codes to display names.
var flowCodes = map[string]string{
	"M": "Imports",
	"X": "Exports",
}

// CountryName resolves an M49 code to a display name. Unknown codes render
// as "country <code>" so answers stay traceable to the source value.
func CountryName(code string) string {
	if name, ok := countryCodes[code]; ok {
		return name
	}
	return "country " + code
}

// FlowName resolves a flow code to "Imports" or "Exports", passing unknown
// codes through unchanged.
func FlowName(code string) string {
	if name, ok := flowCodes[code]; ok {
		return name
	}
	return code
}
