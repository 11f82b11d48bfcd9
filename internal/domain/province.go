package domain

// Province is a Canadian province or territory code. Each supported
// province carries its own regulatory rule set (see JurisdictionRule).
type Province string

const (
	ProvinceON Province = "ON"
	ProvinceBC Province = "BC"
	ProvinceAB Province = "AB"
	ProvinceQC Province = "QC"
	ProvinceNS Province = "NS"
	ProvinceNB Province = "NB"
	ProvinceMB Province = "MB"
	ProvinceSK Province = "SK"
	ProvincePE Province = "PE"
	ProvinceNL Province = "NL"
	ProvinceYT Province = "YT"
	ProvinceNT Province = "NT"
	ProvinceNU Province = "NU"
)

// DefaultProvince is the fallback jurisdiction when a province has no
// configured rule set.
const DefaultProvince = ProvinceON

var provinceNames = map[Province]string{
	ProvinceON: "Ontario",
	ProvinceBC: "British Columbia",
	ProvinceAB: "Alberta",
	ProvinceQC: "Quebec",
	ProvinceNS: "Nova Scotia",
	ProvinceNB: "New Brunswick",
	ProvinceMB: "Manitoba",
	ProvinceSK: "Saskatchewan",
	ProvincePE: "Prince Edward Island",
	ProvinceNL: "Newfoundland and Labrador",
	ProvinceYT: "Yukon",
	ProvinceNT: "Northwest Territories",
	ProvinceNU: "Nunavut",
}

// SupportedProvinces are the provinces with first-class rule sets.
var SupportedProvinces = []Province{ProvinceON, ProvinceBC, ProvinceAB}

// IsValid reports whether p is a known province code.
func (p Province) IsValid() bool {
	_, ok := provinceNames[p]
	return ok
}

// Name returns the display name of the province.
func (p Province) Name() string {
	return provinceNames[p]
}

func (p Province) String() string {
	return string(p)
}
