package model

// Region is one selectable trending-chart region.
type Region struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Regions is the fixed list of selectable countries, in display order.
var Regions = []Region{
	{"South Korea", "KR"}, {"United States", "US"}, {"Japan", "JP"}, {"United Kingdom", "GB"}, {"Germany", "DE"},
	{"France", "FR"}, {"Canada", "CA"}, {"Australia", "AU"}, {"India", "IN"}, {"Brazil", "BR"},
	{"Mexico", "MX"}, {"Indonesia", "ID"}, {"Russia", "RU"}, {"Italy", "IT"}, {"Spain", "ES"},
	{"Netherlands", "NL"}, {"Sweden", "SE"}, {"Norway", "NO"}, {"Denmark", "DK"}, {"Finland", "FI"},
	{"Poland", "PL"}, {"Turkey", "TR"}, {"Saudi Arabia", "SA"}, {"United Arab Emirates", "AE"}, {"South Africa", "ZA"},
	{"Thailand", "TH"}, {"Vietnam", "VN"}, {"Philippines", "PH"}, {"Malaysia", "MY"}, {"Singapore", "SG"},
	{"Hong Kong", "HK"}, {"Taiwan", "TW"}, {"Argentina", "AR"}, {"Chile", "CL"}, {"Colombia", "CO"},
	{"Peru", "PE"}, {"Portugal", "PT"}, {"Greece", "GR"}, {"Ireland", "IE"}, {"New Zealand", "NZ"},
	{"Belgium", "BE"}, {"Austria", "AT"}, {"Switzerland", "CH"}, {"Czechia", "CZ"}, {"Hungary", "HU"},
	{"Israel", "IL"}, {"Egypt", "EG"}, {"Nigeria", "NG"}, {"Bangladesh", "BD"}, {"Pakistan", "PK"},
}

// IsKnownRegion reports whether code is one of the selectable regions.
func IsKnownRegion(code string) bool {
	for _, r := range Regions {
		if r.Code == code {
			return true
		}
	}
	return false
}
