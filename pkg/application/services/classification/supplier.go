package classification

import "strings"

// supplierAliases maps warehouse-system supplier labels to canonical codes.
// Keys are matched as lowercase substrings, so "TianJin/WHI - Kent" and the
// common "Tianijn" misspelling both land on TianJin.
var supplierAliases = map[string]string{
	"alliance metal changzhou": "AMC",
	"amc":                      "AMC",
	"hx/ whi":                  "HX",
	"hx/whi":                   "HX",
	"zhongxing":                "ZhongXing",
	"zhong xing":               "ZhongXing",
	"tianjin":                  "TianJin",
	"tianjin/whi":              "TianJin",
	"tianijn":                  "TianJin",
	"winschem":                 "WINSCHEM",
	"changzhou winschem":       "WINSCHEM",
	"changzhou nuode":          "Nuode",
	"nuode":                    "Nuode",
}

// ResolveSupplier normalizes a raw supplier label to its canonical code.
// Labels with no known alias pass through trimmed but otherwise untouched.
func ResolveSupplier(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for alias, code := range supplierAliases {
		if strings.Contains(lower, alias) {
			return code
		}
	}
	return strings.TrimSpace(raw)
}
