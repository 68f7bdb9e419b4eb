// Package parties maps free-form party names onto a closed set of party
// classes and defines the left-to-right seating order of the chamber.
package parties

import (
	"slices"
	"strings"

	"github.com/agentstation/hemicycle/pkg/textnorm"
)

// Class is the canonical code of a parliamentary party.
type Class string

// Party classes.
const (
	TIP         Class = "tip"
	DBP         Class = "dbp"
	EMEP        Class = "emep"
	DEM         Class = "dem"
	CHP         Class = "chp"
	DSP         Class = "dsp"
	IYI         Class = "iyi"
	DP          Class = "dp"
	DEVA        Class = "deva"
	Gelecek     Class = "gelecek"
	AKP         Class = "akp"
	MHP         Class = "mhp"
	YeniYol     Class = "yeniyol"
	Saadet      Class = "saadet"
	HudaPar     Class = "hudapar"
	YRP         Class = "yrp"
	Independent Class = "bagimsiz"
)

// UnknownOrder is the seating position of a class outside the known set.
const UnknownOrder = 99

// Rule assigns Class to any party name whose search key contains one of
// Patterns. Patterns are written in search-key form (folded, lower case).
type Rule struct {
	Patterns []string
	Class    Class
}

// Rules is evaluated top to bottom and the first hit wins. The order is
// load-bearing: "yeni yol" must be tested before "yeniden refah", the DEM
// rule (which includes "yesiller") before "gelecek", and the long-form
// names before the bare abbreviations "tip", "dp", "dsp" and "dbp".
var Rules = []Rule{
	{Patterns: []string{"ak parti", "adalet ve kalkinma"}, Class: AKP},
	{Patterns: []string{"chp", "cumhuriyet halk"}, Class: CHP},
	{Patterns: []string{"mhp", "milliyetci hareket"}, Class: MHP},
	{Patterns: []string{"dem parti", "esitlik ve demokrasi", "yesiller"}, Class: DEM},
	{Patterns: []string{"iyi"}, Class: IYI},
	{Patterns: []string{"saadet"}, Class: Saadet},
	{Patterns: []string{"gelecek"}, Class: Gelecek},
	{Patterns: []string{"deva", "atilim"}, Class: DEVA},
	{Patterns: []string{"yeni yol"}, Class: YeniYol},
	{Patterns: []string{"yeniden refah"}, Class: YRP},
	{Patterns: []string{"turkiye isci", "tip"}, Class: TIP},
	{Patterns: []string{"hur dava", "huda"}, Class: HudaPar},
	{Patterns: []string{"demokrat parti", "dp"}, Class: DP},
	{Patterns: []string{"emek partisi", "emep"}, Class: EMEP},
	{Patterns: []string{"demokratik bolgeler", "dbp"}, Class: DBP},
	{Patterns: []string{"demokratik sol", "dsp"}, Class: DSP},
}

// seating is the physical left-to-right order of party blocks.
var seating = map[Class]int{
	TIP:         1,
	DBP:         2,
	EMEP:        3,
	DEM:         4,
	CHP:         5,
	DSP:         6,
	IYI:         7,
	DP:          8,
	DEVA:        9,
	Gelecek:     10,
	AKP:         11,
	MHP:         12,
	YeniYol:     13,
	Saadet:      14,
	HudaPar:     15,
	YRP:         16,
	Independent: 17,
}

var labels = map[Class]string{
	TIP:         "Türkiye İşçi Partisi",
	DBP:         "Demokratik Bölgeler Partisi",
	EMEP:        "Emek Partisi",
	DEM:         "DEM Parti",
	CHP:         "Cumhuriyet Halk Partisi",
	DSP:         "Demokratik Sol Parti",
	IYI:         "İYİ Parti",
	DP:          "Demokrat Parti",
	DEVA:        "DEVA Partisi",
	Gelecek:     "Gelecek Partisi",
	AKP:         "AK Parti",
	MHP:         "Milliyetçi Hareket Partisi",
	YeniYol:     "Yeni Yol",
	Saadet:      "Saadet Partisi",
	HudaPar:     "HÜDA PAR",
	YRP:         "Yeniden Refah Partisi",
	Independent: "Bağımsız",
}

// Classify returns the class of a raw party name. Names that match no rule,
// including the empty string, are Independent.
func Classify(raw string) Class {
	key := textnorm.Key(raw)
	if key == "" {
		return Independent
	}
	for _, rule := range Rules {
		for _, pattern := range rule.Patterns {
			if strings.Contains(key, pattern) {
				return rule.Class
			}
		}
	}
	return Independent
}

// SeatingOrder returns the block position of c, 1 being leftmost.
// Unknown classes sort after every known one.
func SeatingOrder(c Class) int {
	if order, ok := seating[c]; ok {
		return order
	}
	return UnknownOrder
}

// Classes returns every known class in seating order.
func Classes() []Class {
	out := make([]Class, 0, len(seating))
	for c := range seating {
		out = append(out, c)
	}
	sortBySeating(out)
	return out
}

// Parse validates a class code such as "chp". The match is case-insensitive.
func Parse(code string) (Class, bool) {
	c := Class(strings.ToLower(strings.TrimSpace(code)))
	_, ok := seating[c]
	return c, ok
}

// Label returns a display name for c.
func Label(c Class) string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// String implements fmt.Stringer.
func (c Class) String() string {
	return string(c)
}

// IsIndependent reports whether c is the catch-all class.
func (c Class) IsIndependent() bool {
	return c == Independent
}

// Less orders classes by seating position, then by code.
func Less(a, b Class) bool {
	oa, ob := SeatingOrder(a), SeatingOrder(b)
	if oa != ob {
		return oa < ob
	}
	return a < b
}

func sortBySeating(cs []Class) {
	slices.SortFunc(cs, func(a, b Class) int {
		if d := SeatingOrder(a) - SeatingOrder(b); d != 0 {
			return d
		}
		return strings.Compare(string(a), string(b))
	})
}
