package parties_test

import (
	"testing"

	"github.com/agentstation/hemicycle/pkg/parties"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want parties.Class
	}{
		{"AK Parti", parties.AKP},
		{"Adalet ve Kalkınma Partisi", parties.AKP},
		{"CHP", parties.CHP},
		{"Cumhuriyet Halk Partisi", parties.CHP},
		{"Milliyetçi Hareket Partisi", parties.MHP},
		{"DEM PARTİ", parties.DEM},
		{"Halkların Eşitlik ve Demokrasi Partisi", parties.DEM},
		{"İYİ Parti", parties.IYI},
		{"Saadet Partisi", parties.Saadet},
		{"Gelecek Partisi", parties.Gelecek},
		{"DEVA Partisi", parties.DEVA},
		{"Demokrasi ve Atılım Partisi", parties.DEVA},
		{"Türkiye İşçi Partisi", parties.TIP},
		{"TİP", parties.TIP},
		{"Hür Dava Partisi", parties.HudaPar},
		{"HÜDA PAR", parties.HudaPar},
		{"Emek Partisi", parties.EMEP},
		{"EMEP", parties.EMEP},
		{"Bağımsız", parties.Independent},
		{"", parties.Independent},
		{"Bilinmeyen Hareket", parties.Independent},
		{"ÝYÝ Parti", parties.IYI},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parties.Classify(tt.raw))
		})
	}
}

// The names below share substrings; each pair pins the rule order.
func TestClassifyAmbiguousPairs(t *testing.T) {
	tests := []struct {
		name  string
		a     string
		wantA parties.Class
		b     string
		wantB parties.Class
	}{
		{"yeni yol vs yeniden refah", "Yeni Yol Partisi", parties.YeniYol, "Yeniden Refah Partisi", parties.YRP},
		{"yesiller vs gelecek", "Yeşiller ve Sol Gelecek Partisi", parties.DEM, "Gelecek Partisi", parties.Gelecek},
		{"demokrat vs demokratik sol", "Demokrat Parti", parties.DP, "Demokratik Sol Parti", parties.DSP},
		{"demokratik sol vs bolgeler", "Demokratik Sol Parti", parties.DSP, "Demokratik Bölgeler Partisi", parties.DBP},
		{"ak parti vs iyi", "AK Parti", parties.AKP, "İYİ Parti", parties.IYI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantA, parties.Classify(tt.a))
			assert.Equal(t, tt.wantB, parties.Classify(tt.b))
		})
	}
}

func TestSeatingOrder(t *testing.T) {
	assert.Equal(t, 1, parties.SeatingOrder(parties.TIP))
	assert.Equal(t, 5, parties.SeatingOrder(parties.CHP))
	assert.Equal(t, 11, parties.SeatingOrder(parties.AKP))
	assert.Equal(t, 17, parties.SeatingOrder(parties.Independent))
	assert.Equal(t, parties.UnknownOrder, parties.SeatingOrder(parties.Class("zzz")))
}

func TestClasses(t *testing.T) {
	classes := parties.Classes()
	assert.Len(t, classes, 17)
	assert.Equal(t, parties.TIP, classes[0])
	assert.Equal(t, parties.Independent, classes[len(classes)-1])
	for i := 1; i < len(classes); i++ {
		assert.True(t, parties.Less(classes[i-1], classes[i]))
	}
}

func TestParseAndLabel(t *testing.T) {
	c, ok := parties.Parse(" CHP ")
	assert.True(t, ok)
	assert.Equal(t, parties.CHP, c)

	_, ok = parties.Parse("whig")
	assert.False(t, ok)

	assert.Equal(t, "AK Parti", parties.Label(parties.AKP))
	assert.Equal(t, "whig", parties.Label(parties.Class("whig")))
	assert.True(t, parties.Independent.IsIndependent())
	assert.Equal(t, "mhp", parties.MHP.String())
}
