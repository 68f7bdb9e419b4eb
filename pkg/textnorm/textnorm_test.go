package textnorm_test

import (
	"testing"

	"github.com/agentstation/hemicycle/pkg/textnorm"
	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"clean text untouched", "Ayşe Gül Öztürk", "Ayşe Gül Öztürk"},
		{"html entities", "Ahmet &amp; Mehmet &#350;ahin", "Ahmet & Mehmet Şahin"},
		{"latin1 misread lower", "Iþýk Daðlý", "Işık Dağlı"},
		{"latin1 misread upper", "ÇEKÝMSER", "ÇEKİMSER"},
		{"latin1 misread capitals", "ÞÐÝ", "ŞĞİ"},
		{"double encoded", "GÃ¼l Ã§iÃ§ek Ã¶zgÃ¼r", "Gül çiçek özgür"},
		{"double encoded capitals", "Ãœmit Ã‡elik Ã–zel", "Ümit Çelik Özel"},
		{"double encoded turkish extended", "ÅŸeker Ä±ÅŸÄ±k", "şeker ışık"},
		{"capital before punctuation kept", "KOÇ’un", "KOÇ’un"},
		{"surrounding whitespace", "  Ankara \n", "Ankara"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textnorm.Clean(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, textnorm.Clean(got), "Clean must be idempotent")
		})
	}
}

func TestSearchKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"İSTANBUL", "istanbul"},
		{"IŞIK", "isik"},
		{"ışık", "isik"},
		{"Çağrı Gülşen Öz", "cagri gulsen oz"},
		{"i̇stanbul", "istanbul"},
		{"AK PARTİ", "ak parti"},
		{"Milliyetçi Hareket", "milliyetci hareket"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.SearchKey(tt.in))
		})
	}
}

func TestKeyCombinesCleanAndFold(t *testing.T) {
	assert.Equal(t, "cekimser", textnorm.Key("ÇEKÝMSER"))
	assert.Equal(t, "gul", textnorm.Key("GÃ¼l"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"ahmet", "can", "yilmaz"}, textnorm.Tokens("  Ahmet   Can\tYILMAZ "))
	assert.Empty(t, textnorm.Tokens("   "))
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Ayşe GÜLŞEN", "gulsen"))
	assert.True(t, textnorm.Contains("Ayşe", ""))
	assert.False(t, textnorm.Contains("Ayşe", "fatma"))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ayşe Gül Öztürk", "ayse-gul-ozturk"},
		{"  Mehmet  Ali ŞAHİN ", "mehmet-ali-sahin"},
		{"Ali-Rıza O'Brien", "ali-riza-o-brien"},
		{"Iþýk", "isik"},
		{"!!!", ""},
		{"Üye 2", "uye-2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Slug(tt.in))
		})
	}
}

func TestCollation(t *testing.T) {
	got := []string{"Zonguldak", "Çorum", "Istanbul", "Ankara", "Iğdır", "İzmir", "Cizre", "Şanlıurfa", "Sinop"}
	textnorm.SortStrings(got)

	assert.Equal(t, []string{"Ankara", "Cizre", "Çorum", "Iğdır", "Istanbul", "İzmir", "Sinop", "Şanlıurfa", "Zonguldak"}, got)
	assert.Negative(t, textnorm.Compare("Cem", "Çelik"))
	assert.Zero(t, textnorm.Compare("Ali", "Ali"))
}
