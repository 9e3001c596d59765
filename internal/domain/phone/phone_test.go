package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hatim85f/codex-crm/internal/domain/phone"
)

func TestNormalizeToE164_NumeroInternacionalCompleto(t *testing.T) {
	got, ok := phone.NormalizeToE164("+971501234567", "AE")
	assert.True(t, ok)
	assert.Equal(t, "+971501234567", got)
}

func TestNormalizeToE164_SinPrefijoUsaRegion(t *testing.T) {
	// Número local de EAU sin prefijo internacional.
	got, ok := phone.NormalizeToE164("0501234567", "AE")
	assert.True(t, ok)
	assert.Equal(t, "+971501234567", got)
}

func TestNormalizeToE164_FormatosEquivalentes(t *testing.T) {
	// Distintas formas de escribir el mismo número convergen al mismo E.164.
	variants := []string{
		"+971 50 123 4567",
		"+971-50-123-4567",
		"00971501234567",
		"0501234567",
	}
	for _, v := range variants {
		got, ok := phone.NormalizeToE164(v, "AE")
		assert.True(t, ok, "variante %q debe normalizar", v)
		assert.Equal(t, "+971501234567", got, "variante %q", v)
	}
}

func TestNormalizeToE164_RegionDistinta(t *testing.T) {
	got, ok := phone.NormalizeToE164("3001234567", "CO")
	assert.True(t, ok)
	assert.Equal(t, "+573001234567", got)
}

func TestNormalizeToE164_Invalidos(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"abc",
		"+123",       // demasiado corto para cualquier plan
		"999999",     // no marcable en AE
		"+999999999", // código de país inexistente
	}
	for _, raw := range cases {
		_, ok := phone.NormalizeToE164(raw, "AE")
		assert.False(t, ok, "%q no debe normalizar", raw)
	}
}

func TestNormalizeToE164_SalidaSiempreCanonica(t *testing.T) {
	got, ok := phone.NormalizeToE164("  +971 (50) 123-4567  ", "AE")
	assert.True(t, ok)
	// "+" seguido solo de dígitos, sin espacios ni separadores.
	assert.Regexp(t, `^\+\d+$`, got)
}
