package locale_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/charity-reports-api/internal/infrastructure/locale"
)

func TestFormatter_Ingles(t *testing.T) {
	f := locale.New("en")

	assert.Equal(t, "1,234,568", f.FormatCurrency(decimal.RequireFromString("1234567.6")))
	assert.Equal(t, "0", f.FormatCurrency(decimal.Zero))
	assert.Equal(t, "12,000", f.FormatNumber(12000))
	assert.Equal(t, "12.5%", f.FormatPercent(decimal.RequireFromString("12.46")))
	assert.Equal(t, "0.0%", f.FormatPercent(decimal.Zero))
	assert.Equal(t, "2024/03/09", f.FormatDate(time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024/03/09 18:30", f.FormatDateTime(time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)))
	assert.False(t, f.RightToLeft())
}

func TestFormatter_RightToLeft(t *testing.T) {
	assert.True(t, locale.New("fa").RightToLeft())
	assert.True(t, locale.New("ar").RightToLeft())
	assert.True(t, locale.New("he").RightToLeft())
	assert.False(t, locale.New("es-CO").RightToLeft())
}

func TestFormatter_EtiquetaInvalida(t *testing.T) {
	f := locale.New("###")
	assert.Equal(t, "en", f.Tag())
	assert.False(t, f.RightToLeft())
}
