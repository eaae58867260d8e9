package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSaldoCalculado(t *testing.T) {
	c := &Caixa{
		SaldoInicial:        d("100.00"),
		TotalVendasDinheiro: d("30.00"),
		TotalVendasCartao:   d("40.00"),
		TotalVendasPix:      d("25.00"),
		TotalSuprimentos:    d("20.00"),
		TotalSangrias:       d("10.00"),
	}
	assert.True(t, c.SaldoCalculado().Equal(d("205.00")), "got %s", c.SaldoCalculado())
}

func TestLicencaExpirada(t *testing.T) {
	agora := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)

	ontem := Empresa{LicencaValidaAte: agora.AddDate(0, 0, -1)}
	assert.True(t, ontem.LicencaExpirada(agora))

	// valid through the end of the expiry day
	hojeCedo := Empresa{LicencaValidaAte: time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)}
	assert.False(t, hojeCedo.LicencaExpirada(agora))

	amanha := Empresa{LicencaValidaAte: agora.AddDate(0, 0, 1)}
	assert.False(t, amanha.LicencaExpirada(agora))
}
