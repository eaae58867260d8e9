package infra

// pdf.go — register closing report rendered with go-pdf/fpdf.
// One A5 page: empresa header, open/close window, balance summary
// (saldo inicial, sales per bucket, suprimentos, sangrias), computed vs
// reported closing balance and the resulting discrepancy.

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

// GerarRelatorioFechamentoPDF renders the closing summary of a fechado
// caixa and returns the PDF bytes.
func GerarRelatorioFechamentoPDF(empresa *model.Empresa, caixa *model.Caixa) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, empresa.Nome, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Relatorio de Fechamento de Caixa", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Abertura:   %s", caixa.DataAbertura.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	if caixa.DataFechamento != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Fechamento: %s", caixa.DataFechamento.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	row := func(label string, v decimal.Decimal) {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.6, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, "R$ "+v.StringFixed(2), "", 1, "R", false, 0, "")
	}

	row("Saldo inicial", caixa.SaldoInicial)
	row("Vendas em dinheiro", caixa.TotalVendasDinheiro)
	row("Vendas em cartao", caixa.TotalVendasCartao)
	row("Vendas em PIX", caixa.TotalVendasPix)
	row("Suprimentos", caixa.TotalSuprimentos)
	row("Sangrias", caixa.TotalSangrias)

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.6, 7, "Saldo calculado", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, "R$ "+caixa.SaldoFinalCalculado.StringFixed(2), "", 1, "R", false, 0, "")
	if caixa.SaldoFinalInformado != nil {
		pdf.CellFormat(contentW*0.6, 7, "Saldo informado", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 7, "R$ "+caixa.SaldoFinalInformado.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(contentW*0.6, 7, "Diferenca", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, "R$ "+caixa.DiferencaCaixa.StringFixed(2), "", 1, "R", false, 0, "")

	if caixa.ObservacoesFechamento != nil && *caixa.ObservacoesFechamento != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Obs.: "+*caixa.ObservacoesFechamento, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render relatorio: %w", err)
	}
	return buf.Bytes(), nil
}
