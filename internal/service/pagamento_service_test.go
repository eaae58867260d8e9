package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

// comandaDe abre uma comanda com um único item no valor dado.
func comandaDe(t *testing.T, env *testEnv, valor string) uuid.UUID {
	t.Helper()
	produto := env.novoProduto(t, "Item avulso", valor, true)
	id, _ := criarComanda(t, env)
	_, err := env.comandaSvc.AdicionarItem(context.Background(), id, env.empresaID, dto.AdicionarItemRequest{
		ProdutoID: produto.ID.String(), Quantidade: 1,
	})
	require.NoError(t, err)
	return id
}

func caixaAtual(t *testing.T, env *testEnv) *dto.CaixaResponse {
	t.Helper()
	resp, err := env.caixaSvc.StatusAtual(context.Background(), env.empresaID)
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func TestPagamentoFormaInvalida(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	id := comandaDe(t, env, "10")

	_, err := env.pagamentoSvc.ProcessarPagamento(context.Background(), id, env.empresaID, dto.ProcessarPagamentoRequest{
		FormaPagamento: "Cheque",
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
}

func TestPagamentoCreditaBucketPorForma(t *testing.T) {
	cases := []struct {
		forma    string
		dinheiro string
		cartao   string
		pix      string
	}{
		{model.PagamentoDinheiro, "33.00", "0", "0"},
		{model.PagamentoCartaoCredito, "0", "33.00", "0"},
		{model.PagamentoCartaoDebito, "0", "33.00", "0"},
		{model.PagamentoPix, "0", "0", "33.00"},
		{model.PagamentoOutro, "0", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.forma, func(t *testing.T) {
			env := newTestEnv(t)
			abrirCaixa(t, env, "0")
			id := comandaDe(t, env, "33.00")

			resp, err := env.pagamentoSvc.ProcessarPagamento(context.Background(), id, env.empresaID, dto.ProcessarPagamentoRequest{
				FormaPagamento: tc.forma,
			})
			require.NoError(t, err)
			assert.Equal(t, model.ComandaPaga, resp.Status)
			require.NotNil(t, resp.FormaPagamento)
			assert.Equal(t, tc.forma, *resp.FormaPagamento)
			assert.NotNil(t, resp.DataFechamento)

			caixa := caixaAtual(t, env)
			assert.True(t, caixa.TotalVendasDinheiro.Equal(dec(tc.dinheiro)), "dinheiro: %s", caixa.TotalVendasDinheiro)
			assert.True(t, caixa.TotalVendasCartao.Equal(dec(tc.cartao)), "cartão: %s", caixa.TotalVendasCartao)
			assert.True(t, caixa.TotalVendasPix.Equal(dec(tc.pix)), "pix: %s", caixa.TotalVendasPix)
		})
	}
}

func TestPagamentoVinculaComandaAoCaixa(t *testing.T) {
	env := newTestEnv(t)
	caixa := abrirCaixa(t, env, "0")
	id := comandaDe(t, env, "10")

	resp, err := env.pagamentoSvc.ProcessarPagamento(context.Background(), id, env.empresaID, dto.ProcessarPagamentoRequest{
		FormaPagamento: model.PagamentoDinheiro,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.CaixaID)
	assert.Equal(t, caixa.ID, *resp.CaixaID)
}

func TestPagamentoSemCaixaAberto(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	id := comandaDe(t, env, "10")

	// Fechada is still payable but does not block closing the register,
	// so the caixa can disappear between closing the tab and settling it.
	comanda := env.comandas.comandas[id]
	comanda.Status = model.ComandaFechada
	env.comandas.comandas[id] = comanda

	_, err := env.caixaSvc.Fechar(context.Background(), env.empresaID, env.usuarioID, dto.FecharCaixaRequest{
		SaldoFinalInformado: dec("10"),
	})
	require.NoError(t, err)

	_, err = env.pagamentoSvc.ProcessarPagamento(context.Background(), id, env.empresaID, dto.ProcessarPagamentoRequest{
		FormaPagamento: model.PagamentoDinheiro,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
	assert.ErrorContains(t, err, "Nenhum caixa aberto")
}

func TestPagamentoDuplicado(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	id := comandaDe(t, env, "40.00")

	_, err := env.pagamentoSvc.ProcessarPagamento(context.Background(), id, env.empresaID, dto.ProcessarPagamentoRequest{
		FormaPagamento: model.PagamentoDinheiro,
	})
	require.NoError(t, err)

	_, err = env.pagamentoSvc.ProcessarPagamento(context.Background(), id, env.empresaID, dto.ProcessarPagamentoRequest{
		FormaPagamento: model.PagamentoDinheiro,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
	assert.ErrorContains(t, err, "já finalizada")

	// the bucket was credited exactly once
	caixa := caixaAtual(t, env)
	assert.True(t, caixa.TotalVendasDinheiro.Equal(dec("40.00")), "dinheiro: %s", caixa.TotalVendasDinheiro)
}

func TestPagamentoComandaCancelada(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	id := comandaDe(t, env, "10")

	_, err := env.comandaSvc.Cancelar(context.Background(), id, env.empresaID)
	require.NoError(t, err)

	_, err = env.pagamentoSvc.ProcessarPagamento(context.Background(), id, env.empresaID, dto.ProcessarPagamentoRequest{
		FormaPagamento: model.PagamentoPix,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}
