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

func criarComanda(t *testing.T, env *testEnv) (uuid.UUID, *dto.ComandaResponse) {
	t.Helper()
	resp, err := env.comandaSvc.Criar(context.Background(), env.empresaID, env.usuarioID, dto.CriarComandaRequest{})
	require.NoError(t, err)
	return uuid.MustParse(resp.ID), resp
}

func TestCriarComandaSemCaixaAberto(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.comandaSvc.Criar(context.Background(), env.empresaID, env.usuarioID, dto.CriarComandaRequest{})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
	assert.ErrorContains(t, err, "nenhum caixa aberto")
}

func TestCriarComanda(t *testing.T) {
	env := newTestEnv(t)
	caixa := abrirCaixa(t, env, "100")

	mesa := "12"
	resp, err := env.comandaSvc.Criar(context.Background(), env.empresaID, env.usuarioID, dto.CriarComandaRequest{Mesa: &mesa})
	require.NoError(t, err)
	assert.Equal(t, model.ComandaAberta, resp.Status)
	assert.True(t, resp.TotalComanda.IsZero())
	require.NotNil(t, resp.Mesa)
	assert.Equal(t, "12", *resp.Mesa)
	assert.Empty(t, resp.Itens)

	// The tab is attributed to the open register immediately, not only
	// at payment time, so a cancelled tab still traces to its register.
	require.NotNil(t, resp.CaixaID)
	assert.Equal(t, caixa.ID, *resp.CaixaID)
}

func TestAdicionarItemCongelaPreco(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	produto := env.novoProduto(t, "Suco de laranja", "25.50", true)
	comandaID, _ := criarComanda(t, env)

	resp, err := env.comandaSvc.AdicionarItem(context.Background(), comandaID, env.empresaID, dto.AdicionarItemRequest{
		ProdutoID: produto.ID.String(), Quantidade: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Itens, 1)
	assert.True(t, resp.Itens[0].PrecoUnitarioCobrado.Equal(dec("25.50")))
	assert.True(t, resp.Itens[0].Subtotal.Equal(dec("51.00")))
	assert.True(t, resp.TotalComanda.Equal(dec("51.00")))

	// catalog reprice after the fact must not touch the charged price
	produto.Preco = dec("99.99")
	require.NoError(t, env.produtos.Update(context.Background(), produto))

	itemID := uuid.MustParse(resp.Itens[0].ID)
	resp, err = env.comandaSvc.AtualizarItem(context.Background(), comandaID, itemID, env.empresaID, dto.AtualizarItemRequest{
		Quantidade: 3,
	})
	require.NoError(t, err)
	require.Len(t, resp.Itens, 1)
	assert.True(t, resp.Itens[0].PrecoUnitarioCobrado.Equal(dec("25.50")))
	assert.True(t, resp.Itens[0].Subtotal.Equal(dec("76.50")))
	assert.True(t, resp.TotalComanda.Equal(dec("76.50")))
}

func TestTotalComandaAcompanhaItens(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	cafe := env.novoProduto(t, "Café", "5.00", true)
	bolo := env.novoProduto(t, "Bolo", "12.00", true)
	comandaID, _ := criarComanda(t, env)

	resp, err := env.comandaSvc.AdicionarItem(context.Background(), comandaID, env.empresaID, dto.AdicionarItemRequest{
		ProdutoID: cafe.ID.String(), Quantidade: 2,
	})
	require.NoError(t, err)
	resp, err = env.comandaSvc.AdicionarItem(context.Background(), comandaID, env.empresaID, dto.AdicionarItemRequest{
		ProdutoID: bolo.ID.String(), Quantidade: 1,
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalComanda.Equal(dec("22.00")))

	var cafeItemID uuid.UUID
	for _, item := range resp.Itens {
		if item.ProdutoID == cafe.ID.String() {
			cafeItemID = uuid.MustParse(item.ID)
		}
	}
	require.NotEqual(t, uuid.Nil, cafeItemID)

	resp, err = env.comandaSvc.RemoverItem(context.Background(), comandaID, cafeItemID, env.empresaID)
	require.NoError(t, err)
	assert.True(t, resp.TotalComanda.Equal(dec("12.00")))
	assert.Len(t, resp.Itens, 1)
}

func TestAdicionarItemProdutoIndisponivel(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	produto := env.novoProduto(t, "Fora do cardápio", "10", false)
	comandaID, _ := criarComanda(t, env)

	_, err := env.comandaSvc.AdicionarItem(context.Background(), comandaID, env.empresaID, dto.AdicionarItemRequest{
		ProdutoID: produto.ID.String(), Quantidade: 1,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
	assert.ErrorContains(t, err, "indisponível")
}

func TestAdicionarItemComandaPaga(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	produto := env.novoProduto(t, "Refrigerante", "8", true)
	comandaID, _ := criarComanda(t, env)

	_, err := env.comandaSvc.AdicionarItem(context.Background(), comandaID, env.empresaID, dto.AdicionarItemRequest{
		ProdutoID: produto.ID.String(), Quantidade: 1,
	})
	require.NoError(t, err)
	_, err = env.pagamentoSvc.ProcessarPagamento(context.Background(), comandaID, env.empresaID, dto.ProcessarPagamentoRequest{
		FormaPagamento: model.PagamentoDinheiro,
	})
	require.NoError(t, err)

	_, err = env.comandaSvc.AdicionarItem(context.Background(), comandaID, env.empresaID, dto.AdicionarItemRequest{
		ProdutoID: produto.ID.String(), Quantidade: 1,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestCancelarComanda(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	comandaID, _ := criarComanda(t, env)

	resp, err := env.comandaSvc.Cancelar(context.Background(), comandaID, env.empresaID)
	require.NoError(t, err)
	assert.Equal(t, model.ComandaCancelada, resp.Status)
	assert.NotNil(t, resp.DataFechamento)
}

func TestCancelarComandaJaCancelada(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	comandaID, _ := criarComanda(t, env)

	_, err := env.comandaSvc.Cancelar(context.Background(), comandaID, env.empresaID)
	require.NoError(t, err)

	_, err = env.comandaSvc.Cancelar(context.Background(), comandaID, env.empresaID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
	assert.ErrorContains(t, err, model.ComandaCancelada)
}

func TestVisualizarComandaDeOutraEmpresa(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	comandaID, _ := criarComanda(t, env)

	_, err := env.comandaSvc.Visualizar(context.Background(), comandaID, uuid.New())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestListarComandasFiltroStatus(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")
	aberta, _ := criarComanda(t, env)
	cancelada, _ := criarComanda(t, env)
	_, err := env.comandaSvc.Cancelar(context.Background(), cancelada, env.empresaID)
	require.NoError(t, err)

	// loosely-cased input is normalized before filtering
	out, err := env.comandaSvc.Listar(context.Background(), env.empresaID, dto.ListarComandasQuery{Status: "aberta"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, aberta.String(), out[0].ID)

	out, err = env.comandaSvc.Listar(context.Background(), env.empresaID, dto.ListarComandasQuery{Status: "CANCELADA"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, cancelada.String(), out[0].ID)
}

func TestListarComandasStatusInvalido(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.comandaSvc.Listar(context.Background(), env.empresaID, dto.ListarComandasQuery{Status: "EmPreparo"})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
}

func TestListarComandasDataInvalida(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.comandaSvc.Listar(context.Background(), env.empresaID, dto.ListarComandasQuery{DataInicio: "31/12/2024"})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
}

func TestListarComandasFiltroMesa(t *testing.T) {
	env := newTestEnv(t)
	abrirCaixa(t, env, "0")

	mesa := "7"
	comMesa, err := env.comandaSvc.Criar(context.Background(), env.empresaID, env.usuarioID, dto.CriarComandaRequest{Mesa: &mesa})
	require.NoError(t, err)
	criarComanda(t, env)

	out, err := env.comandaSvc.Listar(context.Background(), env.empresaID, dto.ListarComandasQuery{Mesa: "7"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, comMesa.ID, out[0].ID)
}
