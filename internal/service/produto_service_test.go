package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

func newProdutoEnv() (*fakeProdutoRepo, *fakeCategoriaRepo, service.ProdutoService, service.CategoriaService) {
	produtos := newFakeProdutoRepo()
	categorias := newFakeCategoriaRepo()
	return produtos, categorias,
		service.NewProdutoService(produtos, categorias),
		service.NewCategoriaService(categorias)
}

func TestCriarProduto(t *testing.T) {
	_, _, svc, catSvc := newProdutoEnv()
	empresaID := uuid.New()

	cat, err := catSvc.Criar(context.Background(), empresaID, dto.CriarCategoriaRequest{Nome: "Bebidas"})
	require.NoError(t, err)

	resp, err := svc.Criar(context.Background(), empresaID, dto.CriarProdutoRequest{
		Nome:        "Suco de uva",
		Preco:       dec("12.50"),
		CategoriaID: &cat.ID,
	})
	require.NoError(t, err)
	assert.True(t, resp.Preco.Equal(dec("12.50")))
	assert.True(t, resp.Disponivel)
	require.NotNil(t, resp.CategoriaID)
	assert.Equal(t, cat.ID, *resp.CategoriaID)
}

func TestCriarProdutoPrecoNegativo(t *testing.T) {
	_, _, svc, _ := newProdutoEnv()

	_, err := svc.Criar(context.Background(), uuid.New(), dto.CriarProdutoRequest{
		Nome:  "Golpe",
		Preco: dec("-1"),
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
}

func TestCriarProdutoCategoriaDeOutraEmpresa(t *testing.T) {
	_, _, svc, catSvc := newProdutoEnv()

	cat, err := catSvc.Criar(context.Background(), uuid.New(), dto.CriarCategoriaRequest{Nome: "Alheia"})
	require.NoError(t, err)

	_, err = svc.Criar(context.Background(), uuid.New(), dto.CriarProdutoRequest{
		Nome:        "Produto",
		Preco:       dec("10"),
		CategoriaID: &cat.ID,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestAtualizarProdutoLimpaCategoria(t *testing.T) {
	_, _, svc, catSvc := newProdutoEnv()
	empresaID := uuid.New()

	cat, err := catSvc.Criar(context.Background(), empresaID, dto.CriarCategoriaRequest{Nome: "Doces"})
	require.NoError(t, err)
	criado, err := svc.Criar(context.Background(), empresaID, dto.CriarProdutoRequest{
		Nome: "Pudim", Preco: dec("8"), CategoriaID: &cat.ID,
	})
	require.NoError(t, err)

	// empty string detaches the category
	vazio := ""
	resp, err := svc.Atualizar(context.Background(), uuid.MustParse(criado.ID), empresaID, dto.AtualizarProdutoRequest{
		CategoriaID: &vazio,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.CategoriaID)
}

func TestAtualizarProdutoPreco(t *testing.T) {
	_, _, svc, _ := newProdutoEnv()
	empresaID := uuid.New()

	criado, err := svc.Criar(context.Background(), empresaID, dto.CriarProdutoRequest{Nome: "Prato", Preco: dec("20")})
	require.NoError(t, err)

	novo := dec("22.90")
	resp, err := svc.Atualizar(context.Background(), uuid.MustParse(criado.ID), empresaID, dto.AtualizarProdutoRequest{
		Preco: &novo,
	})
	require.NoError(t, err)
	assert.True(t, resp.Preco.Equal(dec("22.90")))
}

func TestRemoverProduto(t *testing.T) {
	_, _, svc, _ := newProdutoEnv()
	empresaID := uuid.New()

	criado, err := svc.Criar(context.Background(), empresaID, dto.CriarProdutoRequest{Nome: "Efêmero", Preco: dec("5")})
	require.NoError(t, err)
	id := uuid.MustParse(criado.ID)

	require.NoError(t, svc.Remover(context.Background(), id, empresaID))

	_, err = svc.Buscar(context.Background(), id, empresaID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))

	err = svc.Remover(context.Background(), id, empresaID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestRemoverProdutoDeOutraEmpresa(t *testing.T) {
	_, _, svc, _ := newProdutoEnv()

	criado, err := svc.Criar(context.Background(), uuid.New(), dto.CriarProdutoRequest{Nome: "Meu", Preco: dec("5")})
	require.NoError(t, err)

	err = svc.Remover(context.Background(), uuid.MustParse(criado.ID), uuid.New())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestCategoriaCRUD(t *testing.T) {
	_, _, _, catSvc := newProdutoEnv()
	empresaID := uuid.New()

	cat, err := catSvc.Criar(context.Background(), empresaID, dto.CriarCategoriaRequest{Nome: "Entradas"})
	require.NoError(t, err)

	atualizada, err := catSvc.Atualizar(context.Background(), uuid.MustParse(cat.ID), empresaID, dto.CriarCategoriaRequest{Nome: "Petiscos"})
	require.NoError(t, err)
	assert.Equal(t, "Petiscos", atualizada.Nome)

	lista, err := catSvc.Listar(context.Background(), empresaID)
	require.NoError(t, err)
	require.Len(t, lista, 1)

	require.NoError(t, catSvc.Remover(context.Background(), uuid.MustParse(cat.ID), empresaID))
	lista, err = catSvc.Listar(context.Background(), empresaID)
	require.NoError(t, err)
	assert.Empty(t, lista)
}
