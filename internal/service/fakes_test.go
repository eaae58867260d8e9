package service_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

// serialTxRunner executes transaction bodies one at a time, the way the
// database serializes them through row locks. Fakes hand out copies and
// write them back on UpdateTx, so a lost update would be observable if
// two bodies ever interleaved.
type serialTxRunner struct{ mu sync.Mutex }

func (r *serialTxRunner) RunInTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(nil)
}

// ── Fake CaixaRepository ──────────────────────────────────────────────────────

type fakeCaixaRepo struct {
	mu     sync.Mutex
	caixas map[uuid.UUID]model.Caixa
	movs   []model.MovimentacaoCaixa
}

func newFakeCaixaRepo() *fakeCaixaRepo {
	return &fakeCaixaRepo{caixas: make(map[uuid.UUID]model.Caixa)}
}

func (r *fakeCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.caixas[c.ID] = *c
	return nil
}

func (r *fakeCaixaRepo) FindAbertoPorEmpresa(_ context.Context, empresaID uuid.UUID) (*model.Caixa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findAberto(empresaID)
}

func (r *fakeCaixaRepo) findAberto(empresaID uuid.UUID) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.EmpresaID == empresaID && c.Status == model.CaixaAberto {
			cp := c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCaixaRepo) FindByIDAndEmpresa(_ context.Context, id, empresaID uuid.UUID) (*model.Caixa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caixas[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := c
	return &cp, nil
}

func (r *fakeCaixaRepo) FindAbertoForUpdateTx(_ *gorm.DB, empresaID uuid.UUID) (*model.Caixa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findAberto(empresaID)
}

func (r *fakeCaixaRepo) UpdateTx(_ *gorm.DB, c *model.Caixa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caixas[c.ID] = *c
	return nil
}

func (r *fakeCaixaRepo) CreateMovimentacaoTx(_ *gorm.DB, m *model.MovimentacaoCaixa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CriadoEm = time.Now()
	r.movs = append(r.movs, *m)
	return nil
}

func (r *fakeCaixaRepo) ListMovimentacoesRecentes(_ context.Context, caixaID uuid.UUID, limit int) ([]model.MovimentacaoCaixa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MovimentacaoCaixa
	for _, m := range r.movs {
		if m.CaixaID == caixaID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CriadoEm.After(out[j].CriadoEm) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCaixaRepo) SumMovimentacoesPorTipo(_ context.Context, caixaID uuid.UUID) (map[string]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sums := map[string]decimal.Decimal{}
	for _, m := range r.movs {
		if m.CaixaID == caixaID {
			sums[m.Tipo] = sums[m.Tipo].Add(m.Valor)
		}
	}
	return sums, nil
}

var _ repository.CaixaRepository = (*fakeCaixaRepo)(nil)

// ── Fake ComandaRepository ────────────────────────────────────────────────────

type fakeComandaRepo struct {
	mu       sync.Mutex
	comandas map[uuid.UUID]model.Comanda
	itens    map[uuid.UUID]model.ItemComanda
}

func newFakeComandaRepo() *fakeComandaRepo {
	return &fakeComandaRepo{
		comandas: make(map[uuid.UUID]model.Comanda),
		itens:    make(map[uuid.UUID]model.ItemComanda),
	}
}

func (r *fakeComandaRepo) Create(_ context.Context, c *model.Comanda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.comandas[c.ID] = *c
	return nil
}

func (r *fakeComandaRepo) FindByIDAndEmpresa(_ context.Context, id, empresaID uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comandas[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := c
	cp.ItensComanda = r.itensDe(id)
	return &cp, nil
}

func (r *fakeComandaRepo) itensDe(comandaID uuid.UUID) []model.ItemComanda {
	var out []model.ItemComanda
	for _, item := range r.itens {
		if item.ComandaID == comandaID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *fakeComandaRepo) List(_ context.Context, empresaID uuid.UUID, filtros repository.ComandaFiltros) ([]model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Comanda
	for _, c := range r.comandas {
		if c.EmpresaID != empresaID {
			continue
		}
		if filtros.Status != nil && c.Status != *filtros.Status {
			continue
		}
		if filtros.Mesa != nil && (c.Mesa == nil || *c.Mesa != *filtros.Mesa) {
			continue
		}
		if filtros.DataInicio != nil && c.DataAbertura.Before(*filtros.DataInicio) {
			continue
		}
		if filtros.DataFim != nil && c.DataAbertura.After(*filtros.DataFim) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeComandaRepo) findLocked(id, empresaID uuid.UUID, statuses ...string) (*model.Comanda, error) {
	c, ok := r.comandas[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, gorm.ErrRecordNotFound
	}
	if len(statuses) > 0 {
		match := false
		for _, s := range statuses {
			if c.Status == s {
				match = true
			}
		}
		if !match {
			return nil, gorm.ErrRecordNotFound
		}
	}
	cp := c
	return &cp, nil
}

func (r *fakeComandaRepo) FindForUpdateTx(_ *gorm.DB, id, empresaID uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(id, empresaID)
}

func (r *fakeComandaRepo) FindAbertaForUpdateTx(_ *gorm.DB, id, empresaID uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(id, empresaID, model.ComandaAberta)
}

func (r *fakeComandaRepo) FindPagavelForUpdateTx(_ *gorm.DB, id, empresaID uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(id, empresaID, model.ComandaAberta, model.ComandaFechada)
}

func (r *fakeComandaRepo) UpdateTx(_ *gorm.DB, c *model.Comanda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.ItensComanda = nil
	r.comandas[c.ID] = cp
	return nil
}

func (r *fakeComandaRepo) CountAbertasTx(_ *gorm.DB, empresaID uuid.UUID) (int64, error) {
	return r.CountAbertas(context.Background(), empresaID)
}

func (r *fakeComandaRepo) CountAbertas(_ context.Context, empresaID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.comandas {
		if c.EmpresaID == empresaID && c.Status == model.ComandaAberta {
			n++
		}
	}
	return n, nil
}

func (r *fakeComandaRepo) FindItemTx(_ *gorm.DB, itemID, comandaID uuid.UUID) (*model.ItemComanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.itens[itemID]
	if !ok || item.ComandaID != comandaID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := item
	return &cp, nil
}

func (r *fakeComandaRepo) CreateItemTx(_ *gorm.DB, item *model.ItemComanda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	r.itens[item.ID] = *item
	return nil
}

func (r *fakeComandaRepo) UpdateItemTx(_ *gorm.DB, item *model.ItemComanda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.itens[item.ID] = *item
	return nil
}

func (r *fakeComandaRepo) DeleteItemTx(_ *gorm.DB, item *model.ItemComanda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.itens, item.ID)
	return nil
}

func (r *fakeComandaRepo) ListPagasNoPeriodo(_ context.Context, empresaID uuid.UUID, inicio, fim time.Time) ([]model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Comanda
	for _, c := range r.comandas {
		if c.EmpresaID != empresaID || c.Status != model.ComandaPaga || c.DataFechamento == nil {
			continue
		}
		if c.DataFechamento.Before(inicio) || c.DataFechamento.After(fim) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeComandaRepo) ListAbertasComMesa(_ context.Context, empresaID uuid.UUID) ([]model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Comanda
	for _, c := range r.comandas {
		if c.EmpresaID == empresaID && c.Status == model.ComandaAberta && c.Mesa != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeComandaRepo) ListRecentes(_ context.Context, empresaID uuid.UUID, limit int) ([]model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Comanda
	for _, c := range r.comandas {
		if c.EmpresaID == empresaID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataAbertura.After(out[j].DataAbertura) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.ComandaRepository = (*fakeComandaRepo)(nil)

// ── Fake UsuarioRepository / EmpresaRepository / ProdutoRepository ────────────

type fakeUsuarioRepo struct {
	usuarios map[uuid.UUID]model.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]model.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = *u
	return nil
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := u
	return &cp, nil
}

func (r *fakeUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsuarioRepo) ListByEmpresa(_ context.Context, empresaID uuid.UUID) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.EmpresaID != nil && *u.EmpresaID == empresaID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = *u
	return nil
}

var _ repository.UsuarioRepository = (*fakeUsuarioRepo)(nil)

type fakeEmpresaRepo struct {
	empresas map[uuid.UUID]model.Empresa
}

func newFakeEmpresaRepo() *fakeEmpresaRepo {
	return &fakeEmpresaRepo{empresas: make(map[uuid.UUID]model.Empresa)}
}

func (r *fakeEmpresaRepo) Create(_ context.Context, e *model.Empresa) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.empresas[e.ID] = *e
	return nil
}

func (r *fakeEmpresaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Empresa, error) {
	e, ok := r.empresas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := e
	return &cp, nil
}

func (r *fakeEmpresaRepo) List(_ context.Context) ([]model.Empresa, error) {
	var out []model.Empresa
	for _, e := range r.empresas {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmpresaRepo) Update(_ context.Context, e *model.Empresa) error {
	r.empresas[e.ID] = *e
	return nil
}

var _ repository.EmpresaRepository = (*fakeEmpresaRepo)(nil)

type fakeProdutoRepo struct {
	produtos map[uuid.UUID]model.Produto
}

func newFakeProdutoRepo() *fakeProdutoRepo {
	return &fakeProdutoRepo{produtos: make(map[uuid.UUID]model.Produto)}
}

func (r *fakeProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = *p
	return nil
}

func (r *fakeProdutoRepo) FindByIDAndEmpresa(_ context.Context, id, empresaID uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok || p.EmpresaID != empresaID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := p
	return &cp, nil
}

func (r *fakeProdutoRepo) FindDisponivelTx(_ *gorm.DB, id, empresaID uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok || p.EmpresaID != empresaID || !p.Disponivel {
		return nil, gorm.ErrRecordNotFound
	}
	cp := p
	return &cp, nil
}

func (r *fakeProdutoRepo) ListByEmpresa(_ context.Context, empresaID uuid.UUID) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		if p.EmpresaID == empresaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = *p
	return nil
}

func (r *fakeProdutoRepo) Delete(_ context.Context, id, _ uuid.UUID) error {
	delete(r.produtos, id)
	return nil
}

var _ repository.ProdutoRepository = (*fakeProdutoRepo)(nil)

type fakeCategoriaRepo struct {
	categorias map[uuid.UUID]model.Categoria
}

func newFakeCategoriaRepo() *fakeCategoriaRepo {
	return &fakeCategoriaRepo{categorias: make(map[uuid.UUID]model.Categoria)}
}

func (r *fakeCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = *c
	return nil
}

func (r *fakeCategoriaRepo) FindByIDAndEmpresa(_ context.Context, id, empresaID uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := c
	return &cp, nil
}

func (r *fakeCategoriaRepo) ListByEmpresa(_ context.Context, empresaID uuid.UUID) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.categorias {
		if c.EmpresaID == empresaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoriaRepo) Update(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = *c
	return nil
}

func (r *fakeCategoriaRepo) Delete(_ context.Context, id, _ uuid.UUID) error {
	delete(r.categorias, id)
	return nil
}

var _ repository.CategoriaRepository = (*fakeCategoriaRepo)(nil)

// ── Shared fixture ────────────────────────────────────────────────────────────

type testEnv struct {
	caixas   *fakeCaixaRepo
	comandas *fakeComandaRepo
	usuarios *fakeUsuarioRepo
	empresas *fakeEmpresaRepo
	produtos *fakeProdutoRepo

	caixaSvc     service.CaixaService
	comandaSvc   service.ComandaService
	pagamentoSvc service.PagamentoService

	empresaID uuid.UUID
	usuarioID uuid.UUID
}

// newTestEnv builds the service graph on in-memory fakes with one active
// empresa and one caixa-role user already registered.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		caixas:   newFakeCaixaRepo(),
		comandas: newFakeComandaRepo(),
		usuarios: newFakeUsuarioRepo(),
		empresas: newFakeEmpresaRepo(),
		produtos: newFakeProdutoRepo(),
	}
	tx := &serialTxRunner{}

	empresa := &model.Empresa{
		Nome:             "Restaurante Teste",
		EmailContato:     "contato@teste.local",
		LicencaValidaAte: time.Now().AddDate(1, 0, 0),
		Ativa:            true,
	}
	require.NoError(t, env.empresas.Create(context.Background(), empresa))
	env.empresaID = empresa.ID

	usuario := &model.Usuario{
		Nome:      "Operador",
		Email:     "operador@teste.local",
		SenhaHash: "x",
		Role:      model.RoleCaixa,
		EmpresaID: &empresa.ID,
		Ativo:     true,
	}
	require.NoError(t, env.usuarios.Create(context.Background(), usuario))
	env.usuarioID = usuario.ID

	env.caixaSvc = service.NewCaixaService(env.caixas, env.comandas, env.usuarios, env.empresas, tx, nil)
	env.comandaSvc = service.NewComandaService(env.comandas, env.caixas, env.produtos, env.usuarios, tx)
	env.pagamentoSvc = service.NewPagamentoService(env.comandas, env.caixas, tx)
	return env
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (env *testEnv) novoProduto(t *testing.T, nome string, preco string, disponivel bool) *model.Produto {
	t.Helper()
	p := &model.Produto{
		EmpresaID:  env.empresaID,
		Nome:       nome,
		Preco:      decimal.RequireFromString(preco),
		Disponivel: disponivel,
	}
	require.NoError(t, env.produtos.Create(context.Background(), p))
	return p
}
