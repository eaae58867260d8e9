package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

// CaixaRepository persists register sessions and their immutable ledger.
// The *Tx variants participate in a caller-owned transaction; the
// ForUpdate reads acquire an exclusive row lock held until commit, which
// is what serializes concurrent total updates against the same register.
type CaixaRepository interface {
	Create(ctx context.Context, c *model.Caixa) error
	FindAbertoPorEmpresa(ctx context.Context, empresaID uuid.UUID) (*model.Caixa, error)
	FindByIDAndEmpresa(ctx context.Context, id, empresaID uuid.UUID) (*model.Caixa, error)
	FindAbertoForUpdateTx(tx *gorm.DB, empresaID uuid.UUID) (*model.Caixa, error)
	UpdateTx(tx *gorm.DB, c *model.Caixa) error

	CreateMovimentacaoTx(tx *gorm.DB, m *model.MovimentacaoCaixa) error
	ListMovimentacoesRecentes(ctx context.Context, caixaID uuid.UUID, limit int) ([]model.MovimentacaoCaixa, error)
	SumMovimentacoesPorTipo(ctx context.Context, caixaID uuid.UUID) (map[string]decimal.Decimal, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) FindAbertoPorEmpresa(ctx context.Context, empresaID uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("empresa_id = ? AND status = ?", empresaID, model.CaixaAberto).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caixaRepo) FindByIDAndEmpresa(ctx context.Context, id, empresaID uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("id = ? AND empresa_id = ?", id, empresaID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAbertoForUpdateTx locks the open caixa row (SELECT … FOR UPDATE) for
// the duration of tx. Concurrent movements and settlements against the
// same register serialize here.
func (r *caixaRepo) FindAbertoForUpdateTx(tx *gorm.DB, empresaID uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("empresa_id = ? AND status = ?", empresaID, model.CaixaAberto).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caixaRepo) UpdateTx(tx *gorm.DB, c *model.Caixa) error {
	return tx.Save(c).Error
}

func (r *caixaRepo) CreateMovimentacaoTx(tx *gorm.DB, m *model.MovimentacaoCaixa) error {
	return tx.Create(m).Error
}

func (r *caixaRepo) ListMovimentacoesRecentes(ctx context.Context, caixaID uuid.UUID, limit int) ([]model.MovimentacaoCaixa, error) {
	var movs []model.MovimentacaoCaixa
	err := r.db.WithContext(ctx).
		Where("caixa_id = ?", caixaID).
		Order("criado_em DESC").
		Limit(limit).
		Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) SumMovimentacoesPorTipo(ctx context.Context, caixaID uuid.UUID) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Tipo  string
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.MovimentacaoCaixa{}).
		Select("tipo, COALESCE(SUM(valor), 0) AS total").
		Where("caixa_id = ?", caixaID).
		Group("tipo").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Tipo] = row.Total
	}
	return totals, nil
}
