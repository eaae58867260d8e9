package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

// ComandaFiltros narrows a comanda listing. Status must already be a
// normalized enum value — the service layer rejects unknown strings
// before they get here. Date bounds are inclusive day boundaries.
type ComandaFiltros struct {
	Status     *string
	Mesa       *string
	DataInicio *time.Time
	DataFim    *time.Time
}

type ComandaRepository interface {
	Create(ctx context.Context, c *model.Comanda) error
	FindByIDAndEmpresa(ctx context.Context, id, empresaID uuid.UUID) (*model.Comanda, error)
	List(ctx context.Context, empresaID uuid.UUID, filtros ComandaFiltros) ([]model.Comanda, error)

	// Locked reads — hold an exclusive row lock until tx commit.
	FindForUpdateTx(tx *gorm.DB, id, empresaID uuid.UUID) (*model.Comanda, error)
	FindAbertaForUpdateTx(tx *gorm.DB, id, empresaID uuid.UUID) (*model.Comanda, error)
	FindPagavelForUpdateTx(tx *gorm.DB, id, empresaID uuid.UUID) (*model.Comanda, error)

	UpdateTx(tx *gorm.DB, c *model.Comanda) error
	CountAbertasTx(tx *gorm.DB, empresaID uuid.UUID) (int64, error)
	CountAbertas(ctx context.Context, empresaID uuid.UUID) (int64, error)

	FindItemTx(tx *gorm.DB, itemID, comandaID uuid.UUID) (*model.ItemComanda, error)
	CreateItemTx(tx *gorm.DB, item *model.ItemComanda) error
	UpdateItemTx(tx *gorm.DB, item *model.ItemComanda) error
	DeleteItemTx(tx *gorm.DB, item *model.ItemComanda) error

	// Read-only aggregation inputs for relatórios and the dashboard.
	ListPagasNoPeriodo(ctx context.Context, empresaID uuid.UUID, inicio, fim time.Time) ([]model.Comanda, error)
	ListAbertasComMesa(ctx context.Context, empresaID uuid.UUID) ([]model.Comanda, error)
	ListRecentes(ctx context.Context, empresaID uuid.UUID, limit int) ([]model.Comanda, error)
}

type comandaRepo struct{ db *gorm.DB }

func NewComandaRepository(db *gorm.DB) ComandaRepository { return &comandaRepo{db: db} }

func (r *comandaRepo) Create(ctx context.Context, c *model.Comanda) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comandaRepo) FindByIDAndEmpresa(ctx context.Context, id, empresaID uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).
		Preload("ItensComanda", func(db *gorm.DB) *gorm.DB {
			return db.Order("itens_comanda.created_at DESC")
		}).
		Preload("ItensComanda.Produto").
		Preload("UsuarioAbertura").
		Preload("Caixa").
		Where("id = ? AND empresa_id = ?", id, empresaID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comandaRepo) List(ctx context.Context, empresaID uuid.UUID, filtros ComandaFiltros) ([]model.Comanda, error) {
	q := r.db.WithContext(ctx).
		Preload("UsuarioAbertura").
		Where("empresa_id = ?", empresaID)

	if filtros.Status != nil {
		q = q.Where("status = ?", *filtros.Status)
	}
	if filtros.Mesa != nil {
		q = q.Where("mesa = ?", *filtros.Mesa)
	}
	if filtros.DataInicio != nil {
		q = q.Where("data_abertura >= ?", *filtros.DataInicio)
	}
	if filtros.DataFim != nil {
		q = q.Where("data_abertura <= ?", *filtros.DataFim)
	}

	var comandas []model.Comanda
	err := q.Order("data_abertura DESC").Find(&comandas).Error
	return comandas, err
}

func (r *comandaRepo) FindForUpdateTx(tx *gorm.DB, id, empresaID uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND empresa_id = ?", id, empresaID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comandaRepo) FindAbertaForUpdateTx(tx *gorm.DB, id, empresaID uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND empresa_id = ? AND status = ?", id, empresaID, model.ComandaAberta).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindPagavelForUpdateTx accepts either pre-payment status: Aberta or the
// reserved Fechada ("closed for payment").
func (r *comandaRepo) FindPagavelForUpdateTx(tx *gorm.DB, id, empresaID uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND empresa_id = ? AND status IN ?", id, empresaID,
			[]string{model.ComandaAberta, model.ComandaFechada}).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comandaRepo) UpdateTx(tx *gorm.DB, c *model.Comanda) error {
	return tx.Save(c).Error
}

func (r *comandaRepo) CountAbertasTx(tx *gorm.DB, empresaID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.Comanda{}).
		Where("empresa_id = ? AND status = ?", empresaID, model.ComandaAberta).
		Count(&n).Error
	return n, err
}

func (r *comandaRepo) CountAbertas(ctx context.Context, empresaID uuid.UUID) (int64, error) {
	return r.CountAbertasTx(r.db.WithContext(ctx), empresaID)
}

func (r *comandaRepo) FindItemTx(tx *gorm.DB, itemID, comandaID uuid.UUID) (*model.ItemComanda, error) {
	var item model.ItemComanda
	err := tx.Where("id = ? AND comanda_id = ?", itemID, comandaID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *comandaRepo) CreateItemTx(tx *gorm.DB, item *model.ItemComanda) error {
	return tx.Create(item).Error
}

func (r *comandaRepo) UpdateItemTx(tx *gorm.DB, item *model.ItemComanda) error {
	return tx.Save(item).Error
}

func (r *comandaRepo) DeleteItemTx(tx *gorm.DB, item *model.ItemComanda) error {
	return tx.Delete(item).Error
}

func (r *comandaRepo) ListPagasNoPeriodo(ctx context.Context, empresaID uuid.UUID, inicio, fim time.Time) ([]model.Comanda, error) {
	var comandas []model.Comanda
	err := r.db.WithContext(ctx).
		Where("empresa_id = ? AND status = ? AND data_fechamento BETWEEN ? AND ?",
			empresaID, model.ComandaPaga, inicio, fim).
		Find(&comandas).Error
	return comandas, err
}

func (r *comandaRepo) ListAbertasComMesa(ctx context.Context, empresaID uuid.UUID) ([]model.Comanda, error) {
	var comandas []model.Comanda
	err := r.db.WithContext(ctx).
		Where("empresa_id = ? AND status = ? AND mesa IS NOT NULL", empresaID, model.ComandaAberta).
		Order("data_abertura ASC").
		Find(&comandas).Error
	return comandas, err
}

func (r *comandaRepo) ListRecentes(ctx context.Context, empresaID uuid.UUID, limit int) ([]model.Comanda, error) {
	var comandas []model.Comanda
	err := r.db.WithContext(ctx).
		Where("empresa_id = ?", empresaID).
		Order("data_abertura DESC").
		Limit(limit).
		Find(&comandas).Error
	return comandas, err
}
