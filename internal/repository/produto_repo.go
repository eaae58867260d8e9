package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByIDAndEmpresa(ctx context.Context, id, empresaID uuid.UUID) (*model.Produto, error)
	// FindDisponivelTx resolves a sellable product inside a caller-owned
	// transaction (used while the parent comanda row is locked).
	FindDisponivelTx(tx *gorm.DB, id, empresaID uuid.UUID) (*model.Produto, error)
	ListByEmpresa(ctx context.Context, empresaID uuid.UUID) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	Delete(ctx context.Context, id, empresaID uuid.UUID) error
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByIDAndEmpresa(ctx context.Context, id, empresaID uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Where("id = ? AND empresa_id = ?", id, empresaID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) FindDisponivelTx(tx *gorm.DB, id, empresaID uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.
		Where("id = ? AND empresa_id = ? AND disponivel = true", id, empresaID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) ListByEmpresa(ctx context.Context, empresaID uuid.UUID) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Where("empresa_id = ?", empresaID).
		Order("nome ASC").
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) Delete(ctx context.Context, id, empresaID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND empresa_id = ?", id, empresaID).
		Delete(&model.Produto{}).Error
}
