package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

type CategoriaRepository interface {
	Create(ctx context.Context, c *model.Categoria) error
	FindByIDAndEmpresa(ctx context.Context, id, empresaID uuid.UUID) (*model.Categoria, error)
	ListByEmpresa(ctx context.Context, empresaID uuid.UUID) ([]model.Categoria, error)
	Update(ctx context.Context, c *model.Categoria) error
	Delete(ctx context.Context, id, empresaID uuid.UUID) error
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository { return &categoriaRepo{db: db} }

func (r *categoriaRepo) Create(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) FindByIDAndEmpresa(ctx context.Context, id, empresaID uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).
		Where("id = ? AND empresa_id = ?", id, empresaID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) ListByEmpresa(ctx context.Context, empresaID uuid.UUID) ([]model.Categoria, error) {
	var categorias []model.Categoria
	err := r.db.WithContext(ctx).
		Where("empresa_id = ?", empresaID).
		Order("nome ASC").
		Find(&categorias).Error
	return categorias, err
}

func (r *categoriaRepo) Update(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepo) Delete(ctx context.Context, id, empresaID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND empresa_id = ?", id, empresaID).
		Delete(&model.Categoria{}).Error
}
