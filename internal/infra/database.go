package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies the idempotent SQL patches GORM cannot express (partial
// indexes, check constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Empresa{},
		&model.Usuario{},
		&model.Categoria{},
		&model.Produto{},
		&model.Caixa{},
		&model.MovimentacaoCaixa{},
		&model.Comanda{},
		&model.ItemComanda{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// The partial unique index is the storage-level enforcement of the
// one-open-caixa-per-empresa invariant: even if two transactions raced
// past the application check, the second insert would fail here.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_caixas_empresa_aberto') THEN
		    CREATE UNIQUE INDEX uni_caixas_empresa_aberto
		        ON caixas (empresa_id)
		        WHERE status = 'Aberto';
		  END IF;
		END $$`,
		// Ledger amounts are strictly positive; the sign lives in tipo.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_movimentacoes_valor_positivo') THEN
		    ALTER TABLE movimentacoes_caixa
		        ADD CONSTRAINT chk_movimentacoes_valor_positivo CHECK (valor > 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_itens_comanda_quantidade') THEN
		    ALTER TABLE itens_comanda
		        ADD CONSTRAINT chk_itens_comanda_quantidade CHECK (quantidade >= 1);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_comandas_empresa_status') THEN
		    CREATE INDEX idx_comandas_empresa_status ON comandas (empresa_id, status);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
