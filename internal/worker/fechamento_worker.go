package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/infra"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
)

const maxEnvioTentativas = 3

// RelatorioFechamentoPayload is the job envelope sent to QueueFechamento.
type RelatorioFechamentoPayload struct {
	CaixaID   string `json:"caixa_id"`
	EmpresaID string `json:"empresa_id"`
}

// FechamentoWorker turns a closed register into a PDF summary and mails
// it to the company contact address.
type FechamentoWorker struct {
	caixaRepo   repository.CaixaRepository
	empresaRepo repository.EmpresaRepository
	mailer      *infra.Mailer
	cb          *infra.CircuitBreaker
}

func NewFechamentoWorker(caixaRepo repository.CaixaRepository, empresaRepo repository.EmpresaRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker) *FechamentoWorker {
	return &FechamentoWorker{caixaRepo: caixaRepo, empresaRepo: empresaRepo, mailer: mailer, cb: cb}
}

// Process loads the closed caixa, renders the closing-report PDF and
// sends it with retry. Exhausted retries park the job on the DLQ; the
// register close itself already committed, so nothing here is rolled
// back.
func (w *FechamentoWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload RelatorioFechamentoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("fechamento_worker: invalid payload")
		return
	}

	caixaID, err := uuid.Parse(payload.CaixaID)
	if err != nil {
		log.Error().Str("caixa_id", payload.CaixaID).Msg("fechamento_worker: invalid caixa_id")
		return
	}
	empresaID, err := uuid.Parse(payload.EmpresaID)
	if err != nil {
		log.Error().Str("empresa_id", payload.EmpresaID).Msg("fechamento_worker: invalid empresa_id")
		return
	}

	caixa, err := w.caixaRepo.FindByIDAndEmpresa(ctx, caixaID, empresaID)
	if err != nil {
		log.Error().Err(err).Str("caixa_id", payload.CaixaID).Msg("fechamento_worker: caixa not found")
		return
	}
	empresa, err := w.empresaRepo.FindByID(ctx, empresaID)
	if err != nil {
		log.Error().Err(err).Str("empresa_id", payload.EmpresaID).Msg("fechamento_worker: empresa not found")
		return
	}
	if empresa.EmailContato == "" {
		log.Warn().Str("empresa_id", payload.EmpresaID).Msg("fechamento_worker: empresa has no contact email — skipping")
		return
	}

	pdfBytes, err := infra.GerarRelatorioFechamentoPDF(empresa, caixa)
	if err != nil {
		log.Error().Err(err).Str("caixa_id", payload.CaixaID).Msg("fechamento_worker: PDF generation failed")
		SendToDLQ(ctx, rdb, QueueFechamento, JobRelatorioFechamento, raw, fmt.Sprintf("pdf: %v", err), 0)
		return
	}

	subject := fmt.Sprintf("Fechamento de caixa — %s", caixa.DataAbertura.Format("02/01/2006"))
	body := fmt.Sprintf("Segue em anexo o relatório de fechamento do caixa de %s.", empresa.Nome)
	pdfName := fmt.Sprintf("fechamento-%s.pdf", caixa.DataAbertura.Format("2006-01-02"))

	envioErr := withRetry(ctx, maxEnvioTentativas, func(attempt int) error {
		err := w.cb.Execute(func() error {
			return w.mailer.SendRelatorioFechamento(empresa.EmailContato, subject, body, pdfBytes, pdfName)
		})
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("to", empresa.EmailContato).
				Msg("fechamento_worker: send attempt failed, retrying")
			return err
		}
		return nil
	})
	if envioErr != nil {
		log.Error().Err(envioErr).Str("caixa_id", payload.CaixaID).Msg("fechamento_worker: email failed after all retries")
		SendToDLQ(ctx, rdb, QueueFechamento, JobRelatorioFechamento, raw, fmt.Sprintf("smtp: %v", envioErr), maxEnvioTentativas)
		return
	}

	log.Info().
		Str("caixa_id", payload.CaixaID).
		Str("to", empresa.EmailContato).
		Msg("fechamento_worker: closing report sent")
}

// withRetry calls fn up to maxAttempts times with exponential backoff
// (immediate, 1s, 2s …). Returns nil on the first success.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
