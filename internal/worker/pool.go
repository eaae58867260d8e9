package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueFechamento = "jobs:fechamento"

// brpopTimeout bounds each blocking pop so workers notice ctx
// cancellation within a few seconds.
const brpopTimeout = 5 * time.Second

// Job is the envelope every queued task travels in.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists; the pool drains
// them with BRPOP on the other side.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueRelatorioFechamento queues the closing-report job for a caixa
// that was just closed.
func (d *Dispatcher) EnqueueRelatorioFechamento(ctx context.Context, payload RelatorioFechamentoPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: JobRelatorioFechamento, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueFechamento, encoded).Err()
}

// JobRelatorioFechamento identifies closing-report jobs in the envelope.
const JobRelatorioFechamento = "relatorio_fechamento"

// StartWorkerPool launches n consumers over the fechamento queue. Each
// consumer blocks on BRPOP, so an idle pool costs nothing.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, n int, fechamento *FechamentoWorker) {
	for i := 0; i < n; i++ {
		go consume(ctx, rdb, i, fechamento)
	}
	log.Info().Int("workers", n).Str("queue", QueueFechamento).Msg("worker pool online")
}

func consume(ctx context.Context, rdb *redis.Client, id int, fechamento *FechamentoWorker) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker stopped")
			return
		default:
		}

		result, err := rdb.BRPop(ctx, brpopTimeout, QueueFechamento).Result()
		if err != nil {
			continue // timeout or context cancelled
		}
		if len(result) == 2 {
			dispatch(ctx, rdb, result[1], fechamento)
		}
	}
}

func dispatch(ctx context.Context, rdb *redis.Client, raw string, fechamento *FechamentoWorker) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("job envelope unreadable, discarding")
		return
	}
	switch job.Type {
	case JobRelatorioFechamento:
		fechamento.Process(ctx, rdb, job.Payload)
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type discarded")
	}
}
