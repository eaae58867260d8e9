package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/infra"
)

const (
	replayTickInterval = 30 * time.Second
	replayBatchSize    = 10
	// Entries younger than this stay parked so a flapping relay does not
	// cycle the same job between queue and DLQ every tick.
	replayCooldown = 5 * time.Minute
)

// StartDLQReplay launches a goroutine that periodically moves dead
// letter entries of the fechamento queue back onto the live queue.
// Entries are skipped while the SMTP circuit breaker is open — replaying
// against a downed relay would only send them straight back to the DLQ.
func StartDLQReplay(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	go func() {
		ticker := time.NewTicker(replayTickInterval)
		defer ticker.Stop()

		log.Info().Msg("dlq_replay: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("dlq_replay: shutting down")
				return
			case <-ticker.C:
				replayBatch(ctx, rdb, cb)
			}
		}
	}()
}

func replayBatch(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	if cb.State() == infra.CBOpen {
		log.Debug().Msg("dlq_replay: circuit breaker open, skipping tick")
		return
	}

	dlqKey := DLQPrefix + QueueFechamento
	for i := 0; i < replayBatchSize; i++ {
		raw, err := rdb.RPop(ctx, dlqKey).Result()
		if err == redis.Nil {
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("dlq_replay: failed to pop entry")
			return
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("dlq_replay: discarding unreadable entry")
			continue
		}

		// RPop returns the oldest entry; if even that one is still inside
		// the cooldown window the rest of the list is too.
		if failedAt, err := time.Parse(time.RFC3339, entry.FailedAt); err == nil && time.Since(failedAt) < replayCooldown {
			if err := rdb.RPush(ctx, dlqKey, raw).Err(); err != nil {
				log.Error().Err(err).Msg("dlq_replay: failed to re-park entry")
			}
			return
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload}
		data, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Msg("dlq_replay: failed to marshal job")
			continue
		}
		if err := rdb.LPush(ctx, entry.OriginalQueue, data).Err(); err != nil {
			log.Error().Err(err).Msg("dlq_replay: failed to re-enqueue job")
			SendToDLQ(ctx, rdb, entry.OriginalQueue, entry.JobType, entry.Payload, entry.Reason, entry.Attempts)
			return
		}

		log.Info().
			Str("job_type", entry.JobType).
			Int("previous_attempts", entry.Attempts).
			Msg("dlq_replay: job re-enqueued")
	}
}
