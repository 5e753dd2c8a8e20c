package domain

import (
	"context"
	"errors"
	"log/slog"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
	pkg "jsprobe.dev/pkg/jsprobe/pkg"
)

// errStreamStopped ends a spill range once the consumer is gone.
var errStreamStopped = errors.New("mutant stream stopped")

// pendingMutant is a generated mutant waiting to be tested. Index numbers
// mutants across every file of a run and drives shard assignment.
type pendingMutant struct {
	File   m.Path
	Index  int
	Mutant m.Mutant
}

// normalizeBufferSize ensures the buffer size is at least 1.
func normalizeBufferSize(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}

// inShard reports whether index belongs to the shard. A total of 0 or 1
// disables sharding.
func inShard(index, shardIndex, totalShardCount int) bool {
	if totalShardCount <= 1 {
		return true
	}

	return index%totalShardCount == shardIndex
}

// countShard returns how many spilled mutants belong to the shard.
func countShard(spill pkg.FileSpill[pendingMutant], shardIndex, totalShardCount int) (int, error) {
	count := 0

	err := spill.Range(func(_ uint64, pending pendingMutant) error {
		if inShard(pending.Index, shardIndex, totalShardCount) {
			count++
		}

		return nil
	})

	return count, err
}

// streamShard reads the spill back and streams the mutants of one shard.
// The mutant channel closes when the spill is exhausted or ctx is done; the
// error channel then carries at most one read error.
func streamShard(
	ctx context.Context,
	spill pkg.FileSpill[pendingMutant],
	threads, shardIndex, totalShardCount int,
) (<-chan pendingMutant, <-chan error) {
	ch := make(chan pendingMutant, normalizeBufferSize(threads))
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(ch)

		slog.Debug("Starting mutant streaming", "total", spill.Len(), "shardIndex", shardIndex, "totalShardCount", totalShardCount)

		err := spill.Range(func(_ uint64, pending pendingMutant) error {
			if !inShard(pending.Index, shardIndex, totalShardCount) {
				return nil
			}

			select {
			case <-ctx.Done():
				return errStreamStopped
			case ch <- pending:
				return nil
			}
		})

		switch {
		case errors.Is(err, errStreamStopped):
			slog.Debug("Mutant streaming cancelled")
		case err != nil:
			slog.Error("Failed to stream mutants", "error", err)
			errCh <- err
		}
	}()

	return ch, errCh
}
