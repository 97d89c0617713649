package evaluator

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/keypears/keypears/domain/hashes"
	"github.com/keypears/keypears/domain/pow"
	"github.com/keypears/keypears/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	defaultProgressInterval = 10 * time.Second

	// resultsPerWorker bounds how far the fastest worker can run ahead of the
	// next nonce to be delivered
	resultsPerWorker = 64
)

// Config describes a range of nonces to evaluate against one base header
type Config struct {
	Variant pow.Variant

	// Header is the base header. The nonce slot is overwritten for every evaluated nonce.
	Header []byte

	// Start is the first nonce to evaluate
	Start uint32

	// Count is the number of consecutive nonces to evaluate
	Count uint64

	// Workers is the number of goroutines computing digests. runtime.NumCPU() is used when it's zero.
	Workers int

	// ProgressInterval is the interval between progress reports at debug level.
	// Defaults to 10 seconds when zero.
	ProgressInterval time.Duration
}

// Result is the final proof-of-work digest of the base header with Nonce inserted
type Result struct {
	Nonce uint32
	Hash  *hashes.Hash
}

// Stats summarizes an evaluation
type Stats struct {
	Evaluated uint64
	Duration  time.Duration
}

// HashRate returns the number of evaluated nonces per second
func (s *Stats) HashRate() float64 {
	seconds := s.Duration.Seconds()
	if seconds == 0 {
		return 0
	}
	return float64(s.Evaluated) / seconds
}

func (cfg *Config) validate() error {
	err := cfg.Variant.ValidateHeader(cfg.Header)
	if err != nil {
		return err
	}
	if cfg.Count == 0 {
		return errors.New("the number of nonces to evaluate must be positive")
	}
	if cfg.Count-1 > math.MaxUint32-uint64(cfg.Start) {
		return errors.Errorf("evaluating %d nonces from %d overflows the 32 bit nonce", cfg.Count, cfg.Start)
	}
	if cfg.Workers < 0 {
		return errors.Errorf("the number of workers can't be negative, got %d", cfg.Workers)
	}
	return nil
}

func (cfg *Config) workers() int {
	if cfg.Workers == 0 {
		return runtime.NumCPU()
	}
	return cfg.Workers
}

func (cfg *Config) progressInterval() time.Duration {
	if cfg.ProgressInterval == 0 {
		return defaultProgressInterval
	}
	return cfg.ProgressInterval
}

// Evaluate computes the final digest of every nonce in [cfg.Start, cfg.Start+cfg.Count) and passes
// the results to handle in nonce order. It stops early only if ctx is cancelled or handle returns an
// error. Invalid configurations are rejected before any digest is computed.
func Evaluate(ctx context.Context, cfg *Config, handle func(result *Result) error) (*Stats, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}

	onEnd := logger.LogAndMeasureExecutionTime(log, "Evaluate")
	defer onEnd()

	// The base header is copied so that the caller may reuse its buffer while we run
	baseHeader := make([]byte, len(cfg.Header))
	copy(baseHeader, cfg.Header)

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	workers := cfg.workers()
	window := workers * resultsPerWorker
	tokens := make(chan struct{}, window)
	nonces := make(chan uint32)
	results := make(chan *Result, window)
	var evaluated uint64

	log.Debugf("Evaluating %d %s nonces from %d with %d workers", cfg.Count, cfg.Variant, cfg.Start, workers)

	wg.Add(1)
	spawn("evaluator.produceNonces", func() {
		defer wg.Done()
		defer close(nonces)
		for i := uint64(0); i < cfg.Count; i++ {
			select {
			case tokens <- struct{}{}:
			case <-ctx.Done():
				return
			}
			select {
			case nonces <- cfg.Start + uint32(i):
			case <-ctx.Done():
				return
			}
		}
	})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		spawn(fmt.Sprintf("evaluator.worker-%d", i), func() {
			defer wg.Done()
			for nonce := range nonces {
				result := evaluateNonce(cfg.Variant, baseHeader, nonce)
				atomic.AddUint64(&evaluated, 1)
				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		})
	}

	start := time.Now()
	stats := &Stats{}
	ticker := time.NewTicker(cfg.progressInterval())
	defer ticker.Stop()

	pending := make(map[uint32]*Result, window)
	next := cfg.Start
	for stats.Evaluated < cfg.Count {
		select {
		case result := <-results:
			pending[result.Nonce] = result
			for {
				nextResult, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				<-tokens

				err := handle(nextResult)
				if err != nil {
					stats.Duration = time.Since(start)
					return stats, err
				}
				stats.Evaluated++
				next++
			}

		case <-ticker.C:
			current := &Stats{Evaluated: atomic.LoadUint64(&evaluated), Duration: time.Since(start)}
			log.Debugf("Evaluated %d/%d nonces, %.2f hashes/s", current.Evaluated, cfg.Count, current.HashRate())

		case <-ctx.Done():
			stats.Duration = time.Since(start)
			return stats, ctx.Err()
		}
	}

	stats.Duration = time.Since(start)
	log.Infof("Evaluated %d %s nonces in %s, %.2f hashes/s",
		stats.Evaluated, cfg.Variant, stats.Duration, stats.HashRate())
	return stats, nil
}

func evaluateNonce(variant pow.Variant, baseHeader []byte, nonce uint32) *Result {
	// The header size was validated before any worker started, so these can't fail.
	header, err := variant.InsertNonce(baseHeader, nonce)
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. inserting nonce %d failed", nonce))
	}
	hash, err := variant.ElementaryIteration(header)
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. hashing nonce %d failed", nonce))
	}
	return &Result{Nonce: nonce, Hash: hash}
}
