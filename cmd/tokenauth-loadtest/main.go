// tokenauth-loadtest drives an engine backed by Redis (or an in-process
// miniredis) through concurrent issue, validate, and revoke phases and prints
// latency percentiles per phase.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	tokenauth "github.com/MrEthical07/tokenauth"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		subjects    int
		concurrency int
		ops         int
		redisAddr   string
		prefix      string
		secret      string
	)
	flagSet := pflag.NewFlagSet("tokenauth-loadtest", pflag.ContinueOnError)
	flagSet.IntVar(&subjects, "subjects", 10000, "number of token pairs to issue before the validate phase")
	flagSet.IntVar(&concurrency, "concurrency", 256, "number of concurrent workers")
	flagSet.IntVar(&ops, "ops", 200000, "operations in the validate phase")
	flagSet.StringVar(&redisAddr, "redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
	flagSet.StringVar(&prefix, "prefix", "tr", "redis key prefix")
	flagSet.StringVar(&secret, "secret", "loadtest-secret-loadtest-secret-0001", "HMAC signing secret")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if subjects <= 0 || concurrency <= 0 || ops <= 0 {
		return fmt.Errorf("subjects, concurrency, and ops must be > 0")
	}

	client, cleanup, err := connect(redisAddr)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := tokenauth.DefaultConfig()
	cfg.JWT.Secret = secret
	cfg.Revocation.Prefix = prefix
	cfg.Audit.Enabled = false
	cfg.Metrics.Enabled = true

	engine, err := tokenauth.New().
		WithConfig(cfg).
		WithRedis(client).
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))).
		Build()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer engine.Close()

	ctx := context.Background()
	pairs := make([]tokenauth.TokenPair, subjects)

	issueStats := runPhase(subjects, concurrency, func(_ *rand.Rand, i int) error {
		pair, err := engine.Issue(ctx, fmt.Sprintf("user-%d", i), "")
		pairs[i] = pair
		return err
	})
	validateStats := runPhase(ops, concurrency, func(r *rand.Rand, _ int) error {
		res, err := engine.Validate(ctx, pairs[r.Intn(len(pairs))].AccessToken, "")
		if err != nil {
			return err
		}
		if !res.Valid {
			return fmt.Errorf("rejected: %s", res.Reason)
		}
		return nil
	})
	revokeStats := runPhase(subjects, concurrency, func(_ *rand.Rand, i int) error {
		_, err := engine.Revoke(ctx, pairs[i].AccessToken)
		return err
	})

	fmt.Println("---- results ----")
	printStats("issue", issueStats)
	printStats("validate", validateStats)
	printStats("revoke", revokeStats)
	return nil
}

func connect(addr string) (redis.UniversalClient, func(), error) {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr != "" {
		client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		fmt.Printf("using redis at %s\n", addr)
		return client, func() { _ = client.Close() }, nil
	}

	mr, err := miniredis.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("start miniredis: %w", err)
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	fmt.Printf("using miniredis at %s\n", mr.Addr())
	return client, func() {
		_ = client.Close()
		mr.Close()
	}, nil
}

// runPhase calls op for indexes [0, n) across concurrency workers.
func runPhase(n, concurrency int, op func(r *rand.Rand, i int) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, n)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			local := make([]time.Duration, 0, n/concurrency+1)
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= n {
					break
				}
				t0 := time.Now()
				if err := op(r, i); err != nil {
					atomic.AddInt64(&failures, 1)
				}
				local = append(local, time.Since(t0))
			}
			mu.Lock()
			latencies = append(latencies, local...)
			mu.Unlock()
		}(w)
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	return samples[(len(samples)-1)*p/100]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
