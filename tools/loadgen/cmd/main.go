// Package main provides the CLI entry point for the load generator.
//
// The tool drives the document lifecycle API: it creates documents,
// posts them to the ledger, and reads them back. Values
// returned by the API (document IDs, numbers, ledger references) are
// harvested into a parameter pool and reused by later requests, so the
// generated traffic exercises realistic read-after-write patterns.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/findoc/tools/loadgen/internal/pool"
)

// Version information (populated at build time)
var (
	version   = "dev"
	buildTime = "unknown"
)

// CLI flags
var (
	baseURL     string
	duration    time.Duration
	concurrency int
	readRatio   float64
	verbose     bool
	showVersion bool
)

func init() {
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the target server")
	flag.DurationVar(&duration, "duration", 1*time.Minute, "Test duration (e.g., 5m, 1h)")
	flag.DurationVar(&duration, "d", 1*time.Minute, "Test duration (shorthand)")
	flag.IntVar(&concurrency, "concurrency", 8, "Number of concurrent workers")
	flag.Float64Var(&readRatio, "read-ratio", 0.7, "Fraction of requests that read instead of write (0.0-1.0)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")
	flag.BoolVar(&verbose, "v", false, "Enable verbose output (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

type counters struct {
	requests atomic.Int64
	errors   atomic.Int64
	created  atomic.Int64
	posted   atomic.Int64
}

type worker struct {
	client *http.Client
	pool   pool.ParameterPool
	rng    *rand.Rand
	stats  *counters
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("loadgen %s (built %s)\n", version, buildTime)
		return
	}
	if readRatio < 0 || readRatio > 1 {
		fmt.Fprintln(os.Stderr, "read-ratio must be between 0.0 and 1.0")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	params := pool.NewShardedParameterPool(pool.DefaultPoolConfig())
	defer params.Close()

	stats := &counters{}
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		w := &worker{
			client: &http.Client{Timeout: 10 * time.Second},
			pool:   params,
			rng:    rand.New(rand.NewSource(time.Now().UnixNano() + int64(i))),
			stats:  stats,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(ctx)
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	poolStats, _ := params.Stats(context.Background())

	fmt.Printf("\nDuration:   %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Requests:   %d (%.1f/s)\n", stats.requests.Load(), float64(stats.requests.Load())/elapsed.Seconds())
	fmt.Printf("Errors:     %d\n", stats.errors.Load())
	fmt.Printf("Created:    %d documents\n", stats.created.Load())
	fmt.Printf("Posted:     %d documents\n", stats.posted.Load())
	fmt.Printf("Pool:       %d values, %.1f%% hit rate\n", poolStats.TotalValues, poolStats.HitRate())
}

func (w *worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if w.rng.Float64() < readRatio {
			w.readDocument(ctx)
		} else {
			w.writeDocument(ctx)
		}
	}
}

// readDocument fetches a previously created document by ID, falling back
// to the list endpoint when the pool is empty.
func (w *worker) readDocument(ctx context.Context) {
	pv, _ := w.pool.GetRandom(ctx, pool.SemanticTypeDocumentID)
	if pv == nil {
		w.do(ctx, http.MethodGet, "/api/v1/documents?page=1&page_size=20", nil)
		return
	}
	id, _ := pv.Value.(string)
	w.do(ctx, http.MethodGet, "/api/v1/documents/"+id, nil)
}

// writeDocument creates a fund transfer and walks it to POSTED. Created
// IDs and ledger references are harvested into the pool for later reads.
func (w *worker) writeDocument(ctx context.Context) {
	body := map[string]any{
		"type":               "FUND_TRANSFER",
		"document_date":      time.Now().Format(time.RFC3339),
		"currency":           "IDR",
		"counter_account_id": newUUID(w.rng),
		"lines": []map[string]any{
			{
				"account_id":  newUUID(w.rng),
				"description": "load test transfer",
				"quantity":    "1",
				"unit_price":  fmt.Sprintf("%d", 1000*(1+w.rng.Intn(500))),
			},
		},
	}

	resp := w.do(ctx, http.MethodPost, "/api/v1/documents", body)
	if resp == nil {
		return
	}

	id, _ := resp["id"].(string)
	if id == "" {
		return
	}
	w.stats.created.Add(1)
	w.pool.Add(ctx, pool.NewParameterValue(id, pool.SemanticTypeDocumentID, 0).
		WithSource("POST /documents", "$.data.id"))
	if number, ok := resp["number"].(string); ok && number != "" {
		w.pool.Add(ctx, pool.NewParameterValue(number, pool.SemanticTypeDocumentNumber, 0))
	}

	// Fund transfers post straight from draft
	posted := w.do(ctx, http.MethodPost, "/api/v1/documents/"+id+"/post", map[string]any{
		"posted_by": newUUID(w.rng),
	})
	if posted == nil {
		return
	}
	w.stats.posted.Add(1)
	if ref, ok := posted["ledger_ref"].(string); ok && ref != "" {
		w.pool.Add(ctx, pool.NewParameterValue(ref, pool.SemanticTypeLedgerReference, 0))
	}
}

// do issues a request and decodes the response envelope's data object.
// Returns nil on transport errors or non-2xx responses.
func (w *worker) do(ctx context.Context, method, path string, body any) map[string]any {
	w.stats.requests.Add(1)

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			w.stats.errors.Add(1)
			return nil
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, reqBody)
	if err != nil {
		w.stats.errors.Add(1)
		return nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := w.client.Do(req)
	if err != nil {
		if ctx.Err() == nil {
			w.stats.errors.Add(1)
			if verbose {
				fmt.Fprintf(os.Stderr, "%s %s: %v\n", method, path, err)
			}
		}
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		w.stats.errors.Add(1)
		if verbose {
			fmt.Fprintf(os.Stderr, "%s %s: HTTP %d\n", method, path, resp.StatusCode)
		}
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return map[string]any{}
	}
	if envelope.Data == nil {
		return map[string]any{}
	}
	return envelope.Data
}

// newUUID generates a random version 4 UUID string from the worker's
// seeded source, avoiding a dependency for test data.
func newUUID(rng *rand.Rand) string {
	var b [16]byte
	rng.Read(b[:])
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
