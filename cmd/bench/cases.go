// README: Smoke cases for the fare, region and booking endpoints plus quote throughput.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
			defer db.Close()
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

var (
	centre  = map[string]float64{"lat": 12.9716, "lng": 77.5946}
	airport = map[string]float64{"lat": 13.1986, "lng": 77.7066}
	mumbai  = map[string]float64{"lat": 19.0760, "lng": 72.8777}
)

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{Name: "Env: Postgres connect", Run: pingPostgres},
		{Name: "Env: Redis connect", Run: pingRedis},
		{Name: "Migration: tables exist", Run: tablesExist},

		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK, nil),
		httpCase("Fare: list tiers", http.MethodGet, base+"/api/tiers", nil, http.StatusOK, nil),
		httpCase("Fare: unknown tier -> 404", http.MethodGet, base+"/api/tiers/gold", nil, http.StatusNotFound, nil),
		httpCase("Region: centre inside", http.MethodGet, base+"/api/region/contains?lat=12.9716&lng=77.5946", nil, http.StatusOK,
			expectField("within", true)),
		httpCase("Quote: bookable trip", http.MethodPost, base+"/api/fares/quote", map[string]any{
			"pickup": centre, "destination": airport, "tier_id": "economy",
		}, http.StatusOK, expectField("within_region", true)),
		httpCase("Quote: same spot -> minimum fare", http.MethodPost, base+"/api/fares/quote", map[string]any{
			"pickup": centre, "destination": centre, "tier_id": "luxury",
		}, http.StatusOK, expectField("total_fare", 200.0)),
		httpCase("Quote: unknown tier -> 0", http.MethodPost, base+"/api/fares/quote", map[string]any{
			"pickup": centre, "destination": airport, "tier_id": "gold",
		}, http.StatusOK, expectField("total_fare", 0.0)),
		httpCase("Quote: outside region", http.MethodPost, base+"/api/fares/quote", map[string]any{
			"pickup": centre, "destination": mumbai, "tier_id": "economy",
		}, http.StatusOK, expectField("within_region", false)),
		httpCase("Quote: invalid coords -> 400", http.MethodPost, base+"/api/fares/quote", map[string]any{
			"pickup": map[string]float64{"lat": 123, "lng": 456}, "destination": airport, "tier_id": "economy",
		}, http.StatusBadRequest, nil),
		httpCase("Booking: anonymous -> 401", http.MethodGet, base+"/api/bookings", nil, http.StatusUnauthorized, nil),

		{Name: "Booking: quote is single use", Run: bookQuoteOnce},
		{Name: "Perf: quote throughput", Run: quoteLoad},
	}
}

func pingPostgres(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusFail, Note: "db not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func pingRedis(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: statusFail, Note: "redis not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func tablesExist(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusFail, Note: "db not configured"}
	}
	tables, err := extractTables(r.cfg.MigrationsDir)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	for _, t := range tables {
		var exists bool
		err := r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)", t,
		).Scan(&exists)
		if err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
		if !exists {
			return Result{Status: statusFail, Note: "missing table: " + t}
		}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("%d tables", len(tables))}
}

// check inspects a decoded JSON body.
type check func(body map[string]any) error

func expectField(key string, want any) check {
	return func(body map[string]any) error {
		if got := body[key]; got != want {
			return fmt.Errorf("%s=%v, want %v", key, got, want)
		}
		return nil
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, map[string]any, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, 0, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	latency := time.Since(start)

	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)
	return resp.StatusCode, decoded, latency, nil
}

func httpCase(name, method, url string, body any, want int, chk check) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			// anonymous cases must not carry the bench token
			if want == http.StatusUnauthorized {
				anon := *r
				anon.cfg.Token = ""
				r = &anon
			}
			status, decoded, latency, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if status != want {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", status, want)}
			}
			if chk != nil {
				if err := chk(decoded); err != nil {
					return Result{Status: statusFail, Latency: latency, Note: err.Error()}
				}
			}
			return Result{Status: statusPass, Latency: latency}
		},
	}
}

// bookQuoteOnce races Concurrency bookings of one quote; exactly one may win.
func bookQuoteOnce(ctx context.Context, r *Runner) Result {
	if r.cfg.Token == "" {
		return Result{Status: statusSkip, Note: "no token"}
	}
	base := r.cfg.BaseURL
	status, quote, _, err := r.do(ctx, http.MethodPost, base+"/api/fares/quote", map[string]any{
		"pickup": centre, "destination": airport, "tier_id": "premium",
	})
	if err != nil || status != http.StatusOK {
		return Result{Status: statusFail, Note: fmt.Sprintf("quote: status=%d err=%v", status, err)}
	}
	quoteID, _ := quote["quote_id"].(string)
	if quoteID == "" {
		return Result{Status: statusFail, Note: "quote has no id"}
	}

	var created, gone atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _, _, err := r.do(ctx, http.MethodPost, base+"/api/bookings", map[string]any{"quote_id": quoteID})
			if err != nil {
				return
			}
			switch status {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusGone:
				gone.Add(1)
			}
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("created=%d gone=%d", created.Load(), gone.Load())
	if created.Load() != 1 {
		return Result{Status: statusFail, Note: note}
	}
	return Result{Status: statusPass, Note: note}
}

func quoteLoad(ctx context.Context, r *Runner) Result {
	url := r.cfg.BaseURL + "/api/fares/quote"
	payload := map[string]any{"pickup": centre, "destination": airport, "tier_id": "economy"}
	end := time.Now().Add(r.cfg.Duration)

	var count, errCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, _, _, err := r.do(ctx, http.MethodPost, url, payload)
				if err != nil || status != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

var createTableRe = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

// extractTables lists every table created by the *.sql files in dir.
func extractTables(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	var tables []string
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		for _, m := range createTableRe.FindAllStringSubmatch(string(b), -1) {
			tables = append(tables, m[1])
		}
	}
	return tables, nil
}
