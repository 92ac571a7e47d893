package main

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fixengine/internal/config"
	"fixengine/internal/fix"
	"fixengine/internal/network"
	"fixengine/internal/pkg/logger"
)

var (
	benchServerAddr  string
	benchConcurrency int
	benchNumOrders   int
	benchRateLimit   int
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "drive concurrent client connections against the server and report latency",
	Run: func(cmd *cobra.Command, args []string) {
		runBenchmark()
	},
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)
	benchmarkCmd.Flags().StringVar(&benchServerAddr, "server", "", "server address (overrides config)")
	benchmarkCmd.Flags().IntVar(&benchConcurrency, "concurrency", 0, "number of concurrent connections (overrides config)")
	benchmarkCmd.Flags().IntVar(&benchNumOrders, "orders", 0, "orders per connection (overrides config)")
	benchmarkCmd.Flags().IntVar(&benchRateLimit, "rate-limit", -1, "orders/sec per connection, 0 = unlimited (overrides config)")
}

// benchResult accumulates one connection's round-trip latencies in
// nanoseconds. Each worker owns its own slice, so no locking is needed
// until the results are merged after every worker has finished.
type benchResult struct {
	latenciesNanos []int64
	errors         int
}

func runBenchmark() {
	cfg, err := config.NewConfigLoader("", "FIXSIM").LoadConfig()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	addr := cfg.Client.ServerAddr
	if benchServerAddr != "" {
		addr = benchServerAddr
	}
	concurrency := cfg.Benchmark.Concurrency
	if benchConcurrency > 0 {
		concurrency = benchConcurrency
	}
	numOrders := cfg.Benchmark.NumOrders
	if benchNumOrders > 0 {
		numOrders = benchNumOrders
	}
	rateLimit := cfg.Benchmark.RateLimit
	if benchRateLimit >= 0 {
		rateLimit = benchRateLimit
	}

	pterm.Info.Printfln("benchmarking %s: concurrency=%d orders=%d rate_limit=%d/s",
		addr, concurrency, numOrders, rateLimit)

	var wg sync.WaitGroup
	results := make([]benchResult, concurrency)
	var completed int64

	start := time.Now()
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = runBenchWorker(idx, addr, numOrders, rateLimit, cfg.Client.SenderCompID, cfg.Client.TargetCompID)
			atomic.AddInt64(&completed, 1)
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	reportBenchResults(results, elapsed)
}

func runBenchWorker(idx int, addr string, numOrders, rateLimit int, senderCompID, targetCompID string) benchResult {
	res := benchResult{latenciesNanos: make([]int64, 0, numOrders)}

	conn, err := network.Connect(context.Background(), addr, 5*time.Second)
	if err != nil {
		res.errors++
		return res
	}
	defer conn.Close()

	msgConn := network.NewMessageConn(conn, nil, nil)
	senderID := fmt.Sprintf("%s-%d", senderCompID, idx)
	seq := 0

	send := func(msgType string, body interface{}) error {
		seq++
		msg := &fix.Message{
			Header: fix.Header{
				BeginString:  fix.BeginString,
				MsgType:      msgType,
				SenderCompID: senderID,
				TargetCompID: targetCompID,
				MsgSeqNum:    seq,
				SendingTime:  strconv.FormatInt(time.Now().UnixMilli(), 10),
			},
			Body: body,
		}
		return msgConn.WriteMessage(msg)
	}

	resetSeqNum := true
	if err := send(fix.MsgTypeLogon, &fix.Logon{EncryptMethod: 0, HeartBtInt: 30, ResetSeqNumFlag: &resetSeqNum}); err != nil {
		res.errors++
		return res
	}
	if _, err := msgConn.ReadMessage(); err != nil {
		res.errors++
		return res
	}

	var ticker *time.Ticker
	if rateLimit > 0 {
		ticker = time.NewTicker(time.Second / time.Duration(rateLimit))
		defer ticker.Stop()
	}

	for n := 0; n < numOrders; n++ {
		if ticker != nil {
			<-ticker.C
		}

		order := &fix.NewOrderSingle{
			ClOrdID:  fmt.Sprintf("ORD-%d-%d", idx, n),
			Symbol:   fix.NewSymbol("IBM"),
			Side:     fix.SideBuy,
			OrderQty: decimal.NewFromInt(100),
			OrdType:  fix.OrdTypeMarket,
		}

		sentAt := time.Now()
		if err := send(fix.MsgTypeNewOrderSingle, order); err != nil {
			res.errors++
			continue
		}
		if _, err := msgConn.ReadMessage(); err != nil {
			res.errors++
			continue
		}
		res.latenciesNanos = append(res.latenciesNanos, time.Since(sentAt).Nanoseconds())
	}

	return res
}

func reportBenchResults(results []benchResult, elapsed time.Duration) {
	var all []int64
	var errors int
	for _, r := range results {
		all = append(all, r.latenciesNanos...)
		errors += r.errors
	}

	if len(all) == 0 {
		pterm.Warning.Println("no orders completed")
		return
	}

	var sum int64
	min, max := all[0], all[0]
	for _, v := range all {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	avg := float64(sum) / float64(len(all))
	throughput := float64(len(all)) / elapsed.Seconds()

	tableData := pterm.TableData{
		{"metric", "value"},
		{"orders completed", fmt.Sprintf("%d", len(all))},
		{"errors", fmt.Sprintf("%d", errors)},
		{"elapsed", elapsed.String()},
		{"throughput (orders/s)", fmt.Sprintf("%.1f", throughput)},
		{"avg latency", time.Duration(avg).String()},
		{"min latency", time.Duration(min).String()},
		{"max latency", time.Duration(max).String()},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		logger.Warnf("render table: %v", err)
	}
}
