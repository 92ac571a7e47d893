package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fixengine/internal/config"
	"fixengine/internal/network"
	"fixengine/internal/pkg/logger"
	"fixengine/internal/session"
)

var (
	listenAddr    string
	workerThreads int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run the FIX session server",
	Long: `Starts the listener, accepts one session per connection, and
acknowledges every NewOrderSingle received after a completed Logon. Shuts down
gracefully on SIGINT/SIGTERM, draining in-flight sessions for a bounded
window before forcing exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides config)")
	serverCmd.Flags().IntVar(&workerThreads, "workers", 0, "worker thread count (overrides config)")
}

func runServer() {
	cfg, err := config.NewConfigLoader("", "FIXSIM").LoadConfig()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}
	if workerThreads > 0 {
		cfg.Server.WorkerThreads = workerThreads
	}

	ln, err := network.Listen(cfg.Server.ListenAddr)
	if err != nil {
		logger.Fatalf("listen: %v", err)
	}
	logger.Infof("fixengine server listening on %s (workers=%d)", cfg.Server.ListenAddr, cfg.Server.WorkerThreads)

	admission := session.NewAdmission(cfg.Server.WorkerThreads * 10)
	log := logger.LoggerInstance.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go acceptLoop(ctx, &wg, ln, admission, cfg.Server.SenderCompID, log)

	printStatsPeriodically(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	pterm.Info.Println("shutting down fixengine server")

	cancel()
	_ = ln.Close()

	drain, _ := time.ParseDuration(cfg.Server.ShutdownDrain)
	if drain <= 0 {
		drain = 5 * time.Second
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(drain):
		pterm.Warning.Println("shutdown drain window exceeded, forcing exit")
	}
}

func acceptLoop(ctx context.Context, wg *sync.WaitGroup, ln net.Listener, admission *session.Admission, senderCompID string, log *logrus.Logger) {
	defer wg.Done()

	for {
		conn, err := network.AcceptTuned(ln)
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.WithError(err).Warn("accept failed")
			continue
		}

		if !admission.TryAcquire() {
			log.Warn("admission limit reached, rejecting connection")
			_ = conn.Close()
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			entry := log.WithField("component", "session")
			msgConn := network.NewMessageConn(conn, nil, entry)
			handler := session.NewOrderHandler(senderCompID, entry)
			sess := session.New(msgConn, handler, admission, log)
			sess.Run()
		}()
	}
}

func printStatsPeriodically(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := session.Snapshot()
				pterm.DefaultBasicText.Printfln(
					"orders=%d avg_latency_us=%.1f min_us=%d max_us=%d",
					snap.OrdersProcessed, snap.AvgLatencyMicros(), snap.MinLatencyMicros, snap.MaxLatencyMicros,
				)
			}
		}
	}()
}
