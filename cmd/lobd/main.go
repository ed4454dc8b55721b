package main

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"lob/api"
	"lob/domain/book"
	"lob/feed"
	"lob/infra/kafka"
	"lob/infra/outbox"
	"lob/infra/sequence"
	"lob/jobs/broadcaster"
	"lob/params"
	"lob/render"
	"lob/service"
	"lob/util"
)

func main() {
	cfg := params.LoadFromEnv("")

	logger, err := util.NewLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("ledger exited", zap.Error(err))
	}
}

func run(cfg params.Config, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// ---------------- Input ----------------

	var input io.Reader = os.Stdin
	if cfg.Feed.Input != "" && cfg.Feed.Input != "-" {
		f, err := os.Open(cfg.Feed.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	// ---------------- Journal ----------------

	var journal service.ExecutionJournal
	var box *outbox.Outbox
	if cfg.Journal.Dir != "" {
		var err error
		box, err = outbox.Open(cfg.Journal.Dir)
		if err != nil {
			return err
		}
		defer box.Close()
		journal = box
	}

	// ---------------- Kafka ----------------

	var depth service.DepthSink
	if cfg.Kafka.Enabled {
		pub := kafka.NewDepthPublisher(cfg.Kafka.Brokers, cfg.Kafka.DepthTopic)
		defer pub.Close()
		depth = pub

		if box == nil {
			return errors.New("kafka broadcasting requires LOB_OUTBOX_DIR")
		}
		bc, err := broadcaster.New(logger, box, cfg.Kafka.Brokers, cfg.Kafka.ExecTopic)
		if err != nil {
			return err
		}
		defer bc.Close()
		bc.Start(ctx)
	}

	// ---------------- Domain ----------------

	pair := book.NewBookPair(book.NewExecutionLedger())
	seq := sequence.New(0)
	console := render.NewConsole(os.Stdout)

	proc := service.NewProcessor(logger, pair, seq, console, journal, depth)

	// ---------------- gRPC ----------------

	if cfg.API.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.API.GRPCAddr)
		if err != nil {
			return err
		}
		srv := api.NewServer(logger, proc)
		go func() {
			if err := srv.Serve(lis); err != nil {
				logger.Error("query server exited", zap.Error(err))
			}
		}()
		defer srv.Stop()
	}

	// ---------------- Feed ----------------

	sc := feed.NewScanner(input, logger)
	go func() {
		for {
			cmd, ok := sc.Next()
			if !ok {
				break
			}
			if !proc.Submit(cmd) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			logger.Error("feed read failed", zap.Error(err))
		}
		if n := sc.Dropped(); n > 0 {
			logger.Warn("malformed lines dropped", zap.Int("count", n))
		}
		// end of stream counts as termination
		proc.Submit(feed.Terminate{})
	}()

	err := proc.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
