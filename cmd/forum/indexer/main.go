package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/arweave"
	"github.com/goodnatureofminers/decentforum-indexer/internal/config"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/blockwatch"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/cache"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/cachesync"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/enrich"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/pending"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/query"
	"github.com/goodnatureofminers/decentforum-indexer/internal/metrics"
	"github.com/goodnatureofminers/decentforum-indexer/internal/transport"
	"github.com/goodnatureofminers/decentforum-indexer/pkg/batcher"
	"github.com/goodnatureofminers/decentforum-indexer/pkg/workerpool"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type options struct {
	GatewayURL    string        `long:"gateway-url" env:"FORUM_INDEXER_GATEWAY_URL" description:"Arweave gateway URL" default:"https://arweave.net"`
	HTTPTimeout   time.Duration `long:"http-timeout" env:"FORUM_INDEXER_HTTP_TIMEOUT" description:"timeout for gateway requests" default:"30s"`
	Version       string        `long:"version" env:"FORUM_INDEXER_VERSION" description:"DFV tag value of indexed items" default:"1"`
	BlocksToSync  int           `long:"blocks-to-sync" env:"FORUM_INDEXER_BLOCKS_TO_SYNC" description:"size of the watched block window" default:"7"`
	PollMin       time.Duration `long:"poll-min" env:"FORUM_INDEXER_POLL_MIN" description:"minimum delay between head polls" default:"1m"`
	PollMax       time.Duration `long:"poll-max" env:"FORUM_INDEXER_POLL_MAX" description:"maximum delay between head polls" default:"3m"`
	TagRPS        int           `long:"tag-rps" env:"FORUM_INDEXER_TAG_RPS" description:"tag requests per second" default:"10"`
	FlushSize     int           `long:"flush-size" env:"FORUM_INDEXER_FLUSH_SIZE" description:"ids per cache fill" default:"50"`
	FlushInterval time.Duration `long:"flush-interval" env:"FORUM_INDEXER_FLUSH_INTERVAL" description:"maximum wait before filling queued ids" default:"5s"`
	FlushRPS      int           `long:"flush-rps" env:"FORUM_INDEXER_FLUSH_RPS" description:"cache fills per second" default:"1"`
	FailAfter     time.Duration `long:"fail-after" env:"FORUM_INDEXER_FAIL_AFTER" description:"mark submitted items failed after this long, 0 disables" default:"0"`
	WatchList     string        `long:"watch-list" env:"FORUM_INDEXER_WATCH_LIST" description:"YAML file of forums and threads to preload"`
	Workers       int           `long:"workers" env:"FORUM_INDEXER_WORKERS" description:"concurrent preload queries" default:"4"`
	APIAddr       string        `long:"api-addr" env:"FORUM_INDEXER_API_ADDR" description:"address for the forum API" default:":8000"`
	MetricsAddr   string        `long:"metrics-addr" env:"FORUM_INDEXER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := options{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("forum indexer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg options, logger *zap.Logger) error {
	var watchList *config.WatchList
	if cfg.WatchList != "" {
		list, err := config.Load(cfg.WatchList)
		if err != nil {
			return err
		}
		watchList = list
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	client, err := arweave.NewClient(cfg.GatewayURL, cfg.HTTPTimeout, logger)
	if err != nil {
		return fmt.Errorf("init arweave client: %w", err)
	}
	ledger := arweave.NewObservedClient(client, metrics.NewLedgerClient(), logger)

	forum, err := cache.NewForumCache(logger, metrics.NewForumCache(), cache.DefaultConfig())
	if err != nil {
		return err
	}
	filler, err := enrich.NewFiller(ledger, forum, metrics.NewFillCache(), enrich.Config{Version: cfg.Version}, logger)
	if err != nil {
		return err
	}

	queue := batcher.New[string](logger.Named("fillQueue"), cachesync.Flush(filler), batcher.Config{
		FlushSize:     cfg.FlushSize,
		FlushInterval: cfg.FlushInterval,
		RPS:           cfg.FlushRPS,
	})
	queue.Start(ctx)
	defer queue.Stop()

	syncer, err := cachesync.NewSyncer(forum, queue, metrics.NewCacheSync(), cfg.Version, logger)
	if err != nil {
		return err
	}
	tracker, err := pending.NewTracker(forum, ledger, metrics.NewPendingTracker(), pending.Config{FailAfter: cfg.FailAfter}, logger)
	if err != nil {
		return err
	}
	watcher, err := blockwatch.NewWatcher(ledger, metrics.NewBlockWatcher(), blockwatch.Config{
		BlocksToSync: cfg.BlocksToSync,
		PollMin:      cfg.PollMin,
		PollMax:      cfg.PollMax,
		TagRPS:       cfg.TagRPS,
	}, logger)
	if err != nil {
		return err
	}
	if _, err := watcher.Subscribe(ctx, syncer); err != nil {
		return fmt.Errorf("subscribe cache sync: %w", err)
	}
	if _, err := watcher.Subscribe(ctx, tracker); err != nil {
		return fmt.Errorf("subscribe pending tracker: %w", err)
	}

	if watchList != nil {
		querier, err := query.NewQuerier(ledger, cfg.Version, logger)
		if err != nil {
			return err
		}
		go preload(ctx, querier, filler, watchList, cfg.Workers, logger)
	}

	go func() {
		if err := tracker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("pending tracker stopped", zap.Error(err))
		}
	}()

	handler, err := transport.NewForumHandler(forum, watcher, logger)
	if err != nil {
		return err
	}
	startAPIServer(ctx, cfg.APIAddr, handler, logger)

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type preloadTask struct {
	forum  *config.WatchedForum
	thread *config.WatchedThread
}

// preload queries every watched forum and thread and fills the cache with
// the results. Failed entries are logged and skipped.
func preload(ctx context.Context, querier *query.Querier, filler *enrich.Filler, list *config.WatchList, workers int, logger *zap.Logger) {
	logger = logger.Named("preload")
	tasks := make([]preloadTask, 0, len(list.Forums)+len(list.Threads))
	for i := range list.Forums {
		tasks = append(tasks, preloadTask{forum: &list.Forums[i]})
	}
	for i := range list.Threads {
		tasks = append(tasks, preloadTask{thread: &list.Threads[i]})
	}
	if workers <= 0 {
		workers = 1
	}

	err := workerpool.Process(ctx, workers, tasks, func(ctx context.Context, task preloadTask) error {
		var (
			ids  []string
			err  error
			name string
		)
		if task.forum != nil {
			name = task.forum.Path
			ids, err = querier.QueryForum(ctx, task.forum.Segments, task.forum.Depth)
		} else {
			name = task.thread.ID
			ids, err = querier.QueryThread(ctx, task.thread.ID, task.thread.Depth)
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("watch list query failed", zap.String("entry", name), zap.Error(err))
			return nil
		}
		result, err := filler.FillCache(ctx, ids)
		if err != nil {
			return err
		}
		logger.Info("preloaded", zap.String("entry", name), zap.Int("posts", result.Posts), zap.Int("votes", result.Votes))
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("preload stopped", zap.Error(err))
	}
}

func startAPIServer(ctx context.Context, addr string, handler *transport.ForumHandler, logger *zap.Logger) {
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(router),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	serve(ctx, srv, "api", logger)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	routes := http.NewServeMux()
	routes.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           routes,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	serve(ctx, srv, "metrics", logger)
}

func serve(ctx context.Context, srv *http.Server, name string, logger *zap.Logger) {
	logger = logger.With(zap.String("server", name))
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown server", zap.Error(err))
		}
	}()
}
