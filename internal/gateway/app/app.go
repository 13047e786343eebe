package app

import (
	"context"
	"fmt"
	"log"

	relcache "reposit/internal/cache/relationship"
	"reposit/internal/gateway/config"
	"reposit/internal/gateway/handler"
	bitrepo "reposit/internal/gateway/repository/bitstream"
	relrepo "reposit/internal/gateway/repository/relationship"
	"reposit/internal/gateway/server"
	itemsvc "reposit/internal/gateway/service/items"
	relsvc "reposit/internal/gateway/service/relationship"
	selsvc "reposit/internal/gateway/service/selection"
	"reposit/internal/objectcache"
	"reposit/internal/rest"
	"reposit/internal/store"
)

type App struct {
	server *server.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	state := store.New()
	cache := objectcache.New(objectcache.Config{
		TTL:        cfg.ObjectCache.TTL,
		MaxEntries: cfg.ObjectCache.MaxEntries,
	})
	parser := rest.NewParser(cache)
	client := rest.NewClient(cfg.UpstreamAPI)

	relStore, err := newRelationshipStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("init relationship store: %w", err)
	}
	relService := relsvc.New(relcache.NewCachedStore(relStore, relcache.DefaultCacheConfig()))
	itemService := itemsvc.New(cache, client, parser)
	selectionService := selsvc.New()

	fileStore, err := newBitstreamStore(cfg.Bitstream)
	if err != nil {
		return nil, fmt.Errorf("init bitstream store: %w", err)
	}

	// Handlers, routing, server
	mux := server.NewMux(
		handler.NewSubmissionHandler(client, parser, state),
		handler.NewRelationshipHandler(relService, state),
		handler.NewRelatedHandler(itemService, selectionService, relService, state),
		handler.NewBitstreamHandler(fileStore),
		handler.NewSelectionHandler(selectionService),
		handler.NewWatchHandler(state),
	)

	return &App{
		server: server.New(cfg.Port, mux),
	}, nil
}

func newRelationshipStore(cfg config.StoreConfig) (relrepo.Store, error) {
	switch {
	case cfg.PostgresDSN != "":
		return relrepo.NewPostgres(cfg.PostgresDSN)
	case cfg.SQLitePath != "":
		return relrepo.NewSQLite(cfg.SQLitePath)
	default:
		log.Printf("no relationship DSN configured, using in-memory store")
		return relrepo.NewMemoryStore(), nil
	}
}

func newBitstreamStore(cfg config.BitstreamConfig) (bitrepo.Store, error) {
	if !cfg.Enabled {
		log.Printf("no bitstream endpoint configured, using in-memory store")
		return bitrepo.NewMemoryStore(), nil
	}
	return bitrepo.NewS3Store(bitrepo.S3Config{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
	})
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
