package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/addegbenga/mip-dapp/abi"
	"github.com/addegbenga/mip-dapp/blockchain_listener"
	"github.com/addegbenga/mip-dapp/config"
	"github.com/addegbenga/mip-dapp/handlers"
	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/metrics"
	"github.com/addegbenga/mip-dapp/pinata"
	"github.com/addegbenga/mip-dapp/server"
	"github.com/addegbenga/mip-dapp/services"
	"github.com/addegbenga/mip-dapp/starknet"
	"github.com/addegbenga/mip-dapp/storage"
)

// app agrupa as dependências montadas para o comando serve.
type app struct {
	handler  http.Handler
	listener *blockchain_listener.BlockchainListener
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

type stores struct {
	assets  storage.AssetStore
	tokens  storage.TokenStore
	cursors storage.CursorStore
}

func openStores(cfg config.Config, log *logger.Logger, a *app) (stores, error) {
	var s stores
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := storage.NewDB(cfg.Storage.DatabaseURL, log)
		if err != nil {
			return s, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		s = stores{assets: db, tokens: db, cursors: db}
	default:
		mem, err := storage.NewMemoryStoreFromFixtures()
		if err != nil {
			return s, err
		}
		log.Info("Usando armazenamento em memória com dados de demonstração")
		s = stores{assets: mem, tokens: mem, cursors: mem}
	}
	if cfg.Storage.CacheTTL > 0 {
		cached, err := storage.NewCachedAssetStore(s.assets, cfg.Storage.CacheTTL, log)
		if err != nil {
			return s, err
		}
		a.closers = append(a.closers, func() { _ = cached.Close() })
		s.assets = cached
	}
	return s, nil
}

func buildApp(ctx context.Context, cfg config.Config, log *logger.Logger) (*app, error) {
	a := &app{}
	st, err := openStores(cfg, log, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	d, err := abi.MIP()
	if err != nil {
		a.Close()
		return nil, err
	}
	m := metrics.New()

	var creator pinata.SignedURLCreator
	if c, err := pinata.New(log, pinata.Config{JWT: cfg.Pinata.JWT, UploadsURL: cfg.Pinata.UploadsURL, Timeout: cfg.Pinata.Timeout}); err != nil {
		log.Warn("Pinata desabilitado", "error", err)
	} else {
		creator = c
	}

	var chain services.ChainCaller
	var client *starknet.Client
	if cfg.Starknet.RPCURL != "" {
		client, err = starknet.Dial(ctx, cfg.Starknet.RPCURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		chain = client
	}

	resolver := services.NewAssetResolver(st.assets)
	views := services.NewAssetViewService(resolver, services.ViewOptions{
		PublicBaseURL:   cfg.Server.PublicBaseURL,
		MetadataBaseURL: cfg.Server.MetadataBaseURL,
		ContractAddress: cfg.Starknet.ContractAddress,
		ExplorerURL:     cfg.Starknet.ExplorerURL,
	})
	tokens := services.NewTokenizationService(d, chain, st.tokens, resolver, cfg.Starknet.ContractAddress, log)

	a.handler = server.NewRouter(server.Handlers{
		Assets:   handlers.NewAssetHandler(resolver, views, nil, log),
		Creators: handlers.NewCreatorHandler(resolver, log),
		Tokens:   handlers.NewTokenHandler(tokens, log),
		Pinata:   handlers.NewPinataHandler(creator, m, log),
		ABI:      handlers.NewABIHandler(abi.Raw, d),
	}, m, log)

	if cfg.Starknet.ListenerEnabled {
		if client == nil {
			a.Close()
			return nil, fmt.Errorf("listener exige starknet.rpc_url")
		}
		a.listener, err = blockchain_listener.NewBlockchainListener(client, st.tokens, st.cursors, d, blockchain_listener.Config{
			ContractAddress: cfg.Starknet.ContractAddress,
			StartBlock:      cfg.Starknet.StartBlock,
			PollInterval:    cfg.Starknet.PollInterval,
			ChunkSize:       cfg.Starknet.ChunkSize,
		}, m, log)
		if err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}
