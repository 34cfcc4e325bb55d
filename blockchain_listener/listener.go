// Package blockchain_listener acompanha os eventos Transfer do contrato MIP na
// Starknet e mantém os registros de token sincronizados.
package blockchain_listener

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/addegbenga/mip-dapp/abi"
	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/metrics"
	"github.com/addegbenga/mip-dapp/models"
	"github.com/addegbenga/mip-dapp/starknet"
	"github.com/addegbenga/mip-dapp/storage"
)

// CursorName identifica o progresso deste listener no CursorStore.
const CursorName = "mip_erc721_transfer"

const transferEventName = "ERC721Component::Transfer"

// EventSource é a parte do cliente Starknet usada pelo listener.
type EventSource interface {
	BlockNumber(ctx context.Context) (uint64, error)
	GetEvents(ctx context.Context, filter starknet.EventFilter) (starknet.EventsPage, error)
}

type Config struct {
	ContractAddress string
	StartBlock      uint64
	PollInterval    time.Duration
	ChunkSize       int
}

// BlockchainListener consulta starknet_getEvents periodicamente.
type BlockchainListener struct {
	Source   EventSource
	Tokens   storage.TokenStore
	Cursors  storage.CursorStore
	Metrics  *metrics.Metrics
	contract string
	path     abi.EventPath
	cfg      Config
	log      *logger.Logger
}

// Transfer é um evento ERC721 Transfer decodificado.
type Transfer struct {
	From    string
	To      string
	TokenID *big.Int
}

// NewBlockchainListener cria uma nova instância do listener.
func NewBlockchainListener(src EventSource, tokens storage.TokenStore, cursors storage.CursorStore, d *abi.Descriptor, cfg Config, m *metrics.Metrics, log *logger.Logger) (*BlockchainListener, error) {
	contract, err := starknet.NormalizeAddress(cfg.ContractAddress)
	if err != nil {
		return nil, fmt.Errorf("endereço de contrato inválido: %w", err)
	}
	path, err := d.EventPathFor(abi.MIPEvent, transferEventName)
	if err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Second
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 100
	}
	return &BlockchainListener{
		Source:   src,
		Tokens:   tokens,
		Cursors:  cursors,
		Metrics:  m,
		contract: contract,
		path:     path,
		cfg:      cfg,
		log:      log.With("component", "listener", "contract", contract),
	}, nil
}

// StartListening consulta a rede até o contexto ser cancelado.
func (l *BlockchainListener) StartListening(ctx context.Context) error {
	l.log.Info("Iniciando listener da blockchain", "interval", l.cfg.PollInterval)
	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()
	for {
		if _, err := l.Poll(ctx); err != nil && ctx.Err() == nil {
			l.log.Warn("Falha ao consultar eventos", "error", err)
		}
		select {
		case <-ctx.Done():
			l.log.Info("Listener encerrado")
			return nil
		case <-ticker.C:
		}
	}
}

// Poll processa os eventos desde o último bloco salvo até o bloco mais recente
// e retorna quantos eventos foram aplicados.
func (l *BlockchainListener) Poll(ctx context.Context) (int, error) {
	from := l.cfg.StartBlock
	last, found, err := l.Cursors.GetCursor(ctx, CursorName)
	if err != nil {
		return 0, err
	}
	if found {
		from = last + 1
	}
	latest, err := l.Source.BlockNumber(ctx)
	if err != nil {
		return 0, err
	}
	if from > latest {
		return 0, nil
	}

	keys := make([][]string, len(l.path.Selectors))
	for i, sel := range l.path.Selectors {
		keys[i] = []string{starknet.FeltHex(sel)}
	}
	filter := starknet.EventFilter{
		FromBlock: &starknet.BlockID{BlockNumber: from},
		ToBlock:   &starknet.BlockID{BlockNumber: latest},
		Address:   l.contract,
		Keys:      keys,
		ChunkSize: l.cfg.ChunkSize,
	}

	applied := 0
	for {
		page, err := l.Source.GetEvents(ctx, filter)
		if err != nil {
			return applied, err
		}
		for _, ev := range page.Events {
			if err := l.apply(ctx, ev); err != nil {
				if errors.Is(err, ErrUndecodableEvent) {
					l.log.Warn("Evento ignorado", "tx", ev.TransactionHash, "block", ev.BlockNumber, "error", err)
					l.Metrics.ListenerEvent("Transfer", "error")
					continue
				}
				// cursor fica no lugar; a faixa é reprocessada na próxima consulta
				l.Metrics.ListenerEvent("Transfer", "store_error")
				return applied, fmt.Errorf("falha ao salvar token do evento %s: %w", ev.TransactionHash, err)
			}
			l.Metrics.ListenerEvent("Transfer", "ok")
			applied++
		}
		if page.ContinuationToken == "" {
			break
		}
		filter.ContinuationToken = page.ContinuationToken
	}

	if err := l.Cursors.SaveCursor(ctx, CursorName, latest); err != nil {
		return applied, err
	}
	l.Metrics.ListenerBlock(latest)
	if applied > 0 {
		l.log.Info("Eventos aplicados", "count", applied, "from_block", from, "to_block", latest)
	}
	return applied, nil
}

func (l *BlockchainListener) apply(ctx context.Context, ev starknet.EmittedEvent) error {
	t, err := DecodeTransfer(l.path, ev)
	if err != nil {
		return err
	}
	token := models.Token{
		TokenID:         t.TokenID.String(),
		ContractAddress: l.contract,
		OwnerAddress:    t.To,
		TransactionHash: ev.TransactionHash,
		BlockNumber:     ev.BlockNumber,
	}
	if t.IsMint() {
		token.MintedBy = t.To
		l.log.Info("Token cunhado", "token_id", token.TokenID, "owner", t.To)
	}
	return l.Tokens.SaveToken(ctx, token)
}

// IsMint indica uma transferência a partir do endereço zero.
func (t Transfer) IsMint() bool { return t.From == "0x0" }

// ErrUndecodableEvent marca eventos que não podem ser lidos como Transfer.
var ErrUndecodableEvent = errors.New("evento não corresponde ao Transfer")

// DecodeTransfer decodifica keys e data de um evento segundo o caminho do ABI.
// Todo erro retornado envolve ErrUndecodableEvent.
func DecodeTransfer(path abi.EventPath, ev starknet.EmittedEvent) (Transfer, error) {
	t, err := decodeTransfer(path, ev)
	if err != nil && !errors.Is(err, ErrUndecodableEvent) {
		err = fmt.Errorf("%w: %v", ErrUndecodableEvent, err)
	}
	return t, err
}

func decodeTransfer(path abi.EventPath, ev starknet.EmittedEvent) (Transfer, error) {
	keys, err := starknet.ParseFelts(ev.Keys)
	if err != nil {
		return Transfer{}, err
	}
	data, err := starknet.ParseFelts(ev.Data)
	if err != nil {
		return Transfer{}, err
	}
	if len(keys) < len(path.Selectors) {
		return Transfer{}, ErrUndecodableEvent
	}
	for i, sel := range path.Selectors {
		if keys[i].Cmp(sel) != 0 {
			return Transfer{}, ErrUndecodableEvent
		}
	}
	keys = keys[len(path.Selectors):]

	values := map[string]interface{}{}
	for _, m := range path.Members {
		src := &data
		if m.Kind == abi.MemberKey {
			src = &keys
		}
		switch m.Type {
		case abi.TypeContractAddress, abi.TypeFelt:
			if len(*src) < 1 {
				return Transfer{}, fmt.Errorf("evento truncado em %s", m.Name)
			}
			values[m.Name] = starknet.FeltHex((*src)[0])
			*src = (*src)[1:]
		case abi.TypeU256:
			if len(*src) < 2 {
				return Transfer{}, fmt.Errorf("evento truncado em %s", m.Name)
			}
			v, err := starknet.JoinU256((*src)[0], (*src)[1])
			if err != nil {
				return Transfer{}, err
			}
			values[m.Name] = v
			*src = (*src)[2:]
		default:
			return Transfer{}, fmt.Errorf("tipo de membro não suportado: %s", m.Type)
		}
	}

	from, ok1 := values["from"].(string)
	to, ok2 := values["to"].(string)
	id, ok3 := values["token_id"].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return Transfer{}, ErrUndecodableEvent
	}
	return Transfer{From: from, To: to, TokenID: id}, nil
}
