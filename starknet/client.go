package starknet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rpc"
)

// BlockLatest é a tag de bloco usada nas leituras.
const BlockLatest = "latest"

// BlockID identifica um bloco por número.
type BlockID struct {
	BlockNumber uint64 `json:"block_number"`
}

// EventFilter é o filtro de starknet_getEvents.
type EventFilter struct {
	FromBlock         *BlockID   `json:"from_block,omitempty"`
	ToBlock           *BlockID   `json:"to_block,omitempty"`
	Address           string     `json:"address,omitempty"`
	Keys              [][]string `json:"keys,omitempty"`
	ChunkSize         int        `json:"chunk_size"`
	ContinuationToken string     `json:"continuation_token,omitempty"`
}

// EmittedEvent é um evento retornado pelo nó.
type EmittedEvent struct {
	FromAddress     string   `json:"from_address"`
	Keys            []string `json:"keys"`
	Data            []string `json:"data"`
	BlockNumber     uint64   `json:"block_number"`
	BlockHash       string   `json:"block_hash"`
	TransactionHash string   `json:"transaction_hash"`
}

// EventsPage é uma página de eventos; ContinuationToken vazio indica fim.
type EventsPage struct {
	Events            []EmittedEvent `json:"events"`
	ContinuationToken string         `json:"continuation_token,omitempty"`
}

type functionCall struct {
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

// Client fala JSON-RPC com um nó Starknet.
type Client struct {
	rpc *rpc.Client
}

// Dial conecta ao endpoint JSON-RPC (http, https ou ws).
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	c, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao nó Starknet: %w", err)
	}
	return &Client{rpc: c}, nil
}

// Close encerra a conexão.
func (c *Client) Close() {
	c.rpc.Close()
}

// Call executa starknet_call contra o bloco mais recente.
func (c *Client) Call(ctx context.Context, contract string, selector *big.Int, calldata []*big.Int) ([]*big.Int, error) {
	req := functionCall{
		ContractAddress:    contract,
		EntryPointSelector: FeltHex(selector),
		Calldata:           FeltsHex(calldata),
	}
	if req.Calldata == nil {
		req.Calldata = []string{}
	}
	var result []string
	if err := c.rpc.CallContext(ctx, &result, "starknet_call", req, BlockLatest); err != nil {
		return nil, fmt.Errorf("falha em starknet_call: %w", err)
	}
	return ParseFelts(result)
}

// BlockNumber retorna o número do bloco mais recente.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var n uint64
	if err := c.rpc.CallContext(ctx, &n, "starknet_blockNumber"); err != nil {
		return 0, fmt.Errorf("falha em starknet_blockNumber: %w", err)
	}
	return n, nil
}

// GetEvents executa starknet_getEvents com o filtro informado.
func (c *Client) GetEvents(ctx context.Context, filter EventFilter) (EventsPage, error) {
	var page EventsPage
	if err := c.rpc.CallContext(ctx, &page, "starknet_getEvents", filter); err != nil {
		return EventsPage{}, fmt.Errorf("falha em starknet_getEvents: %w", err)
	}
	return page, nil
}
