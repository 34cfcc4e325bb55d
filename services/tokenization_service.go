package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/addegbenga/mip-dapp/abi"
	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/models"
	"github.com/addegbenga/mip-dapp/starknet"
	"github.com/addegbenga/mip-dapp/storage"
)

var (
	ErrInvalidArgument    = errors.New("argumento inválido")
	ErrAssetNotFound      = errors.New("ativo não encontrado")
	ErrAssetNotTokenized  = errors.New("ativo não tokenizado")
	ErrChainUnavailable   = errors.New("rpc starknet não configurado")
	ErrContractNotDefined = errors.New("endereço do contrato MIP não configurado")
)

// ChainCaller executa leituras (starknet_call) no contrato.
type ChainCaller interface {
	Call(ctx context.Context, contract string, selector *big.Int, calldata []*big.Int) ([]*big.Int, error)
}

// TokenizationService prepara as chamadas de mint e transferência do contrato MIP.
// A assinatura acontece na carteira do usuário; o backend só monta e valida a
// chamada contra o ABI, e lê o estado do token na rede.
type TokenizationService struct {
	ABI             *abi.Descriptor
	Chain           ChainCaller
	Tokens          storage.TokenStore
	Resolver        *AssetResolver
	ContractAddress string
	log             *logger.Logger
}

func NewTokenizationService(d *abi.Descriptor, chain ChainCaller, tokens storage.TokenStore, resolver *AssetResolver, contract string, log *logger.Logger) *TokenizationService {
	return &TokenizationService{
		ABI:             d,
		Chain:           chain,
		Tokens:          tokens,
		Resolver:        resolver,
		ContractAddress: contract,
		log:             log,
	}
}

// MintRequest é o pedido de cunhagem de um novo token MIP.
type MintRequest struct {
	Recipient string `json:"recipient"`
	URI       string `json:"uri"`
}

// TransferRequest identifica o token por slug do ativo ou diretamente pelo token_id.
type TransferRequest struct {
	AssetSlug string `json:"asset_slug,omitempty"`
	TokenID   string `json:"token_id,omitempty"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// PrepareMint monta a chamada mint_item(recipient, uri).
func (s *TokenizationService) PrepareMint(req MintRequest) (starknet.Call, error) {
	if s.ContractAddress == "" {
		return starknet.Call{}, ErrContractNotDefined
	}
	if strings.TrimSpace(req.URI) == "" {
		return starknet.Call{}, fmt.Errorf("%w: uri é obrigatória", ErrInvalidArgument)
	}
	if err := nonZeroAddress("recipient", req.Recipient); err != nil {
		return starknet.Call{}, err
	}
	call, err := starknet.PrepareCall(s.ABI, s.ContractAddress, "mint_item", req.Recipient, req.URI)
	if err != nil {
		return starknet.Call{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	s.log.Info("Chamada de mint preparada", "recipient", req.Recipient)
	return call, nil
}

// PrepareTransfer monta a chamada transfer_from(from, to, token_id).
func (s *TokenizationService) PrepareTransfer(ctx context.Context, req TransferRequest) (starknet.Call, error) {
	if s.ContractAddress == "" {
		return starknet.Call{}, ErrContractNotDefined
	}
	tokenID, err := s.resolveTokenID(ctx, req)
	if err != nil {
		return starknet.Call{}, err
	}
	if err := nonZeroAddress("from", req.From); err != nil {
		return starknet.Call{}, err
	}
	if err := nonZeroAddress("to", req.To); err != nil {
		return starknet.Call{}, err
	}
	call, err := starknet.PrepareCall(s.ABI, s.ContractAddress, "transfer_from", req.From, req.To, tokenID)
	if err != nil {
		return starknet.Call{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	s.log.Info("Chamada de transferência preparada", "token_id", tokenID, "from", req.From, "to", req.To)
	return call, nil
}

func (s *TokenizationService) resolveTokenID(ctx context.Context, req TransferRequest) (string, error) {
	if req.TokenID != "" {
		return req.TokenID, nil
	}
	if req.AssetSlug == "" {
		return "", fmt.Errorf("%w: informe asset_slug ou token_id", ErrInvalidArgument)
	}
	asset, found, err := s.Resolver.Resolve(ctx, req.AssetSlug)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, req.AssetSlug)
	}
	if asset.TokenID == "" {
		return "", fmt.Errorf("%w: %s", ErrAssetNotTokenized, req.AssetSlug)
	}
	return asset.TokenID, nil
}

// TokenURI lê token_uri(token_id) na rede.
func (s *TokenizationService) TokenURI(ctx context.Context, tokenID string) (string, error) {
	out, err := s.read(ctx, "token_uri", tokenID)
	if err != nil {
		return "", err
	}
	uri, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("retorno inesperado de token_uri: %T", out[0])
	}
	return uri, nil
}

// OwnerOf lê owner_of(token_id) na rede.
func (s *TokenizationService) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	out, err := s.read(ctx, "owner_of", tokenID)
	if err != nil {
		return "", err
	}
	owner, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("retorno inesperado de owner_of: %T", out[0])
	}
	return owner, nil
}

// GetToken retorna o registro do token mantido pelo listener.
func (s *TokenizationService) GetToken(ctx context.Context, tokenID string) (models.Token, bool, error) {
	id, err := starknet.ParseU256(tokenID)
	if err != nil {
		return models.Token{}, false, fmt.Errorf("%w: token_id: %v", ErrInvalidArgument, err)
	}
	contract, err := starknet.NormalizeAddress(s.ContractAddress)
	if err != nil {
		return models.Token{}, false, ErrContractNotDefined
	}
	return s.Tokens.GetToken(ctx, contract, id.String())
}

func (s *TokenizationService) read(ctx context.Context, function string, args ...interface{}) ([]interface{}, error) {
	if s.Chain == nil {
		return nil, ErrChainUnavailable
	}
	if s.ContractAddress == "" {
		return nil, ErrContractNotDefined
	}
	fn, _, err := s.ABI.Function(function)
	if err != nil {
		return nil, err
	}
	calldata, err := starknet.EncodeArgs(fn.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	raw, err := s.Chain.Call(ctx, s.ContractAddress, abi.Selector(fn.Name), calldata)
	if err != nil {
		return nil, fmt.Errorf("falha ao chamar %s: %w", function, err)
	}
	out, err := starknet.DecodeOutputs(fn.Outputs, raw)
	if err != nil {
		return nil, fmt.Errorf("falha ao decodificar %s: %w", function, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s não retornou valores", function)
	}
	return out, nil
}

func nonZeroAddress(field, addr string) error {
	v, err := starknet.ParseFelt(addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArgument, field, err)
	}
	if starknet.IsZero(v) {
		return fmt.Errorf("%w: %s não pode ser o endereço zero", ErrInvalidArgument, field)
	}
	return nil
}
