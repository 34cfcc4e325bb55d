package blockchain_listener

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/addegbenga/mip-dapp/abi"
	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/metrics"
	"github.com/addegbenga/mip-dapp/models"
	"github.com/addegbenga/mip-dapp/starknet"
	"github.com/addegbenga/mip-dapp/storage"
)

// MockEventSource é uma implementação mock de EventSource.
type MockEventSource struct {
	mock.Mock
}

func (m *MockEventSource) BlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockEventSource) GetEvents(ctx context.Context, f starknet.EventFilter) (starknet.EventsPage, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(starknet.EventsPage), args.Error(1)
}

var transferKey = abi.SelectorHex("Transfer")

func transferEvent(from, to, low string, block uint64, tx string) starknet.EmittedEvent {
	return starknet.EmittedEvent{
		FromAddress:     "0xc0",
		Keys:            []string{transferKey, from, to, low, "0x0"},
		Data:            []string{},
		BlockNumber:     block,
		TransactionHash: tx,
	}
}

func newListener(t *testing.T, src EventSource, store *storage.MemoryStore) *BlockchainListener {
	t.Helper()
	d, err := abi.MIP()
	require.NoError(t, err)
	l, err := NewBlockchainListener(src, store, store, d, Config{ContractAddress: "0x00C0", StartBlock: 5, ChunkSize: 2}, metrics.New(), logger.NewNop())
	require.NoError(t, err)
	return l
}

func TestDecodeTransfer(t *testing.T) {
	d, err := abi.MIP()
	require.NoError(t, err)
	path, err := d.EventPathFor(abi.MIPEvent, "ERC721Component::Transfer")
	require.NoError(t, err)

	tr, err := DecodeTransfer(path, transferEvent("0x0", "0xB0B", "0x2a", 1, "0x1"))
	require.NoError(t, err)
	assert.True(t, tr.IsMint())
	assert.Equal(t, "0xb0b", tr.To)
	assert.Equal(t, "42", tr.TokenID.String())

	ev := transferEvent("0x1", "0x2", "0x1", 1, "0x1")
	ev.Keys[4] = "0x1"
	tr, err = DecodeTransfer(path, ev)
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211457", tr.TokenID.String())

	_, err = DecodeTransfer(path, starknet.EmittedEvent{Keys: []string{abi.SelectorHex("Approval"), "0x1", "0x2", "0x1", "0x0"}})
	assert.Error(t, err)

	_, err = DecodeTransfer(path, starknet.EmittedEvent{Keys: []string{transferKey, "0x1"}})
	assert.ErrorIs(t, err, ErrUndecodableEvent)

	_, err = DecodeTransfer(path, starknet.EmittedEvent{Keys: []string{transferKey, "lixo"}})
	assert.ErrorIs(t, err, ErrUndecodableEvent)
}

func TestPollAppliesMintAndTransfer(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	src := new(MockEventSource)
	src.On("BlockNumber", ctx).Return(uint64(20), nil)
	src.On("GetEvents", ctx, mock.MatchedBy(func(f starknet.EventFilter) bool {
		return f.ContinuationToken == "" && f.FromBlock.BlockNumber == 5 && f.ToBlock.BlockNumber == 20 &&
			f.Address == "0xc0" && len(f.Keys) == 1 && f.Keys[0][0] == transferKey
	})).Return(starknet.EventsPage{
		Events: []starknet.EmittedEvent{
			transferEvent("0x0", "0xa", "0x1", 6, "0xt1"),
			{Keys: []string{transferKey, "lixo"}, BlockNumber: 7},
		},
		ContinuationToken: "next",
	}, nil).Once()
	src.On("GetEvents", ctx, mock.MatchedBy(func(f starknet.EventFilter) bool {
		return f.ContinuationToken == "next"
	})).Return(starknet.EventsPage{
		Events: []starknet.EmittedEvent{transferEvent("0xa", "0xb", "0x1", 9, "0xt2")},
	}, nil).Once()

	l := newListener(t, src, store)
	n, err := l.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tok, found, err := store.GetToken(ctx, "0xc0", "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "0xb", tok.OwnerAddress)
	assert.Equal(t, "0xa", tok.MintedBy)
	assert.Equal(t, "0xt2", tok.TransactionHash)
	assert.Equal(t, uint64(9), tok.BlockNumber)

	cursor, found, err := store.GetCursor(ctx, CursorName)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(20), cursor)
	src.AssertExpectations(t)
}

func TestPollResumesFromCursor(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.SaveCursor(ctx, CursorName, 20))

	src := new(MockEventSource)
	src.On("BlockNumber", ctx).Return(uint64(20), nil).Once()
	n, err := newListener(t, src, store).Poll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	src.AssertNotCalled(t, "GetEvents", mock.Anything, mock.Anything)
}

func TestPollKeepsCursorOnError(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	src := new(MockEventSource)
	src.On("BlockNumber", ctx).Return(uint64(30), nil)
	src.On("GetEvents", ctx, mock.Anything).Return(starknet.EventsPage{}, errors.New("nó indisponível"))

	_, err := newListener(t, src, store).Poll(ctx)
	assert.Error(t, err)
	_, found, _ := store.GetCursor(ctx, CursorName)
	assert.False(t, found)
}

// downTokens simula um banco indisponível ao gravar tokens.
type downTokens struct {
	*storage.MemoryStore
}

func (downTokens) SaveToken(context.Context, models.Token) error {
	return errors.New("banco fora do ar")
}

func TestPollKeepsCursorWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	src := new(MockEventSource)
	src.On("BlockNumber", ctx).Return(uint64(20), nil)
	src.On("GetEvents", ctx, mock.Anything).Return(starknet.EventsPage{
		Events: []starknet.EmittedEvent{transferEvent("0x0", "0xa", "0x1", 6, "0xt1")},
	}, nil)

	d, err := abi.MIP()
	require.NoError(t, err)
	l, err := NewBlockchainListener(src, downTokens{store}, store, d, Config{ContractAddress: "0xc0", StartBlock: 5}, metrics.New(), logger.NewNop())
	require.NoError(t, err)

	n, err := l.Poll(ctx)
	assert.Error(t, err)
	assert.Zero(t, n)
	_, found, err := store.GetCursor(ctx, CursorName)
	require.NoError(t, err)
	assert.False(t, found)

	// com o banco de volta, a mesma faixa é reprocessada a partir do bloco inicial
	l.Tokens = store
	n, err = l.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	tok, found, err := store.GetToken(ctx, "0xc0", "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "0xa", tok.MintedBy)
}

func TestStartListeningStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := storage.NewMemoryStore()
	src := new(MockEventSource)
	src.On("BlockNumber", mock.Anything).Return(uint64(0), errors.New("offline"))

	l := newListener(t, src, store)
	l.cfg.PollInterval = 10 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- l.StartListening(ctx) }()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listener não encerrou após cancelamento")
	}
}

func TestNewListenerRejectsBadContract(t *testing.T) {
	d, err := abi.MIP()
	require.NoError(t, err)
	store := storage.NewMemoryStore()
	_, err = NewBlockchainListener(new(MockEventSource), store, store, d, Config{ContractAddress: "nope"}, nil, logger.NewNop())
	assert.Error(t, err)
}
