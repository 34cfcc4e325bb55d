package starknet_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addegbenga/mip-dapp/abi"
	"github.com/addegbenga/mip-dapp/starknet"
)

func TestParseFelt(t *testing.T) {
	v, err := starknet.ParseFelt("0x1f")
	require.NoError(t, err)
	assert.Equal(t, int64(31), v.Int64())

	v, err = starknet.ParseFelt("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Int64())

	_, err = starknet.ParseFelt(starknet.FeltHex(starknet.Prime()))
	assert.ErrorIs(t, err, starknet.ErrFeltOverflow)

	for _, bad := range []string{"", "0x", "-1", "zz", "0xgg"} {
		_, err = starknet.ParseFelt(bad)
		assert.ErrorIs(t, err, starknet.ErrInvalidFelt, bad)
	}
}

func TestU256SplitJoin(t *testing.T) {
	v, ok := new(big.Int).SetString("340282366920938463463374607431768211457", 10) // 2^128 + 1
	require.True(t, ok)

	low, high := starknet.SplitU256(v)
	assert.Equal(t, int64(1), low.Int64())
	assert.Equal(t, int64(1), high.Int64())

	back, err := starknet.JoinU256(low, high)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Cmp(back))

	_, err = starknet.ParseU256("0x1" + strings.Repeat("0", 64))
	assert.Error(t, err)
}

func TestByteArrayShort(t *testing.T) {
	enc := starknet.EncodeByteArray("hello")
	require.Len(t, enc, 3)
	assert.Equal(t, int64(0), enc[0].Int64())
	assert.Equal(t, "0x68656c6c6f", starknet.FeltHex(enc[1]))
	assert.Equal(t, int64(5), enc[2].Int64())
}

func TestByteArrayRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
		strings.Repeat("a", 31),
		strings.Repeat("b", 62),
	} {
		enc := starknet.EncodeByteArray(s)
		assert.Equal(t, int64(len(s)/31), enc[0].Int64())

		// felt extra depois do ByteArray não deve ser consumido
		withTail := append(enc, big.NewInt(7))
		got, n, err := starknet.DecodeByteArray(withTail)
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.Equal(t, len(enc), n)
	}
}

func TestDecodeByteArrayTruncated(t *testing.T) {
	_, _, err := starknet.DecodeByteArray([]*big.Int{big.NewInt(2), big.NewInt(1)})
	assert.Error(t, err)
}

func TestDecodeByteArrayHugeWordCount(t *testing.T) {
	huge := new(big.Int).SetUint64(1<<63 - 1)
	assert.NotPanics(t, func() {
		_, _, err := starknet.DecodeByteArray([]*big.Int{huge, big.NewInt(0), big.NewInt(0)})
		assert.Error(t, err)
	})

	felt := new(big.Int).Lsh(big.NewInt(1), 200)
	_, _, err := starknet.DecodeByteArray([]*big.Int{felt, big.NewInt(0), big.NewInt(0)})
	assert.Error(t, err)

	_, _, err = starknet.DecodeByteArray([]*big.Int{big.NewInt(-1), big.NewInt(0), big.NewInt(0)})
	assert.Error(t, err)
}

func TestPrepareMintCall(t *testing.T) {
	d, err := abi.MIP()
	require.NoError(t, err)

	call, err := starknet.PrepareCall(d, "0x0ABC", "mint_item", "0x123", "hi")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", call.ContractAddress)
	assert.Equal(t, "mint_item", call.Entrypoint)
	assert.Equal(t, "0x3d50ff8d0185c4c17d57ca6873541c5dd0405a413bdcf78c0a9e29d6214c348", call.EntryPointSelector)
	assert.Equal(t, []string{"0x123", "0x0", "0x6869", "0x2"}, call.Calldata)
}

func TestPrepareTransferCall(t *testing.T) {
	d, err := abi.MIP()
	require.NoError(t, err)

	call, err := starknet.PrepareCall(d, "0x1", "transfer_from", "0xa", "0xb", "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xa", "0xb", "0x7", "0x0"}, call.Calldata)

	_, err = starknet.PrepareCall(d, "0x1", "transfer_from", "0xa", "0xb")
	assert.Error(t, err)

	_, err = starknet.PrepareCall(d, "0x1", "set_approval_for_all", "0xa", "yes")
	assert.Error(t, err)

	call, err = starknet.PrepareCall(d, "0x1", "set_approval_for_all", "0xa", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xa", "0x1"}, call.Calldata)

	_, err = starknet.PrepareCall(d, "0x1", "burn", "7")
	assert.ErrorIs(t, err, abi.ErrFunctionNotFound)
}

func TestDecodeOutputs(t *testing.T) {
	d, err := abi.MIP()
	require.NoError(t, err)

	fn, _, err := d.Function("token_uri")
	require.NoError(t, err)
	out, err := starknet.DecodeOutputs(fn.Outputs, starknet.EncodeByteArray("ipfs://cid"))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"ipfs://cid"}, out)

	fn, _, err = d.Function("total_supply")
	require.NoError(t, err)
	out, err = starknet.DecodeOutputs(fn.Outputs, []*big.Int{big.NewInt(3), big.NewInt(0)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out[0].(*big.Int).Int64())

	_, err = starknet.DecodeOutputs(fn.Outputs, []*big.Int{big.NewInt(3)})
	assert.Error(t, err)
}
