package starknet_test

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addegbenga/mip-dapp/starknet"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newRPCServer simula um nó Starknet respondendo por método.
func newRPCServer(t *testing.T, handle func(method string, params []json.RawMessage) (interface{}, *int)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		result, errCode := handle(req.Method, req.Params)
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if errCode != nil {
			resp["error"] = map[string]interface{}{"code": *errCode, "message": "contract error"}
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestClientCall(t *testing.T) {
	var gotParams []json.RawMessage
	srv := newRPCServer(t, func(method string, params []json.RawMessage) (interface{}, *int) {
		assert.Equal(t, "starknet_call", method)
		gotParams = params
		return []string{"0x0", "0x6869", "0x2"}, nil
	})
	defer srv.Close()

	c, err := starknet.Dial(context.Background(), srv.URL)
	require.NoError(t, err)
	defer c.Close()

	out, err := c.Call(context.Background(), "0xabc", big.NewInt(5), []*big.Int{big.NewInt(1), big.NewInt(0)})
	require.NoError(t, err)
	s, _, err := starknet.DecodeByteArray(out)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	require.Len(t, gotParams, 2)
	assert.JSONEq(t, `{"contract_address":"0xabc","entry_point_selector":"0x5","calldata":["0x1","0x0"]}`, string(gotParams[0]))
	assert.JSONEq(t, `"latest"`, string(gotParams[1]))
}

func TestClientCallError(t *testing.T) {
	code := 40
	srv := newRPCServer(t, func(string, []json.RawMessage) (interface{}, *int) { return nil, &code })
	defer srv.Close()

	c, err := starknet.Dial(context.Background(), srv.URL)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Call(context.Background(), "0xabc", big.NewInt(5), nil)
	assert.Error(t, err)
}

func TestClientEventsAndBlockNumber(t *testing.T) {
	srv := newRPCServer(t, func(method string, params []json.RawMessage) (interface{}, *int) {
		switch method {
		case "starknet_blockNumber":
			return 1234, nil
		case "starknet_getEvents":
			var f starknet.EventFilter
			_ = json.Unmarshal(params[0], &f)
			if f.ContinuationToken == "" {
				return map[string]interface{}{
					"events": []map[string]interface{}{{
						"from_address":     "0xabc",
						"keys":             []string{"0x1", "0x0", "0x2", "0x7", "0x0"},
						"data":             []string{},
						"block_number":     10,
						"block_hash":       "0xbeef",
						"transaction_hash": "0xfeed",
					}},
					"continuation_token": "next",
				}, nil
			}
			return map[string]interface{}{"events": []interface{}{}}, nil
		}
		return nil, nil
	})
	defer srv.Close()

	c, err := starknet.Dial(context.Background(), srv.URL)
	require.NoError(t, err)
	defer c.Close()

	n, err := c.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), n)

	page, err := c.GetEvents(context.Background(), starknet.EventFilter{Address: "0xabc", ChunkSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, "0xfeed", page.Events[0].TransactionHash)
	assert.Equal(t, uint64(10), page.Events[0].BlockNumber)
	assert.Equal(t, "next", page.ContinuationToken)

	page, err = c.GetEvents(context.Background(), starknet.EventFilter{Address: "0xabc", ChunkSize: 10, ContinuationToken: "next"})
	require.NoError(t, err)
	assert.Empty(t, page.Events)
	assert.Empty(t, page.ContinuationToken)
}
