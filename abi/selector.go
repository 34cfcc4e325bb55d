package abi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
)

// mask250 = 2^250 - 1
var mask250 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))

// Selector calcula o seletor Starknet (sn_keccak) de um nome de função ou evento:
// keccak256 do nome ASCII truncado para 250 bits.
func Selector(name string) *big.Int {
	h := new(big.Int).SetBytes(crypto.Keccak256([]byte(name)))
	return h.And(h, mask250)
}

// SelectorHex retorna o seletor em hex com prefixo 0x.
func SelectorHex(name string) string {
	return "0x" + Selector(name).Text(16)
}
