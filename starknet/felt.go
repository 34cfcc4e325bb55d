// Package starknet implementa a codificação de calldata Cairo usada pelo contrato MIP
// e um cliente JSON-RPC mínimo para leituras e eventos.
package starknet

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

var (
	ErrFeltOverflow = errors.New("valor fora do campo Starknet")
	ErrInvalidFelt  = errors.New("felt inválido")
)

var (
	prime    = fp.Modulus()
	two128   = new(big.Int).Lsh(big.NewInt(1), 128)
	mask128  = new(big.Int).Sub(two128, big.NewInt(1))
	maxU256  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	zeroFelt = big.NewInt(0)
)

// Prime retorna uma cópia do primo do campo Starknet.
func Prime() *big.Int {
	return new(big.Int).Set(prime)
}

// parseInt aceita hex com prefixo 0x ou decimal.
func parseInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: vazio", ErrInvalidFelt)
	}
	v := new(big.Int)
	var ok bool
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if len(s) == 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFelt, s)
		}
		_, ok = v.SetString(s[2:], 16)
	} else {
		_, ok = v.SetString(s, 10)
	}
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFelt, s)
	}
	return v, nil
}

// ParseFelt interpreta um felt252 (hex 0x... ou decimal) e garante que está no campo.
func ParseFelt(s string) (*big.Int, error) {
	v, err := parseInt(s)
	if err != nil {
		return nil, err
	}
	if v.Cmp(prime) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrFeltOverflow, s)
	}
	return v, nil
}

// ParseFelts interpreta uma lista de felts vinda do nó.
func ParseFelts(in []string) ([]*big.Int, error) {
	out := make([]*big.Int, 0, len(in))
	for _, s := range in {
		v, err := ParseFelt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FeltHex formata um felt em hex minúsculo com prefixo 0x.
func FeltHex(v *big.Int) string {
	return "0x" + v.Text(16)
}

// FeltsHex formata uma lista de felts.
func FeltsHex(in []*big.Int) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = FeltHex(v)
	}
	return out
}

// NormalizeAddress devolve o endereço de contrato em hex canônico.
func NormalizeAddress(s string) (string, error) {
	v, err := ParseFelt(s)
	if err != nil {
		return "", err
	}
	return FeltHex(v), nil
}

// IsZero indica se o felt é zero (endereço nulo em eventos de mint).
func IsZero(v *big.Int) bool {
	return v.Cmp(zeroFelt) == 0
}
