package starknet

import (
	"fmt"
	"math/big"
)

const bytesPerWord = 31

// ParseU256 interpreta um u256 em hex ou decimal.
func ParseU256(s string) (*big.Int, error) {
	v, err := parseInt(s)
	if err != nil {
		return nil, err
	}
	if v.Cmp(maxU256) > 0 {
		return nil, fmt.Errorf("u256 fora do intervalo: %s", s)
	}
	return v, nil
}

// SplitU256 separa um u256 nas metades low e high de 128 bits, nessa ordem.
func SplitU256(v *big.Int) (low, high *big.Int) {
	low = new(big.Int).And(v, mask128)
	high = new(big.Int).Rsh(v, 128)
	return low, high
}

// JoinU256 reconstrói um u256 a partir de low e high.
func JoinU256(low, high *big.Int) (*big.Int, error) {
	if low.Cmp(two128) >= 0 || high.Cmp(two128) >= 0 {
		return nil, fmt.Errorf("metade de u256 maior que 128 bits")
	}
	v := new(big.Int).Lsh(high, 128)
	return v.Or(v, low), nil
}

// EncodeByteArray serializa uma string como core::byte_array::ByteArray:
// [n_palavras, palavra_1..palavra_n, pending_word, pending_word_len], palavras de 31 bytes.
func EncodeByteArray(s string) []*big.Int {
	b := []byte(s)
	full := len(b) / bytesPerWord
	out := make([]*big.Int, 0, full+3)
	out = append(out, big.NewInt(int64(full)))
	for i := 0; i < full; i++ {
		out = append(out, new(big.Int).SetBytes(b[i*bytesPerWord:(i+1)*bytesPerWord]))
	}
	pending := b[full*bytesPerWord:]
	out = append(out, new(big.Int).SetBytes(pending), big.NewInt(int64(len(pending))))
	return out
}

// DecodeByteArray lê um ByteArray a partir de felts e retorna a string e quantos felts consumiu.
func DecodeByteArray(felts []*big.Int) (string, int, error) {
	if len(felts) < 3 {
		return "", 0, fmt.Errorf("ByteArray truncado: %d felts", len(felts))
	}
	// o número de palavras nunca pode exceder os felts disponíveis
	if felts[0].Sign() < 0 || felts[0].Cmp(big.NewInt(int64(len(felts)-3))) > 0 {
		return "", 0, fmt.Errorf("ByteArray truncado: %s palavras em %d felts", felts[0], len(felts))
	}
	n := int(felts[0].Int64())
	buf := make([]byte, 0, n*bytesPerWord+bytesPerWord)
	for i := 1; i <= n; i++ {
		word, err := wordBytes(felts[i], bytesPerWord)
		if err != nil {
			return "", 0, err
		}
		buf = append(buf, word...)
	}
	pendingLen := felts[n+2]
	if !pendingLen.IsInt64() || pendingLen.Int64() < 0 || pendingLen.Int64() >= bytesPerWord {
		return "", 0, fmt.Errorf("pending_word_len inválido: %s", pendingLen)
	}
	pending, err := wordBytes(felts[n+1], int(pendingLen.Int64()))
	if err != nil {
		return "", 0, err
	}
	buf = append(buf, pending...)
	return string(buf), n + 3, nil
}

// wordBytes devolve v em big-endian com exatamente size bytes.
func wordBytes(v *big.Int, size int) ([]byte, error) {
	if v.Sign() < 0 || (v.BitLen()+7)/8 > size {
		return nil, fmt.Errorf("palavra de ByteArray maior que %d bytes", size)
	}
	out := make([]byte, size)
	return v.FillBytes(out), nil
}

// EncodeBool serializa core::bool (False = 0, True = 1).
func EncodeBool(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}
