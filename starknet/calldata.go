package starknet

import (
	"fmt"
	"math/big"

	"github.com/addegbenga/mip-dapp/abi"
)

// Call é uma chamada pronta para ser assinada pela carteira do usuário.
type Call struct {
	ContractAddress    string   `json:"contract_address"`
	Entrypoint         string   `json:"entrypoint"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

// EncodeArgs serializa argumentos conforme os tipos de entrada do ABI.
// Tipos aceitos por argumento:
//   - felt252 / ContractAddress: string (hex ou decimal) ou *big.Int
//   - u256: string ou *big.Int
//   - ByteArray: string
//   - bool: bool
//   - Span<felt252>: []string
func EncodeArgs(params []abi.Param, args []interface{}) ([]*big.Int, error) {
	if len(params) != len(args) {
		return nil, fmt.Errorf("número de argumentos inválido: esperado %d, recebido %d", len(params), len(args))
	}
	var out []*big.Int
	for i, p := range params {
		enc, err := encodeArg(p.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("argumento %q: %w", p.Name, err)
		}
		out = append(out, enc...)
	}
	return out, nil
}

func encodeArg(typ string, arg interface{}) ([]*big.Int, error) {
	switch typ {
	case abi.TypeFelt, abi.TypeContractAddress:
		v, err := feltArg(arg)
		if err != nil {
			return nil, err
		}
		return []*big.Int{v}, nil
	case abi.TypeU256:
		var v *big.Int
		switch a := arg.(type) {
		case string:
			var err error
			if v, err = ParseU256(a); err != nil {
				return nil, err
			}
		case *big.Int:
			if a.Sign() < 0 || a.Cmp(maxU256) > 0 {
				return nil, fmt.Errorf("u256 fora do intervalo")
			}
			v = a
		default:
			return nil, fmt.Errorf("tipo %T incompatível com u256", arg)
		}
		low, high := SplitU256(v)
		return []*big.Int{low, high}, nil
	case abi.TypeByteArray:
		s, ok := arg.(string)
		if !ok {
			return nil, fmt.Errorf("tipo %T incompatível com ByteArray", arg)
		}
		return EncodeByteArray(s), nil
	case abi.TypeBool:
		b, ok := arg.(bool)
		if !ok {
			return nil, fmt.Errorf("tipo %T incompatível com bool", arg)
		}
		return []*big.Int{EncodeBool(b)}, nil
	case abi.TypeFeltSpan:
		items, ok := arg.([]string)
		if !ok {
			return nil, fmt.Errorf("tipo %T incompatível com Span<felt252>", arg)
		}
		out := []*big.Int{big.NewInt(int64(len(items)))}
		for _, it := range items {
			v, err := ParseFelt(it)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("tipo Cairo não suportado: %s", typ)
	}
}

func feltArg(arg interface{}) (*big.Int, error) {
	switch a := arg.(type) {
	case string:
		return ParseFelt(a)
	case *big.Int:
		if a.Sign() < 0 || a.Cmp(prime) >= 0 {
			return nil, ErrFeltOverflow
		}
		return a, nil
	default:
		return nil, fmt.Errorf("tipo %T incompatível com felt", arg)
	}
}

// DecodeOutputs converte o retorno de uma chamada conforme os tipos de saída do ABI.
// u256 vira *big.Int, ByteArray vira string, bool vira bool e felts viram hex.
func DecodeOutputs(params []abi.Param, felts []*big.Int) ([]interface{}, error) {
	out := make([]interface{}, 0, len(params))
	pos := 0
	need := func(n int) error {
		if len(felts)-pos < n {
			return fmt.Errorf("retorno truncado: faltam %d felts", n-(len(felts)-pos))
		}
		return nil
	}
	for _, p := range params {
		switch p.Type {
		case abi.TypeFelt, abi.TypeContractAddress:
			if err := need(1); err != nil {
				return nil, err
			}
			out = append(out, FeltHex(felts[pos]))
			pos++
		case abi.TypeU256:
			if err := need(2); err != nil {
				return nil, err
			}
			v, err := JoinU256(felts[pos], felts[pos+1])
			if err != nil {
				return nil, err
			}
			out = append(out, v)
			pos += 2
		case abi.TypeBool:
			if err := need(1); err != nil {
				return nil, err
			}
			out = append(out, felts[pos].Sign() != 0)
			pos++
		case abi.TypeByteArray:
			s, n, err := DecodeByteArray(felts[pos:])
			if err != nil {
				return nil, err
			}
			out = append(out, s)
			pos += n
		default:
			return nil, fmt.Errorf("tipo Cairo não suportado: %s", p.Type)
		}
	}
	return out, nil
}

// PrepareCall monta uma chamada de função do ABI com os argumentos serializados.
func PrepareCall(d *abi.Descriptor, contract, function string, args ...interface{}) (Call, error) {
	addr, err := NormalizeAddress(contract)
	if err != nil {
		return Call{}, fmt.Errorf("endereço de contrato inválido: %w", err)
	}
	fn, _, err := d.Function(function)
	if err != nil {
		return Call{}, err
	}
	calldata, err := EncodeArgs(fn.Inputs, args)
	if err != nil {
		return Call{}, fmt.Errorf("falha ao codificar %s: %w", function, err)
	}
	return Call{
		ContractAddress:    addr,
		Entrypoint:         fn.Name,
		EntryPointSelector: abi.SelectorHex(fn.Name),
		Calldata:           FeltsHex(calldata),
	}, nil
}
