// Package abi publica o ABI do contrato MIP (ERC-721 em Cairo) e oferece consultas
// tipadas sobre ele.
//
// O JSON embutido é consumido por clientes externos como esquema indexado por nome,
// por isso é servido sem nenhuma transformação. Nomes de interfaces, funções e
// membros precisam bater exatamente com o contrato implantado.
package abi

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

//go:embed mip_abi.json
var Raw []byte

// Tipos de entrada do ABI.
const (
	EntryImpl        = "impl"
	EntryStruct      = "struct"
	EntryEnum        = "enum"
	EntryInterface   = "interface"
	EntryFunction    = "function"
	EntryConstructor = "constructor"
	EntryEvent       = "event"
)

// Tipos Cairo usados pelo contrato.
const (
	TypeFelt            = "core::felt252"
	TypeU32             = "core::integer::u32"
	TypeU128            = "core::integer::u128"
	TypeU256            = "core::integer::u256"
	TypeBool            = "core::bool"
	TypeByteArray       = "core::byte_array::ByteArray"
	TypeContractAddress = "core::starknet::contract_address::ContractAddress"
	TypeFeltSpan        = "core::array::Span::<core::felt252>"
)

const (
	MutabilityView     = "view"
	MutabilityExternal = "external"
)

var (
	ErrFunctionNotFound = errors.New("função não encontrada no ABI")
	ErrEventNotFound    = errors.New("evento não encontrado no ABI")
)

// Param é uma entrada ou saída de função.
type Param struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// Member é um campo de struct ou de evento; Kind só aparece em eventos (key/data).
type Member struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Kind string `json:"kind,omitempty"`
}

// Variant é uma variante de enum; Kind só aparece em eventos (nested/flat).
type Variant struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Kind string `json:"kind,omitempty"`
}

// Entry é uma entrada de nível superior do ABI. Só os campos pertinentes ao Type
// vêm preenchidos.
type Entry struct {
	Type          string     `json:"type"`
	Name          string     `json:"name"`
	InterfaceName string     `json:"interface_name,omitempty"`
	Members       []Member   `json:"members,omitempty"`
	Variants      []Variant  `json:"variants,omitempty"`
	Items         []Function `json:"items,omitempty"`
	Inputs        []Param    `json:"inputs,omitempty"`
	Kind          string     `json:"kind,omitempty"`
}

// Function descreve uma função de interface.
type Function struct {
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	Inputs          []Param `json:"inputs"`
	Outputs         []Param `json:"outputs"`
	StateMutability string  `json:"state_mutability"`
}

// IsView indica se a função só lê estado.
func (f Function) IsView() bool { return f.StateMutability == MutabilityView }

// Descriptor é o ABI decodificado, com índices por nome.
type Descriptor struct {
	Entries []Entry

	interfaces map[string]Entry
	structs    map[string]Entry
	enums      map[string]Entry
	events     map[string]Entry
}

// Parse decodifica um ABI no formato Cairo.
func Parse(raw []byte) (*Descriptor, error) {
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("falha ao decodificar ABI: %w", err)
	}
	d := &Descriptor{
		Entries:    entries,
		interfaces: map[string]Entry{},
		structs:    map[string]Entry{},
		enums:      map[string]Entry{},
		events:     map[string]Entry{},
	}
	for _, e := range entries {
		switch e.Type {
		case EntryInterface:
			d.interfaces[e.Name] = e
		case EntryStruct:
			d.structs[e.Name] = e
		case EntryEnum:
			d.enums[e.Name] = e
		case EntryEvent:
			d.events[e.Name] = e
		case EntryImpl, EntryConstructor, EntryFunction:
		default:
			return nil, fmt.Errorf("tipo de entrada desconhecido no ABI: %q", e.Type)
		}
	}
	return d, nil
}

// MIP retorna o descritor do ABI embutido.
func MIP() (*Descriptor, error) {
	return Parse(Raw)
}

// Interface retorna a interface pelo nome completo.
func (d *Descriptor) Interface(name string) (Entry, bool) {
	e, ok := d.interfaces[name]
	return e, ok
}

// Struct retorna a definição de struct pelo nome completo.
func (d *Descriptor) Struct(name string) (Entry, bool) {
	e, ok := d.structs[name]
	return e, ok
}

// Enum retorna a definição de enum pelo nome completo.
func (d *Descriptor) Enum(name string) (Entry, bool) {
	e, ok := d.enums[name]
	return e, ok
}

// Event retorna a definição de evento pelo nome completo.
func (d *Descriptor) Event(name string) (Entry, bool) {
	e, ok := d.events[name]
	return e, ok
}

// Function procura uma função pelo nome em todas as interfaces, na ordem do ABI.
func (d *Descriptor) Function(name string) (Function, string, error) {
	for _, e := range d.Entries {
		if e.Type != EntryInterface {
			continue
		}
		for _, fn := range e.Items {
			if fn.Name == name {
				return fn, e.Name, nil
			}
		}
	}
	return Function{}, "", fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
}

// Constructor retorna as entradas do construtor.
func (d *Descriptor) Constructor() ([]Param, bool) {
	for _, e := range d.Entries {
		if e.Type == EntryConstructor {
			return e.Inputs, true
		}
	}
	return nil, false
}

// Functions lista todas as funções das interfaces, na ordem do ABI.
func (d *Descriptor) Functions() []Function {
	var out []Function
	for _, e := range d.Entries {
		if e.Type == EntryInterface {
			out = append(out, e.Items...)
		}
	}
	return out
}
