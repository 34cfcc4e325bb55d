package abi

import (
	"fmt"
	"math/big"
	"strings"
)

// Tipos de evento e de variante.
const (
	EventKindStruct = "struct"
	EventKindEnum   = "enum"
	VariantNested   = "nested"
	VariantFlat     = "flat"
	MemberKey       = "key"
	MemberData      = "data"
)

// MIPEvent é o enum raiz de eventos do contrato MIP.
const MIPEvent = "contracts::MIP::MIP::Event"

// EventPath descreve como um evento folha (struct) aparece nas keys emitidas:
// um seletor por variante nested; variantes flat não contribuem com seletor.
type EventPath struct {
	Struct    string     // nome completo do struct do evento
	Variants  []string   // nomes das variantes percorridas a partir da raiz
	Selectors []*big.Int // prefixo das keys
	Members   []Member
}

// EventPaths percorre o enum raiz e devolve os caminhos de todos os eventos folha.
func (d *Descriptor) EventPaths(root string) ([]EventPath, error) {
	e, ok := d.events[root]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, root)
	}
	var out []EventPath
	if err := d.walkEvent(e, nil, nil, &out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Descriptor) walkEvent(e Entry, variants []string, selectors []*big.Int, out *[]EventPath, depth int) error {
	if depth > 8 {
		return fmt.Errorf("aninhamento de eventos profundo demais em %s", e.Name)
	}
	switch e.Kind {
	case EventKindStruct:
		*out = append(*out, EventPath{
			Struct:    e.Name,
			Variants:  append([]string(nil), variants...),
			Selectors: append([]*big.Int(nil), selectors...),
			Members:   e.Members,
		})
		return nil
	case EventKindEnum:
		for _, v := range e.Variants {
			inner, ok := d.events[v.Type]
			if !ok {
				return fmt.Errorf("%w: %s", ErrEventNotFound, v.Type)
			}
			nextSel := selectors
			switch v.Kind {
			case VariantNested:
				nextSel = append(append([]*big.Int(nil), selectors...), Selector(v.Name))
			case VariantFlat:
			default:
				return fmt.Errorf("tipo de variante de evento desconhecido: %q", v.Kind)
			}
			nextVar := append(append([]string(nil), variants...), v.Name)
			if err := d.walkEvent(inner, nextVar, nextSel, out, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("tipo de evento desconhecido em %s: %q", e.Name, e.Kind)
	}
}

// EventPathFor procura o caminho do evento folha cujo struct termina com o nome informado
// (ex.: "ERC721Component::Transfer").
func (d *Descriptor) EventPathFor(root, structSuffix string) (EventPath, error) {
	paths, err := d.EventPaths(root)
	if err != nil {
		return EventPath{}, err
	}
	for _, p := range paths {
		if strings.HasSuffix(p.Struct, "::"+structSuffix) || p.Struct == structSuffix {
			return p, nil
		}
	}
	return EventPath{}, fmt.Errorf("%w: %s", ErrEventNotFound, structSuffix)
}
