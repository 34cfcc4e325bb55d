// Package presentation converte os campos enumerados de um ativo em tokens de exibição
// (identificadores de ícone e classes de cor) consumidos pelo frontend.
//
// Cada conversão é total: entradas vazias ou desconhecidas caem no mesmo valor padrão.
package presentation

import "strings"

// MediaType é o conjunto fechado de tipos de mídia reconhecidos.
type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaMusic
	MediaVideo
	MediaDocument
	MediaArt
	MediaImage
)

// Identificadores de ícone (nomes do lucide usados pelo frontend).
const (
	IconMusic         = "music"
	IconPlay          = "play"
	IconFileText      = "file-text"
	IconPalette       = "palette"
	IconEye           = "eye"
	IconCheckCircle   = "check-circle"
	IconShield        = "shield"
	IconClock         = "clock"
	IconXCircle       = "x-circle"
	IconAlertTriangle = "alert-triangle"
)

// ParseMediaType normaliza o tipo informado, sem diferenciar maiúsculas.
func ParseMediaType(s string) MediaType {
	switch normalize(s) {
	case "music":
		return MediaMusic
	case "video":
		return MediaVideo
	case "document":
		return MediaDocument
	case "art":
		return MediaArt
	case "image":
		return MediaImage
	default:
		return MediaUnknown
	}
}

// Icon retorna o ícone do tipo de mídia.
func (m MediaType) Icon() string {
	switch m {
	case MediaMusic:
		return IconMusic
	case MediaVideo:
		return IconPlay
	case MediaDocument:
		return IconFileText
	case MediaArt, MediaImage:
		return IconPalette
	default:
		return IconEye
	}
}

// MediaIcon mapeia o tipo bruto do ativo para o identificador de ícone.
func MediaIcon(iptype string) string {
	return ParseMediaType(iptype).Icon()
}

// normalize só ignora maiúsculas; espaços ao redor tornam o valor desconhecido.
func normalize(s string) string {
	return strings.ToLower(s)
}
