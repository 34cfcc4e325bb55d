package presentation

// ProtectionStatus é o conjunto fechado de estados de proteção reconhecidos.
type ProtectionStatus int

const (
	ProtectionUnknown ProtectionStatus = iota
	ProtectionProtected
	ProtectionPatentProtected
	ProtectionPending
	ProtectionExpired
)

// Icon é um ícone acompanhado da sua classe de cor.
type Icon struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func ParseProtectionStatus(s string) ProtectionStatus {
	switch normalize(s) {
	case "protected":
		return ProtectionProtected
	case "patent protected", "patent-protected":
		return ProtectionPatentProtected
	case "pending":
		return ProtectionPending
	case "expired":
		return ProtectionExpired
	default:
		return ProtectionUnknown
	}
}

func (p ProtectionStatus) Icon() Icon {
	switch p {
	case ProtectionProtected:
		return Icon{Name: IconCheckCircle, Color: "text-green-500"}
	case ProtectionPatentProtected:
		return Icon{Name: IconShield, Color: "text-blue-500"}
	case ProtectionPending:
		return Icon{Name: IconClock, Color: "text-yellow-500"}
	case ProtectionExpired:
		return Icon{Name: IconXCircle, Color: "text-red-500"}
	default:
		return Icon{Name: IconAlertTriangle, Color: "text-gray-500"}
	}
}

// ProtectionIcon mapeia o status de proteção para o ícone exibido.
func ProtectionIcon(status string) Icon {
	return ParseProtectionStatus(status).Icon()
}
