package presentation

import "strings"

// LicenseType é o conjunto fechado de licenças reconhecidas.
type LicenseType int

const (
	LicenseUnknown LicenseType = iota
	LicenseAllRights
	LicenseCreativeCommons
	LicenseOpenSource
	LicenseCustom
)

// Classes de cor dos badges de licença.
const (
	ColorRed    = "bg-red-100 text-red-800 dark:bg-red-900 dark:text-red-200"
	ColorGreen  = "bg-green-100 text-green-800 dark:bg-green-900 dark:text-green-200"
	ColorBlue   = "bg-blue-100 text-blue-800 dark:bg-blue-900 dark:text-blue-200"
	ColorPurple = "bg-purple-100 text-purple-800 dark:bg-purple-900 dark:text-purple-200"
	ColorGray   = "bg-gray-100 text-gray-800 dark:bg-gray-900 dark:text-gray-200"
)

func ParseLicenseType(s string) LicenseType {
	switch normalize(s) {
	case "all-rights":
		return LicenseAllRights
	case "creative-commons":
		return LicenseCreativeCommons
	case "open-source":
		return LicenseOpenSource
	case "custom":
		return LicenseCustom
	default:
		return LicenseUnknown
	}
}

func (l LicenseType) Color() string {
	switch l {
	case LicenseAllRights:
		return ColorRed
	case LicenseCreativeCommons:
		return ColorGreen
	case LicenseOpenSource:
		return ColorBlue
	case LicenseCustom:
		return ColorPurple
	default:
		return ColorGray
	}
}

// LicenseColor mapeia o tipo de licença para a classe de cor do badge.
func LicenseColor(licenseType string) string {
	return ParseLicenseType(licenseType).Color()
}

// LicenseLabel formata o rótulo do badge: apenas o primeiro hífen vira espaço
// e o texto vai para maiúsculas ("creative-commons" -> "CREATIVE COMMONS").
func LicenseLabel(licenseType string) string {
	if licenseType == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(strings.Replace(licenseType, "-", " ", 1))
}
