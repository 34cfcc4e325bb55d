package models

// Collection identifica uma das coleções de origem dos ativos.
type Collection string

const (
	CollectionTimeline  Collection = "timeline"
	CollectionPortfolio Collection = "portfolio"
)

// ResolutionOrder é a ordem em que as coleções são consultadas ao resolver um slug.
var ResolutionOrder = []Collection{CollectionTimeline, CollectionPortfolio}

// Valid indica se a coleção é conhecida.
func (c Collection) Valid() bool {
	return c == CollectionTimeline || c == CollectionPortfolio
}

// Creator representa o autor de um ativo registrado.
type Creator struct {
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username" yaml:"username"`
	Avatar   string `json:"avatar,omitempty" yaml:"avatar"`
	Verified bool   `json:"verified" yaml:"verified"`
}

// Attribute é um par trait/valor dos metadados do token.
type Attribute struct {
	TraitType string `json:"trait_type" yaml:"trait_type"`
	Value     string `json:"value" yaml:"value"`
}

// AssetIP representa um ativo de propriedade intelectual registrado.
type AssetIP struct {
	ID                 string      `json:"id" yaml:"id"`
	Slug               string      `json:"slug" yaml:"slug"` // chave única de busca
	Title              string      `json:"title" yaml:"title"`
	Description        string      `json:"description" yaml:"description"`
	Type               string      `json:"type" yaml:"type"` // music, video, document, art, image, other
	Author             string      `json:"author,omitempty" yaml:"author"`
	MediaURL           string      `json:"media_url" yaml:"media_url"`
	LicenseType        string      `json:"license_type" yaml:"license_type"`           // all-rights, creative-commons, open-source, custom
	ProtectionStatus   string      `json:"protection_status" yaml:"protection_status"` // protected, patent protected, pending, expired
	ProtectionScope    string      `json:"protection_scope" yaml:"protection_scope"`
	ProtectionDuration string      `json:"protection_duration" yaml:"protection_duration"`
	IPVersion          string      `json:"ip_version" yaml:"ip_version"`
	Blockchain         string      `json:"blockchain" yaml:"blockchain"`
	RegistrationDate   string      `json:"registration_date" yaml:"registration_date"`
	CommercialUse      bool        `json:"commercial_use" yaml:"commercial_use"`
	Modifications      bool        `json:"modifications" yaml:"modifications"`
	Attribution        bool        `json:"attribution" yaml:"attribution"`
	Creator            *Creator    `json:"creator,omitempty" yaml:"creator"`
	FileFormat         string      `json:"file_format,omitempty" yaml:"file_format"`
	FileSize           string      `json:"file_size,omitempty" yaml:"file_size"`
	FileDimensions     string      `json:"file_dimensions,omitempty" yaml:"file_dimensions"`
	ExternalURL        string      `json:"external_url,omitempty" yaml:"external_url"`
	Attributes         []Attribute `json:"attributes,omitempty" yaml:"attributes"`
	Tags               string      `json:"tags,omitempty" yaml:"tags"` // separadas por ", "
	ContractAddress    string      `json:"contract_address,omitempty" yaml:"contract_address"`
	TokenID            string      `json:"token_id,omitempty" yaml:"token_id"`
	MetadataURI        string      `json:"metadata_uri,omitempty" yaml:"metadata_uri"`
}
