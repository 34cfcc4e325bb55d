package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/addegbenga/mip-dapp/models"
	"github.com/addegbenga/mip-dapp/presentation"
)

const (
	ViewStateFound    = "found"
	ViewStateNotFound = "not_found"

	unknown         = "Unknown"
	unknownCreator  = "Unknown Creator"
	defaultVersion  = "1.0"
	defaultAvatar   = "/placeholder.svg?height=48&width=48"
	notFoundTitle   = "Asset Not Found"
	notFoundMessage = "The asset you're looking for doesn't exist or has been removed."
)

// Action é uma ação disponível na página do ativo.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Presentation traz os ícones e cores já resolvidos para o ativo.
type Presentation struct {
	MediaIcon      string            `json:"media_icon"`
	LicenseColor   string            `json:"license_color"`
	LicenseLabel   string            `json:"license_label"`
	ProtectionIcon presentation.Icon `json:"protection_icon"`
}

// Permissions resume os termos de licença em texto.
type Permissions struct {
	CommercialUse string `json:"commercial_use"`
	Modifications string `json:"modifications"`
	Attribution   string `json:"attribution"`
}

// Details são os campos exibidos com os valores substitutos aplicados.
type Details struct {
	Type               string      `json:"type"`
	Version            string      `json:"version"`
	Network            string      `json:"network"`
	RegistrationDate   string      `json:"registration_date"`
	CreatorName        string      `json:"creator_name"`
	CreatorLink        string      `json:"creator_link"`
	CreatorAvatar      string      `json:"creator_avatar"`
	CreatorVerified    bool        `json:"creator_verified"`
	ProtectionStatus   string      `json:"protection_status"`
	ProtectionScope    string      `json:"protection_scope"`
	ProtectionDuration string      `json:"protection_duration"`
	ProtectionSummary  string      `json:"protection_summary"`
	Permissions        Permissions `json:"permissions"`
	ContractAddress    string      `json:"contract_address"`
	TokenID            string      `json:"token_id"`
	MetadataURI        string      `json:"metadata_uri"`
	Tags               []string    `json:"tags"`
}

// AssetView é o modelo da página de detalhe: encontrado ou não encontrado.
type AssetView struct {
	State        string          `json:"state"`
	Asset        *models.AssetIP `json:"asset,omitempty"`
	Owner        bool            `json:"owner"`
	Presentation *Presentation   `json:"presentation,omitempty"`
	Details      *Details        `json:"details,omitempty"`
	Title        string          `json:"title,omitempty"`
	Message      string          `json:"message,omitempty"`
	Actions      []Action        `json:"actions"`
}

// Found indica se o ativo foi localizado.
func (v AssetView) Found() bool { return v.State == ViewStateFound }

// ViewOptions configura os links absolutos e valores padrão da página.
type ViewOptions struct {
	PublicBaseURL   string
	MetadataBaseURL string
	ContractAddress string
	ExplorerURL     string
}

// AssetViewService compõe a página de detalhe de um ativo.
type AssetViewService struct {
	Resolver *AssetResolver
	Options  ViewOptions
}

func NewAssetViewService(resolver *AssetResolver, opts ViewOptions) *AssetViewService {
	return &AssetViewService{Resolver: resolver, Options: opts}
}

// View resolve o slug e monta a página para a identidade informada.
func (s *AssetViewService) View(ctx context.Context, slug string, id Identity) (AssetView, error) {
	asset, found, err := s.Resolver.Resolve(ctx, slug)
	if err != nil {
		return AssetView{}, err
	}
	if !found {
		return NotFoundView(), nil
	}
	if id == nil {
		id = DefaultIdentity
	}
	owner := id.Owns(asset)
	return AssetView{
		State: ViewStateFound,
		Asset: &asset,
		Owner: owner,
		Presentation: &Presentation{
			MediaIcon:      presentation.MediaIcon(asset.Type),
			LicenseColor:   presentation.LicenseColor(asset.LicenseType),
			LicenseLabel:   presentation.LicenseLabel(asset.LicenseType),
			ProtectionIcon: presentation.ProtectionIcon(asset.ProtectionStatus),
		},
		Details: s.details(asset),
		Actions: s.actions(asset, owner),
	}, nil
}

// NotFoundView é a página exibida quando nenhum ativo corresponde ao slug.
func NotFoundView() AssetView {
	return AssetView{
		State:   ViewStateNotFound,
		Title:   notFoundTitle,
		Message: notFoundMessage,
		Actions: []Action{{ID: "home", Label: "Back to Home", Href: "/"}},
	}
}

func (s *AssetViewService) details(a models.AssetIP) *Details {
	d := &Details{
		Type:               or(a.Type, unknown),
		Version:            or(a.IPVersion, defaultVersion),
		Network:            or(a.Blockchain, unknown),
		RegistrationDate:   or(a.RegistrationDate, unknown),
		CreatorName:        unknownCreator,
		CreatorLink:        "/creator/unknown",
		CreatorAvatar:      defaultAvatar,
		ProtectionStatus:   or(a.ProtectionStatus, unknown),
		ProtectionScope:    or(a.ProtectionScope, "Unknown Scope"),
		ProtectionDuration: or(a.ProtectionDuration, "Unknown Duration"),
		ProtectionSummary: "Protected under " + strings.ToLower(or(a.ProtectionScope, "unknown")) +
			" copyright law for " + or(a.ProtectionDuration, "unknown duration"),
		Permissions: Permissions{
			CommercialUse: allowed(a.CommercialUse),
			Modifications: allowed(a.Modifications),
			Attribution:   required(a.Attribution),
		},
		ContractAddress: or(a.ContractAddress, s.Options.ContractAddress),
		TokenID:         or(a.TokenID, a.ID),
		MetadataURI:     or(a.MetadataURI, strings.TrimRight(s.Options.MetadataBaseURL, "/")+"/"+a.Slug),
		Tags:            SplitTags(a.Tags),
	}
	if c := a.Creator; c != nil {
		d.CreatorName = or(c.Name, unknownCreator)
		d.CreatorLink = creatorLink(c.Username)
		d.CreatorAvatar = or(c.Avatar, defaultAvatar)
		d.CreatorVerified = c.Verified
	}
	return d
}

func (s *AssetViewService) actions(a models.AssetIP, owner bool) []Action {
	out := []Action{{ID: "share", Label: "Share", Href: s.shareURL(a.Slug)}}
	if owner {
		out = append(out, Action{ID: "transfer", Label: "Transfer", Href: "/transfer?asset=" + url.QueryEscape(a.Slug)})
	} else {
		out = append(out,
			Action{ID: "license_terms", Label: "View License Terms", Href: "/asset/" + url.PathEscape(a.Slug) + "#license"},
			Action{ID: "license", Label: "License Asset", Href: "/license?asset=" + url.QueryEscape(a.Slug)},
		)
	}
	username := ""
	if a.Creator != nil {
		username = a.Creator.Username
	}
	out = append(out, Action{ID: "creator", Label: "View Profile", Href: creatorLink(username)})
	if s.Options.ExplorerURL != "" {
		if addr := or(a.ContractAddress, s.Options.ContractAddress); addr != "" {
			out = append(out, Action{ID: "explorer", Label: "View on Explorer", Href: strings.TrimRight(s.Options.ExplorerURL, "/") + "/contract/" + addr})
		}
	}
	if a.ExternalURL != "" {
		out = append(out, Action{ID: "external", Label: "View External", Href: a.ExternalURL})
	}
	return out
}

func (s *AssetViewService) shareURL(slug string) string {
	return strings.TrimRight(s.Options.PublicBaseURL, "/") + "/asset/" + url.PathEscape(slug)
}

// SplitTags separa a lista de tags armazenada como "a, b, c".
func SplitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	return strings.Split(tags, ", ")
}

func creatorLink(username string) string {
	return "/creator/" + url.PathEscape(or(username, "unknown"))
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func allowed(b bool) string {
	if b {
		return "Allowed"
	}
	return "Not Allowed"
}

func required(b bool) string {
	if b {
		return "Required"
	}
	return "Not Required"
}
