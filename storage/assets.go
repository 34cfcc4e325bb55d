package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/addegbenga/mip-dapp/models"
)

// attributesJSON mapeia a coluna JSONB de atributos.
type attributesJSON []models.Attribute

func (a attributesJSON) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

func (a *attributesJSON) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("tipo inesperado para attributes: %T", src)
	}
	var out []models.Attribute
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("falha ao decodificar attributes: %w", err)
	}
	if len(out) == 0 {
		out = nil
	}
	*a = out
	return nil
}

type assetRow struct {
	ID                 string         `db:"id"`
	Collection         string         `db:"collection"`
	Position           int            `db:"position"`
	Slug               string         `db:"slug"`
	Title              string         `db:"title"`
	Description        string         `db:"description"`
	Type               string         `db:"type"`
	Author             string         `db:"author"`
	MediaURL           string         `db:"media_url"`
	LicenseType        string         `db:"license_type"`
	ProtectionStatus   string         `db:"protection_status"`
	ProtectionScope    string         `db:"protection_scope"`
	ProtectionDuration string         `db:"protection_duration"`
	IPVersion          string         `db:"ip_version"`
	Blockchain         string         `db:"blockchain"`
	RegistrationDate   string         `db:"registration_date"`
	CommercialUse      bool           `db:"commercial_use"`
	Modifications      bool           `db:"modifications"`
	Attribution        bool           `db:"attribution"`
	CreatorName        sql.NullString `db:"creator_name"`
	CreatorUsername    sql.NullString `db:"creator_username"`
	CreatorAvatar      sql.NullString `db:"creator_avatar"`
	CreatorVerified    sql.NullBool   `db:"creator_verified"`
	FileFormat         string         `db:"file_format"`
	FileSize           string         `db:"file_size"`
	FileDimensions     string         `db:"file_dimensions"`
	ExternalURL        string         `db:"external_url"`
	Attributes         attributesJSON `db:"attributes"`
	Tags               string         `db:"tags"`
	ContractAddress    string         `db:"contract_address"`
	TokenID            string         `db:"token_id"`
	MetadataURI        string         `db:"metadata_uri"`
}

func (r assetRow) toModel() models.AssetIP {
	a := models.AssetIP{
		ID:                 r.ID,
		Slug:               r.Slug,
		Title:              r.Title,
		Description:        r.Description,
		Type:               r.Type,
		Author:             r.Author,
		MediaURL:           r.MediaURL,
		LicenseType:        r.LicenseType,
		ProtectionStatus:   r.ProtectionStatus,
		ProtectionScope:    r.ProtectionScope,
		ProtectionDuration: r.ProtectionDuration,
		IPVersion:          r.IPVersion,
		Blockchain:         r.Blockchain,
		RegistrationDate:   r.RegistrationDate,
		CommercialUse:      r.CommercialUse,
		Modifications:      r.Modifications,
		Attribution:        r.Attribution,
		FileFormat:         r.FileFormat,
		FileSize:           r.FileSize,
		FileDimensions:     r.FileDimensions,
		ExternalURL:        r.ExternalURL,
		Attributes:         r.Attributes,
		Tags:               r.Tags,
		ContractAddress:    r.ContractAddress,
		TokenID:            r.TokenID,
		MetadataURI:        r.MetadataURI,
	}
	if r.CreatorName.Valid || r.CreatorUsername.Valid {
		a.Creator = &models.Creator{
			Name:     r.CreatorName.String,
			Username: r.CreatorUsername.String,
			Avatar:   r.CreatorAvatar.String,
			Verified: r.CreatorVerified.Bool,
		}
	}
	return a
}

func rowFromModel(c models.Collection, position int, a models.AssetIP) assetRow {
	r := assetRow{
		ID:                 a.ID,
		Collection:         string(c),
		Position:           position,
		Slug:               a.Slug,
		Title:              a.Title,
		Description:        a.Description,
		Type:               a.Type,
		Author:             a.Author,
		MediaURL:           a.MediaURL,
		LicenseType:        a.LicenseType,
		ProtectionStatus:   a.ProtectionStatus,
		ProtectionScope:    a.ProtectionScope,
		ProtectionDuration: a.ProtectionDuration,
		IPVersion:          a.IPVersion,
		Blockchain:         a.Blockchain,
		RegistrationDate:   a.RegistrationDate,
		CommercialUse:      a.CommercialUse,
		Modifications:      a.Modifications,
		Attribution:        a.Attribution,
		FileFormat:         a.FileFormat,
		FileSize:           a.FileSize,
		FileDimensions:     a.FileDimensions,
		ExternalURL:        a.ExternalURL,
		Attributes:         attributesJSON(a.Attributes),
		Tags:               a.Tags,
		ContractAddress:    a.ContractAddress,
		TokenID:            a.TokenID,
		MetadataURI:        a.MetadataURI,
	}
	if a.Creator != nil {
		r.CreatorName = sql.NullString{String: a.Creator.Name, Valid: true}
		r.CreatorUsername = sql.NullString{String: a.Creator.Username, Valid: true}
		r.CreatorAvatar = sql.NullString{String: a.Creator.Avatar, Valid: true}
		r.CreatorVerified = sql.NullBool{Bool: a.Creator.Verified, Valid: true}
	}
	return r
}

const assetColumns = `id, collection, position, slug, title, description, type, author, media_url,
	license_type, protection_status, protection_scope, protection_duration, ip_version, blockchain,
	registration_date, commercial_use, modifications, attribution, creator_name, creator_username,
	creator_avatar, creator_verified, file_format, file_size, file_dimensions, external_url,
	attributes, tags, contract_address, token_id, metadata_uri`

// ListAssets lista os ativos de uma coleção na ordem de posição.
func (d *DB) ListAssets(ctx context.Context, collection models.Collection) ([]models.AssetIP, error) {
	var rows []assetRow
	query := `SELECT ` + assetColumns + ` FROM assets WHERE collection = $1 ORDER BY position, id`
	if err := d.SelectContext(ctx, &rows, query, string(collection)); err != nil {
		return nil, fmt.Errorf("falha ao listar ativos: %w", err)
	}
	out := make([]models.AssetIP, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// GetAssetBySlug busca um ativo pelo slug dentro de uma coleção.
func (d *DB) GetAssetBySlug(ctx context.Context, collection models.Collection, slug string) (models.AssetIP, bool, error) {
	var r assetRow
	query := `SELECT ` + assetColumns + ` FROM assets WHERE collection = $1 AND slug = $2`
	err := d.GetContext(ctx, &r, query, string(collection), slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AssetIP{}, false, nil
	}
	if err != nil {
		return models.AssetIP{}, false, fmt.Errorf("falha ao buscar ativo: %w", err)
	}
	return r.toModel(), true, nil
}

// SaveAsset insere ou atualiza um ativo (ON CONFLICT no par coleção/slug).
func (d *DB) SaveAsset(ctx context.Context, collection models.Collection, position int, asset models.AssetIP) error {
	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}
	query := `INSERT INTO assets (` + assetColumns + `) VALUES (
		:id, :collection, :position, :slug, :title, :description, :type, :author, :media_url,
		:license_type, :protection_status, :protection_scope, :protection_duration, :ip_version, :blockchain,
		:registration_date, :commercial_use, :modifications, :attribution, :creator_name, :creator_username,
		:creator_avatar, :creator_verified, :file_format, :file_size, :file_dimensions, :external_url,
		:attributes, :tags, :contract_address, :token_id, :metadata_uri)
	ON CONFLICT (collection, slug) DO UPDATE SET
		position = EXCLUDED.position, title = EXCLUDED.title, description = EXCLUDED.description,
		type = EXCLUDED.type, author = EXCLUDED.author, media_url = EXCLUDED.media_url,
		license_type = EXCLUDED.license_type, protection_status = EXCLUDED.protection_status,
		protection_scope = EXCLUDED.protection_scope, protection_duration = EXCLUDED.protection_duration,
		ip_version = EXCLUDED.ip_version, blockchain = EXCLUDED.blockchain,
		registration_date = EXCLUDED.registration_date, commercial_use = EXCLUDED.commercial_use,
		modifications = EXCLUDED.modifications, attribution = EXCLUDED.attribution,
		creator_name = EXCLUDED.creator_name, creator_username = EXCLUDED.creator_username,
		creator_avatar = EXCLUDED.creator_avatar, creator_verified = EXCLUDED.creator_verified,
		file_format = EXCLUDED.file_format, file_size = EXCLUDED.file_size,
		file_dimensions = EXCLUDED.file_dimensions, external_url = EXCLUDED.external_url,
		attributes = EXCLUDED.attributes, tags = EXCLUDED.tags,
		contract_address = EXCLUDED.contract_address, token_id = EXCLUDED.token_id,
		metadata_uri = EXCLUDED.metadata_uri`
	if _, err := d.NamedExecContext(ctx, query, rowFromModel(collection, position, asset)); err != nil {
		return fmt.Errorf("falha ao salvar ativo: %w", err)
	}
	return nil
}
