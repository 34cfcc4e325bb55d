package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/addegbenga/mip-dapp/models"
)

// SaveToken cria ou atualiza o registro do token (ON CONFLICT no par contrato/token_id).
// minted_by só é preenchido na criação ou quando ainda está vazio.
func (d *DB) SaveToken(ctx context.Context, token models.Token) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	now := time.Now()
	token.CreatedAt, token.UpdatedAt = now, now
	token.ContractAddress = strings.ToLower(token.ContractAddress)
	query := `INSERT INTO tokens (id, token_id, contract_address, owner_address, minted_by, transaction_hash, block_number, created_at, updated_at)
		VALUES (:id, :token_id, :contract_address, :owner_address, :minted_by, :transaction_hash, :block_number, :created_at, :updated_at)
		ON CONFLICT (contract_address, token_id) DO UPDATE SET
			owner_address = EXCLUDED.owner_address,
			minted_by = CASE WHEN tokens.minted_by = '' THEN EXCLUDED.minted_by ELSE tokens.minted_by END,
			transaction_hash = EXCLUDED.transaction_hash,
			block_number = EXCLUDED.block_number,
			updated_at = EXCLUDED.updated_at`
	if _, err := d.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("falha ao salvar token: %w", err)
	}
	return nil
}

func (d *DB) GetToken(ctx context.Context, contractAddress, tokenID string) (models.Token, bool, error) {
	var t models.Token
	err := d.GetContext(ctx, &t, `SELECT * FROM tokens WHERE contract_address = $1 AND token_id = $2`,
		strings.ToLower(contractAddress), tokenID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Token{}, false, nil
	}
	if err != nil {
		return models.Token{}, false, fmt.Errorf("falha ao buscar token: %w", err)
	}
	return t, true, nil
}

func (d *DB) GetTokensByOwner(ctx context.Context, ownerAddress string) ([]models.Token, error) {
	var out []models.Token
	if err := d.SelectContext(ctx, &out, `SELECT * FROM tokens WHERE lower(owner_address) = lower($1) ORDER BY token_id`, ownerAddress); err != nil {
		return nil, fmt.Errorf("falha ao listar tokens: %w", err)
	}
	return out, nil
}

func (d *DB) GetCursor(ctx context.Context, name string) (uint64, bool, error) {
	var block uint64
	err := d.GetContext(ctx, &block, `SELECT block_number FROM listener_cursors WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("falha ao ler cursor: %w", err)
	}
	return block, true, nil
}

func (d *DB) SaveCursor(ctx context.Context, name string, block uint64) error {
	_, err := d.ExecContext(ctx, `INSERT INTO listener_cursors (name, block_number) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET block_number = EXCLUDED.block_number`, name, block)
	if err != nil {
		return fmt.Errorf("falha ao salvar cursor: %w", err)
	}
	return nil
}
