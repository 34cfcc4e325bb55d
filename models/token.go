package models

import "time"

// Token representa o estado conhecido de um token MIP cunhado na Starknet.
// A fonte de verdade é a blockchain; o listener mantém este registro sincronizado.
type Token struct {
	ID              string    `json:"id" db:"id"`
	TokenID         string    `json:"token_id" db:"token_id"`                 // u256 em decimal
	ContractAddress string    `json:"contract_address" db:"contract_address"` // felt em hex
	OwnerAddress    string    `json:"owner_address" db:"owner_address"`
	MintedBy        string    `json:"minted_by,omitempty" db:"minted_by"` // destinatário do mint
	TransactionHash string    `json:"transaction_hash" db:"transaction_hash"`
	BlockNumber     uint64    `json:"block_number" db:"block_number"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
