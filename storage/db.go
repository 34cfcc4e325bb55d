package storage

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/addegbenga/mip-dapp/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB representa a conexão com o banco de dados PostgreSQL.
type DB struct {
	*sqlx.DB
	log *logger.Logger
}

// NewDB conecta-se ao PostgreSQL e executa as migrações pendentes.
func NewDB(dataSourceName string, log *logger.Logger) (*DB, error) {
	db, err := Open(dataSourceName, log)
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(migrate.Up); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Open conecta-se ao PostgreSQL sem aplicar migrações.
func Open(dataSourceName string, log *logger.Logger) (*DB, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao pingar o banco de dados: %w", err)
	}
	log.Info("Conexão com PostgreSQL estabelecida com sucesso.")
	return &DB{DB: db, log: log}, nil
}

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// Migrate aplica (ou desfaz) as migrações embutidas e retorna quantas foram executadas.
func (d *DB) Migrate(dir migrate.MigrationDirection) (int, error) {
	n, err := runMigrations(d.DB.DB, dir)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		d.log.Info("Migrações aplicadas ao banco de dados.", "count", n)
	} else {
		d.log.Info("Nenhuma migração nova para aplicar.")
	}
	return n, nil
}

func runMigrations(db *sql.DB, dir migrate.MigrationDirection) (int, error) {
	n, err := migrate.Exec(db, "postgres", migrationSource(), dir)
	if err != nil {
		return 0, fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	return n, nil
}
