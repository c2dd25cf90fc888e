package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"petclinic-microservices/internal/domain/owners"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS types (
		id   INTEGER PRIMARY KEY,
		name VARCHAR(80) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS owners (
		id         SERIAL PRIMARY KEY,
		first_name VARCHAR(30)  NOT NULL,
		last_name  VARCHAR(30)  NOT NULL,
		address    VARCHAR(255) NOT NULL,
		city       VARCHAR(80)  NOT NULL,
		telephone  VARCHAR(12)  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id         SERIAL PRIMARY KEY,
		name       VARCHAR(30) NOT NULL,
		birth_date DATE NULL,
		type_id    INTEGER NOT NULL REFERENCES types(id),
		owner_id   INTEGER NOT NULL REFERENCES owners(id)
	)`,
	`CREATE INDEX IF NOT EXISTS pets_owner_id_idx ON pets (owner_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS types (
		id   INT PRIMARY KEY,
		name VARCHAR(80) NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS owners (
		id         INT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(30)  NOT NULL,
		last_name  VARCHAR(30)  NOT NULL,
		address    VARCHAR(255) NOT NULL,
		city       VARCHAR(80)  NOT NULL,
		telephone  VARCHAR(12)  NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS pets (
		id         INT AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(30) NOT NULL,
		birth_date DATE NULL,
		type_id    INT NOT NULL,
		owner_id   INT NOT NULL,
		INDEX pets_owner_id_idx (owner_id),
		FOREIGN KEY (type_id) REFERENCES types(id),
		FOREIGN KEY (owner_id) REFERENCES owners(id)
	) ENGINE=InnoDB`,
}

// Migrate crea las tablas si no existen y siembra el catálogo de tipos.
// Es idempotente.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts := postgresSchema
	seed := `INSERT INTO types (id, name) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`
	if dialect == MySQL {
		stmts = mysqlSchema
		seed = `INSERT IGNORE INTO types (id, name) VALUES (?, ?)`
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqldb: migrate: %w", err)
		}
	}

	seed = dialect.rebind(seed)
	for _, t := range owners.DefaultPetTypes() {
		if _, err := db.ExecContext(ctx, seed, t.ID, t.Name); err != nil {
			return fmt.Errorf("sqldb: seed types: %w", err)
		}
	}
	return nil
}
