package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"petclinic-microservices/internal/domain/owners"
	"petclinic-microservices/internal/platform/dates"
)

type OwnersRepo struct {
	db      *sql.DB
	dialect Dialect
}

var _ owners.Repository = (*OwnersRepo)(nil)

func NewOwnersRepo(db *sql.DB, dialect Dialect) *OwnersRepo {
	return &OwnersRepo{db: db, dialect: dialect}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	id, err := r.insert(ctx, `
		INSERT INTO owners (first_name, last_name, address, city, telephone)
		VALUES (?, ?, ?, ?, ?)
	`,
		o.FirstName,
		o.LastName,
		o.Address,
		o.City,
		o.Telephone,
	)
	if err != nil {
		return owners.Owner{}, err
	}

	o.ID = id
	o.Pets = nil
	return o, nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.rebind(`
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		WHERE id = ?
	`), id)

	var o owners.Owner
	if err := row.Scan(
		&o.ID,
		&o.FirstName,
		&o.LastName,
		&o.Address,
		&o.City,
		&o.Telephone,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}

	pets, err := r.pets(ctx, `WHERE p.owner_id = ?`, id)
	if err != nil {
		return owners.Owner{}, err
	}
	o.Pets = pets[id]
	return o, nil
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(
			&o.ID,
			&o.FirstName,
			&o.LastName,
			&o.Address,
			&o.City,
			&o.Telephone,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Una sola query para todas las mascotas
	pets, err := r.pets(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Pets = pets[out[i].ID]
	}
	return out, nil
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`
		UPDATE owners
		SET
			first_name = ?,
			last_name = ?,
			address = ?,
			city = ?,
			telephone = ?
		WHERE id = ?
	`),
		o.FirstName,
		o.LastName,
		o.Address,
		o.City,
		o.Telephone,
		o.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) AddPet(ctx context.Context, ownerID int, p owners.Pet) (owners.Pet, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(`SELECT 1 FROM owners WHERE id = ?`), ownerID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Pet{}, owners.ErrNotFound
		}
		return owners.Pet{}, err
	}

	id, err := r.insert(ctx, `
		INSERT INTO pets (name, birth_date, type_id, owner_id)
		VALUES (?, ?, ?, ?)
	`,
		p.Name,
		toNullDate(p.BirthDate),
		p.Type.ID,
		ownerID,
	)
	if err != nil {
		return owners.Pet{}, err
	}

	p.ID = id
	p.OwnerID = ownerID
	return p, nil
}

func (r *OwnersRepo) PetTypes(ctx context.Context) ([]owners.PetType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM types ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.PetType, 0)
	for rows.Next() {
		var t owners.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// pets trae mascotas (con su tipo) agrupadas por owner_id.
func (r *OwnersRepo) pets(ctx context.Context, where string, args ...any) (map[int][]owners.Pet, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(`
		SELECT p.id, p.owner_id, p.name, p.birth_date, t.id, t.name
		FROM pets p
		JOIN types t ON t.id = p.type_id
		`+where+`
		ORDER BY p.id ASC
	`), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]owners.Pet)
	for rows.Next() {
		var p owners.Pet
		var bd sql.NullTime
		if err := rows.Scan(
			&p.ID,
			&p.OwnerID,
			&p.Name,
			&bd,
			&p.Type.ID,
			&p.Type.Name,
		); err != nil {
			return nil, err
		}
		if bd.Valid {
			p.BirthDate = dates.New(bd.Time.Date())
		}
		out[p.OwnerID] = append(out[p.OwnerID], p)
	}
	return out, rows.Err()
}

// insert ejecuta un INSERT y devuelve el id generado.
// Postgres no implementa LastInsertId: usa RETURNING id.
func (r *OwnersRepo) insert(ctx context.Context, q string, args ...any) (int, error) {
	if r.dialect == Postgres {
		var id int
		err := r.db.QueryRowContext(ctx, r.dialect.rebind(q+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func toNullDate(d dates.Date) sql.NullTime {
	if d.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}
