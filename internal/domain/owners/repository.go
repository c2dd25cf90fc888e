package owners

import "context"

// Repository es el storage de owners. Implementaciones: memory y sqldb.
// GetByID / Update / AddPet devuelven ErrNotFound si el owner no existe.
type Repository interface {
	Create(ctx context.Context, o Owner) (Owner, error)
	GetByID(ctx context.Context, id int) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
	Update(ctx context.Context, o Owner) error
	AddPet(ctx context.Context, ownerID int, p Pet) (Pet, error)
	PetTypes(ctx context.Context) ([]PetType, error)
}
