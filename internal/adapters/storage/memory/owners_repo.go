package memory

import (
	"context"
	"sort"
	"sync"

	"petclinic-microservices/internal/domain/owners"
)

type ownerRepo struct {
	mu        sync.RWMutex
	byID      map[int]owners.Owner
	nextOwner int
	nextPet   int
	types     []owners.PetType
}

// NewOwnerRepo arranca vacío, con ids secuenciales desde 1 y el catálogo
// de tipos por defecto.
func NewOwnerRepo() owners.Repository {
	return &ownerRepo{
		byID:      make(map[int]owners.Owner),
		nextOwner: 1,
		nextPet:   1,
		types:     owners.DefaultPetTypes(),
	}
}

func (r *ownerRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = r.nextOwner
	r.nextOwner++
	o.Pets = nil
	r.byID[o.ID] = o
	return clone(o), nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id int) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return clone(o), nil
}

func (r *ownerRepo) List(ctx context.Context) ([]owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owners.Owner, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, clone(o))
	}

	// Orden estable por id
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update pisa los campos escalares; las mascotas guardadas se conservan.
func (r *ownerRepo) Update(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[o.ID]
	if !ok {
		return owners.ErrNotFound
	}
	o.Pets = cur.Pets
	r.byID[o.ID] = o
	return nil
}

func (r *ownerRepo) AddPet(ctx context.Context, ownerID int, p owners.Pet) (owners.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[ownerID]
	if !ok {
		return owners.Pet{}, owners.ErrNotFound
	}

	p.ID = r.nextPet
	r.nextPet++
	p.OwnerID = ownerID
	o.Pets = append(o.Pets, p)
	r.byID[ownerID] = o
	return p, nil
}

func (r *ownerRepo) PetTypes(ctx context.Context) ([]owners.PetType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owners.PetType, len(r.types))
	copy(out, r.types)
	return out, nil
}

// clone evita que el caller comparta el slice de mascotas guardado.
func clone(o owners.Owner) owners.Owner {
	if o.Pets != nil {
		pets := make([]owners.Pet, len(o.Pets))
		copy(pets, o.Pets)
		o.Pets = pets
	}
	return o
}
