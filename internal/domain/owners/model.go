package owners

import "petclinic-microservices/internal/platform/dates"

// PetType es una entrada del catálogo fijo de especies.
type PetType struct {
	ID   int
	Name string
}

// DefaultPetTypes es el catálogo con el que se siembra cualquier storage.
func DefaultPetTypes() []PetType {
	return []PetType{
		{ID: 1, Name: "cat"},
		{ID: 2, Name: "dog"},
		{ID: 3, Name: "lizard"},
		{ID: 4, Name: "snake"},
		{ID: 5, Name: "bird"},
		{ID: 6, Name: "hamster"},
	}
}

type Pet struct {
	ID        int
	OwnerID   int
	Name      string
	BirthDate dates.Date // zero => sin fecha
	Type      PetType
}

// Owner es el dueño con sus mascotas (ordenadas por nombre).
type Owner struct {
	ID        int
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string

	Pets []Pet
}
