package gateway

import "petclinic-microservices/internal/platform/dates"

// OwnerDetails es el documento compuesto que devuelve el gateway: el owner
// del customers-service con las visitas de cada mascota ya agregadas.
type OwnerDetails struct {
	ID        int          `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Address   string       `json:"address"`
	City      string       `json:"city"`
	Telephone string       `json:"telephone"`
	Pets      []PetDetails `json:"pets"`
}

// PetIDs devuelve los ids de las mascotas en el orden del owner.
func (o OwnerDetails) PetIDs() []int {
	ids := make([]int, 0, len(o.Pets))
	for _, p := range o.Pets {
		ids = append(ids, p.ID)
	}
	return ids
}

type PetDetails struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	BirthDate dates.Date     `json:"birthDate"`
	Type      PetType        `json:"type"`
	Visits    []VisitDetails `json:"visits"`
}

type PetType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type VisitDetails struct {
	ID          int        `json:"id"`
	PetID       int        `json:"petId"`
	Date        dates.Date `json:"date"`
	Description string     `json:"description"`
}

// Visits es la respuesta del visits-service. Items vacío es un resultado válido.
type Visits struct {
	Items []VisitDetails `json:"items"`
}
