package gateway

import "context"

// CustomersClient trae el owner (con sus mascotas) del customers-service.
type CustomersClient interface {
	GetOwner(ctx context.Context, ownerID int) (OwnerDetails, error)
}

// VisitsClient trae las visitas de un conjunto de mascotas.
// Con petIDs vacío no debe salir a la red.
type VisitsClient interface {
	GetVisitsForPets(ctx context.Context, petIDs []int) (Visits, error)
}
