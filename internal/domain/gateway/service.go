package gateway

import (
	"context"

	"petclinic-microservices/internal/platform/circuitbreaker"
	"petclinic-microservices/internal/platform/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// BreakerName es el breaker que protege la llamada a visits.
const BreakerName = "getOwnerDetails"

var tracer = otel.Tracer("gateway")

type Service struct {
	customers CustomersClient
	visits    VisitsClient
	breakers  *circuitbreaker.Factory
	log       logger.Logger
}

func NewService(customers CustomersClient, visits VisitsClient, breakers *circuitbreaker.Factory, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		customers: customers,
		visits:    visits,
		breakers:  breakers,
		log:       log,
	}
}

// GetOwnerDetails arma el owner con sus visitas.
// - Si falla customers, el error sube tal cual (no hay fallback para el owner).
// - Si falla visits (o el breaker está abierto), las mascotas quedan con visits vacío.
func (s *Service) GetOwnerDetails(ctx context.Context, ownerID int) (OwnerDetails, error) {
	ctx, span := tracer.Start(ctx, "Gateway.Service.GetOwnerDetails")
	defer span.End()
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	owner, err := s.customers.GetOwner(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "owner fetch failed")
		return OwnerDetails{}, err
	}

	var cb *circuitbreaker.Breaker
	if s.breakers != nil {
		cb = s.breakers.Create(BreakerName)
	}

	petIDs := owner.PetIDs()
	visits := circuitbreaker.Run(ctx, cb,
		func(ctx context.Context) (Visits, error) {
			return s.visits.GetVisitsForPets(ctx, petIDs)
		},
		func(err error) Visits {
			s.log.Warn("visits unavailable, returning owner without visits", map[string]any{
				"ownerId": ownerID,
				"err":     err,
			})
			span.AddEvent("visits fallback")
			return Visits{Items: []VisitDetails{}}
		},
	)

	addVisitsToOwner(&owner, visits)
	return owner, nil
}

// addVisitsToOwner agrega a cada mascota las visitas con su petId, en el orden
// en que vinieron. Visitas de mascotas que no son del owner se descartan.
func addVisitsToOwner(owner *OwnerDetails, visits Visits) {
	if owner.Pets == nil {
		owner.Pets = []PetDetails{}
	}
	for i := range owner.Pets {
		pet := &owner.Pets[i]
		if pet.Visits == nil {
			pet.Visits = []VisitDetails{}
		}
		for _, v := range visits.Items {
			if v.PetID == pet.ID {
				pet.Visits = append(pet.Visits, v)
			}
		}
	}
}
