package owners

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"petclinic-microservices/internal/platform/dates"
	"petclinic-microservices/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("owner not found")
)

var telephoneRe = regexp.MustCompile(`^[0-9]{1,12}$`)

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log,
	}
}

// OwnerInput son los cinco campos editables del owner.
type OwnerInput struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string
}

func (in OwnerInput) normalize() (OwnerInput, error) {
	out := OwnerInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		Telephone: strings.TrimSpace(in.Telephone),
	}

	required := []struct{ field, value string }{
		{"firstName", out.FirstName},
		{"lastName", out.LastName},
		{"address", out.Address},
		{"city", out.City},
	}
	for _, r := range required {
		if r.value == "" {
			return OwnerInput{}, fmt.Errorf("%w: %s required", ErrInvalidInput, r.field)
		}
	}
	if !telephoneRe.MatchString(out.Telephone) {
		return OwnerInput{}, fmt.Errorf("%w: telephone must be 1 to 12 digits", ErrInvalidInput)
	}
	return out, nil
}

type PetInput struct {
	Name      string
	BirthDate dates.Date
	TypeID    int
}

func (s *Service) Create(ctx context.Context, in OwnerInput) (Owner, error) {
	in, err := in.normalize()
	if err != nil {
		return Owner{}, err
	}

	o, err := s.repo.Create(ctx, Owner{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address:   in.Address,
		City:      in.City,
		Telephone: in.Telephone,
	})
	if err != nil {
		return Owner{}, err
	}
	if o.Pets == nil {
		o.Pets = []Pet{}
	}

	s.log.Info("owner created", map[string]any{"ownerId": o.ID})
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (Owner, error) {
	if id < 1 {
		return Owner{}, fmt.Errorf("%w: ownerId must be >= 1", ErrInvalidInput)
	}

	s.log.Info("finding owner", map[string]any{"ownerId": id})
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}
	sortPets(&o)
	return o, nil
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		sortPets(&items[i])
	}
	return items, nil
}

// Update copia los cinco campos escalares; las mascotas no se tocan.
func (s *Service) Update(ctx context.Context, id int, in OwnerInput) error {
	if id < 1 {
		return fmt.Errorf("%w: ownerId must be >= 1", ErrInvalidInput)
	}
	in, err := in.normalize()
	if err != nil {
		return err
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	o.FirstName = in.FirstName
	o.LastName = in.LastName
	o.Address = in.Address
	o.City = in.City
	o.Telephone = in.Telephone

	s.log.Info("saving owner", map[string]any{"ownerId": id})
	return s.repo.Update(ctx, o)
}

func (s *Service) AddPet(ctx context.Context, ownerID int, in PetInput) (Pet, error) {
	if ownerID < 1 {
		return Pet{}, fmt.Errorf("%w: ownerId must be >= 1", ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}

	petType, err := s.petType(ctx, in.TypeID)
	if err != nil {
		return Pet{}, err
	}

	p, err := s.repo.AddPet(ctx, ownerID, Pet{
		OwnerID:   ownerID,
		Name:      name,
		BirthDate: in.BirthDate,
		Type:      petType,
	})
	if err != nil {
		return Pet{}, err
	}

	s.log.Info("pet added", map[string]any{"ownerId": ownerID, "petId": p.ID})
	return p, nil
}

func (s *Service) PetTypes(ctx context.Context) ([]PetType, error) {
	return s.repo.PetTypes(ctx)
}

func (s *Service) petType(ctx context.Context, id int) (PetType, error) {
	types, err := s.repo.PetTypes(ctx)
	if err != nil {
		return PetType{}, err
	}
	for _, t := range types {
		if t.ID == id {
			return t, nil
		}
	}
	return PetType{}, fmt.Errorf("%w: unknown pet type %d", ErrInvalidInput, id)
}

func sortPets(o *Owner) {
	if o.Pets == nil {
		o.Pets = []Pet{}
		return
	}
	sort.SliceStable(o.Pets, func(i, j int) bool {
		return strings.ToLower(o.Pets[i].Name) < strings.ToLower(o.Pets[j].Name)
	})
}
