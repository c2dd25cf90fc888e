package owners_test

import (
	"context"
	"testing"
	"time"

	"petclinic-microservices/internal/adapters/storage/memory"
	"petclinic-microservices/internal/domain/owners"
	"petclinic-microservices/internal/platform/dates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOwner() owners.OwnerInput {
	return owners.OwnerInput{
		FirstName: "George",
		LastName:  "Franklin",
		Address:   "110 W. Liberty St.",
		City:      "Madison",
		Telephone: "6085551023",
	}
}

func TestService_CreateValidates(t *testing.T) {
	svc := owners.NewService(memory.NewOwnerRepo(), nil)
	ctx := context.Background()

	cases := map[string]func(*owners.OwnerInput){
		"blank first name": func(in *owners.OwnerInput) { in.FirstName = "  " },
		"blank last name":  func(in *owners.OwnerInput) { in.LastName = "" },
		"blank address":    func(in *owners.OwnerInput) { in.Address = "" },
		"blank city":       func(in *owners.OwnerInput) { in.City = "" },
		"phone letters":    func(in *owners.OwnerInput) { in.Telephone = "608-555" },
		"phone too long":   func(in *owners.OwnerInput) { in.Telephone = "1234567890123" },
		"phone empty":      func(in *owners.OwnerInput) { in.Telephone = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validOwner()
			mutate(&in)
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, owners.ErrInvalidInput)
		})
	}

	o, err := svc.Create(ctx, validOwner())
	require.NoError(t, err)
	assert.Equal(t, 1, o.ID)
	assert.NotNil(t, o.Pets)
}

func TestService_UpdateCopiesScalarFields(t *testing.T) {
	svc := owners.NewService(memory.NewOwnerRepo(), nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, validOwner())
	require.NoError(t, err)
	_, err = svc.AddPet(ctx, o.ID, owners.PetInput{Name: "Leo", TypeID: 1})
	require.NoError(t, err)

	in := validOwner()
	in.City = "Sun Prairie"
	in.Telephone = "6085551749"
	require.NoError(t, svc.Update(ctx, o.ID, in))

	got, err := svc.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sun Prairie", got.City)
	assert.Equal(t, "6085551749", got.Telephone)
	assert.Len(t, got.Pets, 1)

	assert.ErrorIs(t, svc.Update(ctx, 99, validOwner()), owners.ErrNotFound)
}

func TestService_AddPetAndSortByName(t *testing.T) {
	svc := owners.NewService(memory.NewOwnerRepo(), nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, validOwner())
	require.NoError(t, err)

	_, err = svc.AddPet(ctx, o.ID, owners.PetInput{Name: "rosy", TypeID: 2})
	require.NoError(t, err)
	p, err := svc.AddPet(ctx, o.ID, owners.PetInput{Name: "Jewel", TypeID: 2, BirthDate: dates.New(2010, time.March, 7)})
	require.NoError(t, err)
	assert.Equal(t, "dog", p.Type.Name)

	got, err := svc.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Pets, 2)
	assert.Equal(t, "Jewel", got.Pets[0].Name)
	assert.Equal(t, "rosy", got.Pets[1].Name)

	_, err = svc.AddPet(ctx, o.ID, owners.PetInput{Name: "Nemo", TypeID: 42})
	assert.ErrorIs(t, err, owners.ErrInvalidInput)
	_, err = svc.AddPet(ctx, o.ID, owners.PetInput{Name: " ", TypeID: 1})
	assert.ErrorIs(t, err, owners.ErrInvalidInput)
	_, err = svc.AddPet(ctx, 99, owners.PetInput{Name: "Nemo", TypeID: 1})
	assert.ErrorIs(t, err, owners.ErrNotFound)
}

func TestService_GetByIDRejectsNonPositive(t *testing.T) {
	svc := owners.NewService(memory.NewOwnerRepo(), nil)

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, owners.ErrInvalidInput)

	_, err = svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, owners.ErrNotFound)
}

func TestService_PetTypesCatalogue(t *testing.T) {
	svc := owners.NewService(memory.NewOwnerRepo(), nil)

	types, err := svc.PetTypes(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(types))
	for _, tp := range types {
		names = append(names, tp.Name)
	}
	assert.Equal(t, []string{"cat", "dog", "lizard", "snake", "bird", "hamster"}, names)
}
