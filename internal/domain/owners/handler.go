package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"petclinic-microservices/internal/platform/dates"
	"petclinic-microservices/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, mounts ...func(chi.Router)) {
	if log == nil {
		log = logger.NewNop()
	}
	h := handlers{svc: svc, log: log}

	r.Route("/owners", func(or chi.Router) {
		or.Post("/", h.createOwner)
		or.Get("/", h.listOwners)
		or.Get("/{ownerId}", h.getOwner)
		or.Put("/{ownerId}", h.updateOwner)

		// Alta de mascotas del owner
		or.Post("/{ownerId}/pets", h.addPet)

		for _, mount := range mounts {
			mount(or)
		}
	})

	r.Get("/petTypes", h.listPetTypes)
}

type handlers struct {
	svc *Service
	log logger.Logger
}

type ownerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Telephone string `json:"telephone"`
}

func (req ownerRequest) input() OwnerInput {
	return OwnerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		City:      req.City,
		Telephone: req.Telephone,
	}
}

type petRequest struct {
	Name      string     `json:"name"`
	BirthDate dates.Date `json:"birthDate"` // YYYY-MM-DD opcional
	TypeID    int        `json:"typeId"`
}

type ownerResponse struct {
	ID        int           `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Address   string        `json:"address"`
	City      string        `json:"city"`
	Telephone string        `json:"telephone"`
	Pets      []petResponse `json:"pets"`
}

type petResponse struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	BirthDate dates.Date      `json:"birthDate"`
	Type      petTypeResponse `json:"type"`
}

type petTypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// createOwner godoc
// @Summary Crear owner
// @Tags owners
// @Accept json
// @Produce json
// @Param payload body ownerRequest true "Datos del owner; telephone 1 a 12 dígitos"
// @Success 201 {object} ownerResponse
// @Failure 400 {object} errorResponse "invalid json / validación"
// @Router /owners [post]
func (h handlers) createOwner(w http.ResponseWriter, r *http.Request) {
	var req ownerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	o, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOwnerResponse(o))
}

// getOwner godoc
// @Summary Obtener owner por id
// @Tags owners
// @Produce json
// @Param ownerId path int true "ID del owner (>= 1)"
// @Success 200 {object} ownerResponse
// @Failure 400 {object} errorResponse "ownerId inválido"
// @Failure 404 {object} errorResponse "owner not found"
// @Router /owners/{ownerId} [get]
func (h handlers) getOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerIDParam(w, r)
	if !ok {
		return
	}

	o, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOwnerResponse(o))
}

// listOwners godoc
// @Summary Listar owners
// @Tags owners
// @Produce json
// @Success 200 {array} ownerResponse
// @Router /owners [get]
func (h handlers) listOwners(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]ownerResponse, 0, len(items))
	for _, o := range items {
		out = append(out, toOwnerResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// updateOwner godoc
// @Summary Actualizar owner
// @Description Copia firstName, lastName, address, city y telephone. Las mascotas no cambian.
// @Tags owners
// @Accept json
// @Param ownerId path int true "ID del owner (>= 1)"
// @Param payload body ownerRequest true "Datos del owner"
// @Success 204
// @Failure 400 {object} errorResponse "invalid json / validación"
// @Failure 404 {object} errorResponse "owner not found"
// @Router /owners/{ownerId} [put]
func (h handlers) updateOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerIDParam(w, r)
	if !ok {
		return
	}

	var req ownerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.svc.Update(r.Context(), id, req.input()); err != nil {
		h.fail(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// addPet godoc
// @Summary Agregar mascota a un owner
// @Tags owners
// @Accept json
// @Produce json
// @Param ownerId path int true "ID del owner (>= 1)"
// @Param payload body petRequest true "Mascota; typeId según GET /petTypes"
// @Success 201 {object} petResponse
// @Failure 400 {object} errorResponse "invalid json / validación"
// @Failure 404 {object} errorResponse "owner not found"
// @Router /owners/{ownerId}/pets [post]
func (h handlers) addPet(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerIDParam(w, r)
	if !ok {
		return
	}

	var req petRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json (birthDate must be YYYY-MM-DD)")
		return
	}

	p, err := h.svc.AddPet(r.Context(), id, PetInput{
		Name:      req.Name,
		BirthDate: req.BirthDate,
		TypeID:    req.TypeID,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPetResponse(p))
}

// listPetTypes godoc
// @Summary Catálogo de tipos de mascota
// @Tags owners
// @Produce json
// @Success 200 {array} petTypeResponse
// @Router /petTypes [get]
func (h handlers) listPetTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.PetTypes(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]petTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, petTypeResponse{ID: t.ID, Name: t.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func ownerIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "ownerId")
	id, err := strconv.Atoi(raw)
	// Sin signo ni ceros a la izquierda
	if err != nil || id < 1 || strconv.Itoa(id) != raw {
		writeError(w, http.StatusBadRequest, "ownerId must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h handlers) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("owners request failed", map[string]any{"err": err})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toOwnerResponse(o Owner) ownerResponse {
	pets := make([]petResponse, 0, len(o.Pets))
	for _, p := range o.Pets {
		pets = append(pets, toPetResponse(p))
	}
	return ownerResponse{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Address:   o.Address,
		City:      o.City,
		Telephone: o.Telephone,
		Pets:      pets,
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate,
		Type:      petTypeResponse{ID: p.Type.ID, Name: p.Type.Name},
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
