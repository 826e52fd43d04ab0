package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hoteldb/internal/app"
	"hoteldb/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	B *app.BookingService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/rooms/available", h.availableRooms)
	s.mux.Post("/v1/clients", h.createClient)
	s.mux.Post("/v1/reservations", h.createReservation)
	s.mux.Get("/v1/reservations/{id}/evaluations", h.listEvaluations)
	s.mux.Get("/v1/reports/reservations", h.reportReservations)
	s.mux.Get("/v1/reports/clients", h.reportClientsByCity)
	s.mux.Get("/v1/reports/reservations-per-client", h.reportReservationsPerClient)
	s.mux.Get("/v1/reports/rooms-per-type", h.reportRoomsPerType)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeDomainErr maps the failure taxonomy onto HTTP statuses.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		writeProblem(w, http.StatusBadRequest, "Invalid Range", "arrival date must not be after departure date")
	case errors.Is(err, domain.ErrNoRooms):
		writeProblem(w, http.StatusBadRequest, "No Rooms", "at least one room id is required")
	case errors.Is(err, domain.ErrInvalidClient):
		writeProblem(w, http.StatusBadRequest, "Invalid Client", "full name is required")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrRoomUnavailable):
		writeProblem(w, http.StatusConflict, "Room Unavailable", err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "Store Unavailable", "database unreachable or query failed")
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v with an ETag, honoring If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func parseDateParam(r *http.Request, name string) (time.Time, bool) {
	t, err := domain.ParseDate(r.URL.Query().Get(name))
	return t, err == nil
}

// ---- rooms ----

type roomDTO struct {
	ID      int64 `json:"id"`
	Floor   int   `json:"floor"`
	Smoking bool  `json:"smoking"`
	HotelID int64 `json:"hotel_id"`
	TypeID  int64 `json:"type_id"`
}

func toRoomDTOs(rooms []domain.Room) []roomDTO {
	out := make([]roomDTO, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, roomDTO{ID: rm.ID, Floor: rm.Floor, Smoking: rm.Smoking, HotelID: rm.HotelID, TypeID: rm.TypeID})
	}
	return out
}

func (h *Handlers) availableRooms(w http.ResponseWriter, r *http.Request) {
	start, ok := parseDateParam(r, "start")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Date", "start must be YYYY-MM-DD")
		return
	}
	end, ok := parseDateParam(r, "end")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Date", "end must be YYYY-MM-DD")
		return
	}
	rooms, err := h.Q.AvailableRooms(r.Context(), start, end)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, r, toRoomDTOs(rooms))
}

// ---- writes ----

type clientReq struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func (h *Handlers) createClient(w http.ResponseWriter, r *http.Request) {
	var req clientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	id, err := h.B.CreateClient(r.Context(), domain.Client{
		FullName:   req.FullName,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]int64{"id": id})
}

type reservationReq struct {
	ClientID  int64   `json:"client_id"`
	Arrival   string  `json:"arrival"`
	Departure string  `json:"departure"`
	RoomIDs   []int64 `json:"room_ids"`
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	arrival, err := domain.ParseDate(req.Arrival)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Date", "arrival must be YYYY-MM-DD")
		return
	}
	departure, err := domain.ParseDate(req.Departure)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Date", "departure must be YYYY-MM-DD")
		return
	}
	id, err := h.B.CreateReservation(r.Context(), req.ClientID, arrival, departure, req.RoomIDs)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]int64{"id": id})
}

// ---- reports ----

type clientDTO struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func (h *Handlers) reportClientsByCity(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		writeProblem(w, http.StatusBadRequest, "Missing Parameter", "city is required")
		return
	}
	clients, err := h.Q.ClientsByCity(r.Context(), city)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]clientDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, clientDTO{ID: c.ID, FullName: c.FullName, Address: c.Address, City: c.City, PostalCode: c.PostalCode, Email: c.Email, Phone: c.Phone})
	}
	writeJSON(w, r, out)
}

type summaryDTO struct {
	ReservationID int64  `json:"reservation_id"`
	Client        string `json:"client"`
	HotelCity     string `json:"hotel_city"`
	Arrival       string `json:"arrival"`
	Departure     string `json:"departure"`
}

func (h *Handlers) reportReservations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Q.ReservationSummaries(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]summaryDTO, 0, len(rows))
	for _, s := range rows {
		out = append(out, summaryDTO{
			ReservationID: s.ReservationID,
			Client:        s.ClientName,
			HotelCity:     s.HotelCity,
			Arrival:       s.Arrival.Format(domain.DateLayout),
			Departure:     s.Departure.Format(domain.DateLayout),
		})
	}
	writeJSON(w, r, out)
}

type perClientDTO struct {
	ClientID     int64  `json:"client_id"`
	FullName     string `json:"full_name"`
	Reservations int    `json:"reservations"`
}

func (h *Handlers) reportReservationsPerClient(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Q.ReservationsPerClient(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]perClientDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, perClientDTO{ClientID: c.ClientID, FullName: c.FullName, Reservations: c.Reservations})
	}
	writeJSON(w, r, out)
}

type perTypeDTO struct {
	TypeID int64  `json:"type_id"`
	Label  string `json:"label"`
	Rooms  int    `json:"rooms"`
}

func (h *Handlers) reportRoomsPerType(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Q.RoomsPerType(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]perTypeDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, perTypeDTO{TypeID: c.TypeID, Label: c.Label, Rooms: c.Rooms})
	}
	writeJSON(w, r, out)
}

type evaluationDTO struct {
	ID      int64   `json:"id"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

func (h *Handlers) listEvaluations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	evals, err := h.Q.Evaluations(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]evaluationDTO, 0, len(evals))
	for _, e := range evals {
		out = append(out, evaluationDTO{ID: e.ID, Rating: e.Rating, Comment: e.Comment})
	}
	writeJSON(w, r, out)
}
