package httpadapter

import (
	"contactbook/internal/core/domain"
	"contactbook/internal/core/service/contact"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	MaxRequestSize = 1024 * 1024 // 1MB max request size
)

type Handler struct {
	contactService contact.Service
	logger         *slog.Logger
}

func NewHandler(svc contact.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		contactService: svc,
		logger:         logger,
	}
}

// contactResponse is the wire form of a domain.Record.
type contactResponse struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
	Display  string   `json:"display"`
}

type pageResponse struct {
	Contacts  []contactResponse `json:"contacts"`
	Page      int               `json:"page"`
	BatchSize int               `json:"batch_size"`
	Total     int               `json:"total"`
}

type contactRequest struct {
	Name     string   `json:"name"`
	Birthday string   `json:"birthday"`
	Phones   []string `json:"phones"`
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

type birthdayRequest struct {
	Birthday string `json:"birthday"`
}

// birthdayResponse has a null days value when the contact has no birthday.
type birthdayResponse struct {
	Name string `json:"name"`
	Days *int   `json:"days"`
}

func toContactResponse(r *domain.Record) contactResponse {
	phones := make([]string, 0, len(r.Phones()))
	for _, p := range r.Phones() {
		phones = append(phones, p.String())
	}

	resp := contactResponse{
		Name:    r.Name().Value(),
		Phones:  phones,
		Display: r.String(),
	}

	if birthday, ok := r.Birthday(); ok {
		resp.Birthday = birthday.Value()
	}

	return resp
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var httpStatusCode int
	switch {

	// Not Found Errors
	case errors.Is(err, contact.ErrContactNotFound), errors.Is(err, domain.ErrNotFound):
		httpStatusCode = http.StatusNotFound

	// Bad Request Errors
	case errors.Is(err, domain.ErrValidation), errors.Is(err, contact.ErrEmptyName), errors.Is(err, contact.ErrEmptyPhone),
		errors.Is(err, contact.ErrNoDataProvided), errors.Is(err, contact.ErrInvalidPage):
		httpStatusCode = http.StatusBadRequest

	// Default to Server Error
	default:
		h.logger.Error("unhandled error from service", "error", err, "request_id", GetRequestID(r.Context()))
		httpStatusCode = http.StatusInternalServerError
	}

	http.Error(w, err.Error(), httpStatusCode)
}

func (h *Handler) SetupRoutes() http.Handler {
	router := chi.NewRouter()

	router.Use(RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.HandleListContacts)
		r.With(RequireURLParams("name")).Get("/{name}", h.HandleGetContact)
		r.With(RequireURLParams("name")).Get("/{name}/birthday", h.HandleDaysToBirthday)
		r.With(RequireURLParams("name")).Delete("/{name}", h.HandleDeleteContact)
		r.With(RequireURLParams("name", "phone")).Delete("/{name}/phones/{phone}", h.HandleRemovePhone)

		// write operations will have size limits
		r.Group(func(r chi.Router) {
			r.Use(RequestSizeLimit(MaxRequestSize)) // enforce MaxRequestSize limit
			r.Post("/", h.HandleCreateContact)
			r.With(RequireURLParams("name")).Put("/{name}/birthday", h.HandleSetBirthday)
			r.With(RequireURLParams("name")).Post("/{name}/phones", h.HandleAddPhone)
			r.With(RequireURLParams("name", "phone")).Put("/{name}/phones/{phone}", h.HandleEditPhone)
		})
	})

	return router
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// decodeBody reads a JSON body into dst; an empty body is ErrNoDataProvided.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return contact.ErrNoDataProvided
		}
		return err
	}

	return nil
}

// queryInt returns the integer query parameter key, or fallback when it is absent.
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}

	return strconv.Atoi(raw)
}

func (h *Handler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		http.Error(w, "page must be an integer", http.StatusBadRequest)
		return
	}

	batchSize, err := queryInt(r, "batch", 0)
	if err != nil {
		http.Error(w, "batch must be an integer", http.StatusBadRequest)
		return
	}

	result, err := h.contactService.ListContacts(r.Context(), page, batchSize)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := pageResponse{
		Contacts:  make([]contactResponse, 0, len(result.Records)),
		Page:      result.Page,
		BatchSize: result.BatchSize,
		Total:     result.Total,
	}
	for _, record := range result.Records {
		resp.Contacts = append(resp.Contacts, toContactResponse(record))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGetContact(w http.ResponseWriter, r *http.Request) {
	record, err := h.contactService.GetContact(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toContactResponse(record))
}

func (h *Handler) HandleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleDecodeError(w, r, err)
		return
	}

	record, wasCreated, err := h.contactService.CreateContact(r.Context(), contact.NewContact{
		Name:     req.Name,
		Birthday: req.Birthday,
		Phones:   req.Phones,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var successStatus int
	if wasCreated {
		successStatus = http.StatusCreated
	} else {
		successStatus = http.StatusOK
	}

	h.writeJSON(w, successStatus, toContactResponse(record))
}

func (h *Handler) HandleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.contactService.DeleteContact(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAddPhone(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleDecodeError(w, r, err)
		return
	}

	record, err := h.contactService.AddPhone(r.Context(), chi.URLParam(r, "name"), req.Phone)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toContactResponse(record))
}

func (h *Handler) HandleEditPhone(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleDecodeError(w, r, err)
		return
	}

	record, err := h.contactService.EditPhone(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "phone"), req.Phone)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toContactResponse(record))
}

func (h *Handler) HandleRemovePhone(w http.ResponseWriter, r *http.Request) {
	if _, err := h.contactService.RemovePhone(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "phone")); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSetBirthday(w http.ResponseWriter, r *http.Request) {
	var req birthdayRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleDecodeError(w, r, err)
		return
	}

	record, err := h.contactService.SetBirthday(r.Context(), chi.URLParam(r, "name"), req.Birthday)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toContactResponse(record))
}

func (h *Handler) HandleDaysToBirthday(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	days, ok, err := h.contactService.DaysToBirthday(r.Context(), name)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := birthdayResponse{Name: name}
	if ok {
		resp.Days = &days
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// handleDecodeError maps body decoding failures: an empty body is a service level error, anything else is a bad request.
func (h *Handler) handleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("failed to decode request", "error", err, "path", r.URL.Path, "request_id", GetRequestID(r.Context()))

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, contact.ErrNoDataProvided):
		h.handleError(w, r, err)
	case errors.As(err, &maxBytesErr):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
