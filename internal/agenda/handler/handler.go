package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenda/agenda-service/internal/agenda"
	"github.com/agenda/agenda-service/internal/agenda/service"
	"github.com/agenda/agenda-service/internal/agenda/validation"
	"github.com/agenda/agenda-service/pkg/logger"
	"github.com/agenda/agenda-service/pkg/middleware"
)

// NotFoundBody is returned for every unmatched method/path pair.
const NotFoundBody = "Endpoint not found"

type contactResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Teams []string `json:"equipos"`
}

func toContactResponse(c *agenda.Contact) contactResponse {
	return contactResponse{ID: c.ID.Hex(), Name: c.Name, Phone: c.Phone, Teams: agenda.HexIDs(c.Teams)}
}

// Handler serves the contacts and teams endpoints.
type Handler struct {
	svc service.Service
}

// RegisterRoutes mounts the agenda API on r, including the catch-all
// not-found response.
func RegisterRoutes(r *gin.Engine, svc service.Service) {
	h := &Handler{svc: svc}

	r.GET("/contacts", h.ListContacts)
	r.POST("/contact", h.CreateContact)
	r.PUT("/contact", h.UpdateContact)
	r.DELETE("/contact", h.DeleteContact)

	r.GET("/teams", h.ListTeams)
	r.GET("/team", h.GetTeam)
	r.POST("/team", h.CreateTeam)
	r.PUT("/team", h.UpdateTeam)
	r.DELETE("/team", h.DeleteTeam)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, NotFoundBody)
	})
}

// ListContacts returns every contact, or those whose name equals ?name=.
func (h *Handler) ListContacts(c *gin.Context) {
	var name *string
	if n := c.Query("name"); n != "" {
		name = &n
	}
	list, err := h.svc.ListContacts(c.Request.Context(), name)
	if err != nil {
		writeError(c, err, "Contact")
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateContact accepts { name, phone, equipos? }.
func (h *Handler) CreateContact(c *gin.Context) {
	var req validation.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, validation.Invalid(err), "Contact")
		return
	}
	nc, err := validation.ParseNewContact(req)
	if err != nil {
		writeError(c, err, "Contact")
		return
	}
	created, err := h.svc.CreateContact(c.Request.Context(), nc)
	if err != nil {
		writeError(c, err, "Contact")
		return
	}
	c.JSON(http.StatusOK, toContactResponse(created))
}

// UpdateContact accepts { name, phone, equipos } and updates the contact
// owning phone.
func (h *Handler) UpdateContact(c *gin.Context) {
	var req validation.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, validation.Invalid(err), "Contact")
		return
	}
	u, err := validation.ParseContactUpdate(req)
	if err != nil {
		writeError(c, err, "Contact")
		return
	}
	updated, err := h.svc.UpdateContact(c.Request.Context(), u)
	if err != nil {
		writeError(c, err, "Contact")
		return
	}
	c.JSON(http.StatusOK, toContactResponse(updated))
}

func (h *Handler) DeleteContact(c *gin.Context) {
	id, err := validation.ParseID(c.Query("id"))
	if err != nil {
		writeError(c, err, "Contact")
		return
	}
	if err := h.svc.DeleteContact(c.Request.Context(), id); err != nil {
		writeError(c, err, "Contact")
		return
	}
	c.String(http.StatusOK, "Contact deleted")
}

func (h *Handler) ListTeams(c *gin.Context) {
	list, err := h.svc.ListTeams(c.Request.Context())
	if err != nil {
		writeError(c, err, "Team")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetTeam(c *gin.Context) {
	id, err := validation.ParseID(c.Query("id"))
	if err != nil {
		writeError(c, err, "Team")
		return
	}
	t, err := h.svc.GetTeam(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Team")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) CreateTeam(c *gin.Context) {
	var req validation.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, validation.Invalid(err), "Team")
		return
	}
	nt, err := validation.ParseNewTeam(req)
	if err != nil {
		writeError(c, err, "Team")
		return
	}
	t, err := h.svc.CreateTeam(c.Request.Context(), nt)
	if err != nil {
		writeError(c, err, "Team")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateTeam(c *gin.Context) {
	var req validation.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, validation.Invalid(err), "Team")
		return
	}
	u, err := validation.ParseTeamUpdate(req)
	if err != nil {
		writeError(c, err, "Team")
		return
	}
	t, err := h.svc.UpdateTeam(c.Request.Context(), u)
	if err != nil {
		writeError(c, err, "Team")
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTeam removes the team; contacts referencing it are cleaned up on a
// best-effort basis.
func (h *Handler) DeleteTeam(c *gin.Context) {
	id, err := validation.ParseID(c.Query("id"))
	if err != nil {
		writeError(c, err, "Team")
		return
	}
	if err := h.svc.DeleteTeam(c.Request.Context(), id); err != nil {
		writeError(c, err, "Team")
		return
	}
	c.String(http.StatusOK, "Team deleted")
}

// writeError maps service errors to a status code and a plain-text body.
// kind names the resource in not-found messages.
func writeError(c *gin.Context, err error, kind string) {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPhoneTaken):
		c.String(http.StatusConflict, "Contact already exists")
	case errors.Is(err, service.ErrTeamNotFound):
		c.String(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, kind+" not found")
	default:
		logger.Errorf("%s %s failed (request_id=%s): %v", c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
