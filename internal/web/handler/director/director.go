// Package director exposes the resolution endpoints under /api/director: the
// pending worklist, request detail, the supporting document download, and the
// approve/reject actions.
package director

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/auth"
	"github.com/GoBancaUno/GoBancaUno/internal/config"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/client"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/request"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/rolebinding"
	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler"
)

const (
	// Path is the base path of the director endpoints.
	Path = "/api/director"
)

// Service is the director handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the director handler.
var Handler = Service{}

// Init initializes the director handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Use(authService.Verify(), auth.RequireAnyRole(auth.RoleOperationsDirector))

		router.Get("/requests", s.List)
		router.Get("/requests/advisor/:binding", s.ListByAdvisor)
		router.Get("/requests/:id", s.Detail)
		router.Get("/requests/:id/full", s.FullDetail)
		router.Get("/requests/:id/document", s.Document)
		router.Put("/requests/:id/approve", s.Approve)
		router.Put("/requests/:id/reject", s.Reject)
	})

	return nil
}

// List returns the request worklist, newest first, optionally filtered with
// ?status=Pending|Approved|Rejected.
func (s *Service) List(c *fiber.Ctx) error {
	status, ok := parseStatus(c.Query("status"))
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, "unknown status filter")
	}

	requests, err := request.List(s.db, status)
	if err != nil {
		log.Error().Err(err).Msg("request listing failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request listing failed")
	}

	entries := make([]listEntry, 0, len(requests))
	for i := range requests {
		entries = append(entries, entryOf(&requests[i]))
	}

	return handler.OK(c, "account requests", entries)
}

// ListByAdvisor returns the requests created under one advisor binding,
// newest first. An unknown binding is a 404, not an empty list.
func (s *Service) ListByAdvisor(c *fiber.Ctx) error {
	binding, err := c.ParamsInt("binding")
	if err != nil || binding <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid binding id")
	}

	_, err = rolebinding.ByID(s.db, uint64(binding))
	switch {
	case err == nil:
	case errors.Is(err, rolebinding.ErrBindingNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "advisor binding not found")
	default:
		log.Error().Err(err).Msg("binding lookup failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request listing failed")
	}

	requests, err := request.ListByBinding(s.db, uint64(binding))
	if err != nil {
		log.Error().Err(err).Msg("request listing failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request listing failed")
	}

	entries := make([]listEntry, 0, len(requests))
	for i := range requests {
		entries = append(entries, entryOf(&requests[i]))
	}

	return handler.OK(c, "account requests", entries)
}

// Detail returns one request with comments and document flag.
func (s *Service) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request id")
	}

	req, err := request.Get(s.db, uint64(id))
	switch {
	case err == nil:
	case errors.Is(err, request.ErrRequestNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "request not found")
	default:
		log.Error().Err(err).Msg("request read failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request read failed")
	}

	return handler.OK(c, "account request", detailView{
		listEntry:       entryOf(req),
		AdvisorComment:  req.AdvisorComment,
		DirectorComment: req.DirectorComment,
		HasDocument:     len(req.Artifact) > 0,
	})
}

// FullDetail returns a request together with the client's contact and
// economic side tables, the view backing the review screen.
func (s *Service) FullDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request id")
	}

	req, err := request.Get(s.db, uint64(id))
	switch {
	case err == nil:
	case errors.Is(err, request.ErrRequestNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "request not found")
	default:
		log.Error().Err(err).Msg("request read failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request read failed")
	}

	detail, err := client.DetailByID(s.db, req.ClientID)
	if err != nil {
		log.Error().Err(err).Msg("client detail read failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request read failed")
	}

	view := fullView{
		detailView: detailView{
			listEntry:       entryOf(req),
			AdvisorComment:  req.AdvisorComment,
			DirectorComment: req.DirectorComment,
			HasDocument:     len(req.Artifact) > 0,
		},
		DocumentType: req.ArtifactType,
	}

	if detail.Contact != nil {
		view.Contact = &contactView{
			Email:   detail.Contact.Email,
			Phone:   detail.Contact.Phone,
			Address: detail.Contact.Address,
			City:    detail.Contact.City,
			Region:  detail.Contact.Region,
			Country: detail.Contact.Country,
		}
	}

	if detail.Economic != nil {
		view.Economic = &activityView{
			Occupation: detail.Economic.Occupation,
			Profession: detail.Economic.Profession,
		}
	}

	return handler.OK(c, "account request detail", view)
}

// Document streams the attached supporting document.
func (s *Service) Document(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request id")
	}

	payload, tag, err := request.Artifact(s.db, uint64(id))
	switch {
	case err == nil:
	case errors.Is(err, request.ErrRequestNotFound), errors.Is(err, request.ErrArtifactNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "document not found")
	default:
		log.Error().Err(err).Msg("document read failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "document read failed")
	}

	c.Set(fiber.HeaderContentType, tag)

	return c.Send(payload)
}

// Approve resolves a pending request as Approved. No comment is recorded; a
// request that is missing or already resolved reports the same failure.
func (s *Service) Approve(c *fiber.Ctx) error {
	return s.resolve(c, models.StatusApproved)
}

// Reject resolves a pending request as Rejected. The justification comment is
// mandatory and is validated before any storage is touched.
func (s *Service) Reject(c *fiber.Ctx) error {
	return s.resolve(c, models.StatusRejected)
}

func (s *Service) resolve(c *fiber.Ctx, status models.RequestStatus) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request id")
	}

	if status == models.StatusRejected {
		payload := new(resolvePayload)
		if err := c.BodyParser(payload); err != nil {
			return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
		}

		err = request.Reject(s.db, uint64(id), payload.Comment)
	} else {
		// Approvals carry no comment; any body is ignored.
		err = request.Approve(s.db, uint64(id))
	}

	switch {
	case err == nil:
	case errors.Is(err, request.ErrEmptyComment):
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, request.ErrAlreadyResolved):
		return handler.Fail(c, fiber.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("request resolution failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request resolution failed")
	}

	p, _ := auth.FromContext(c)
	log.Info().
		Uint64("request_id", uint64(id)).
		Str("status", string(status)).
		Str("director", p.Email).
		Msg("account request resolved")

	return handler.OK(c, "request "+string(status), fiber.Map{"id": id, "status": status})
}

// parseStatus maps the status query to a RequestStatus; empty means all.
func parseStatus(raw string) (models.RequestStatus, bool) {
	switch raw {
	case "":
		return "", true
	case string(models.StatusPending):
		return models.StatusPending, true
	case string(models.StatusApproved):
		return models.StatusApproved, true
	case string(models.StatusRejected):
		return models.StatusRejected, true
	case string(models.StatusReturned):
		return models.StatusReturned, true
	default:
		return "", false
	}
}

func entryOf(req *models.AccountRequest) listEntry {
	return listEntry{
		ID:          req.ID,
		Reference:   req.Reference,
		ClientName:  req.Client.FullName(),
		Document:    req.Client.DocumentNumber,
		ProductType: req.ProductType,
		Status:      string(req.Status),
		AdvisorName: req.UserRole.User.Name,
		CreatedAt:   req.CreatedAt,
		ResolvedAt:  req.ResolvedAt,
	}
}
