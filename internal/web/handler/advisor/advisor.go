// Package advisor exposes the front-line endpoints under /api/advisor:
// client lookup by national document, account request submission with a
// supporting document, and the advisor's own worklist.
package advisor

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/auth"
	"github.com/GoBancaUno/GoBancaUno/internal/config"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/client"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/request"
	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler"
)

const (
	// Path is the base path of the advisor endpoints.
	Path = "/api/advisor"
)

// Service is the advisor handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the advisor handler.
var Handler = Service{}

// Init initializes the advisor handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Use(authService.Verify(), auth.RequireAnyRole(auth.RoleAdvisor))

		router.Get("/clients/:document", s.ClientByDocument)
		router.Post("/requests", s.CreateRequest)
		router.Get("/requests", s.MyRequests)
	})

	return nil
}

// ClientByDocument looks up a client by national document number, joined with
// the contact and economic side tables for the capture form.
func (s *Service) ClientByDocument(c *fiber.Ctx) error {
	found, err := client.ByDocument(s.db, c.Params("document"))
	switch {
	case err == nil:
	case errors.Is(err, client.ErrClientNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "client not found")
	case errors.Is(err, client.ErrDocumentEmpty):
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("client lookup failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "client lookup failed")
	}

	detail, err := client.DetailByID(s.db, found.ID)
	if err != nil {
		log.Error().Err(err).Msg("client detail read failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "client lookup failed")
	}

	return handler.OK(c, "client found", clientViewOf(detail))
}

// CreateRequest opens a new account request for a client. The body is
// multipart: a client document number, an optional comment, and the
// supporting document file. The request is inserted Pending and the document
// attached in a follow-up write that only succeeds while the request is fresh.
func (s *Service) CreateRequest(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, auth.ErrMissingCredential.Error())
	}

	document := strings.TrimSpace(c.FormValue("client_document"))
	if document == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "client_document is required")
	}

	found, err := client.ByDocument(s.db, document)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrClientNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "client not found")
	default:
		log.Error().Err(err).Msg("client lookup failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "client lookup failed")
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "supporting document is required")
	}

	tag, err := checkUpload(fileHeader.Filename, fileHeader.Size)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("upload open failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "upload failed")
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		log.Error().Err(err).Msg("upload read failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "upload failed")
	}
	if int64(len(payload)) > maxUploadSize {
		return handler.Fail(c, fiber.StatusBadRequest, errUploadTooLarge.Error())
	}

	req, err := request.Create(s.db, found.ID, p.BindingID, c.FormValue("comment"))
	if err != nil {
		log.Error().Err(err).Msg("request creation failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request creation failed")
	}

	if err := request.Attach(s.db, req.ID, payload, tag); err != nil {
		log.Error().Err(err).Uint64("request_id", req.ID).Msg("document attach failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "document attach failed")
	}

	return handler.Created(c, "account request submitted", fiber.Map{
		"id":        req.ID,
		"reference": req.Reference,
		"status":    req.Status,
	})
}

// MyRequests lists the requests submitted under the calling advisor's current
// role binding, newest first.
func (s *Service) MyRequests(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, auth.ErrMissingCredential.Error())
	}

	requests, err := request.ListByBinding(s.db, p.BindingID)
	if err != nil {
		log.Error().Err(err).Msg("request listing failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request listing failed")
	}

	views := make([]requestView, 0, len(requests))
	for i := range requests {
		views = append(views, requestViewOf(&requests[i]))
	}

	return handler.OK(c, "submitted requests", views)
}

func requestViewOf(req *models.AccountRequest) requestView {
	return requestView{
		ID:          req.ID,
		Reference:   req.Reference,
		ClientName:  req.Client.FullName(),
		ProductType: req.ProductType,
		Status:      string(req.Status),
		Comment:     req.AdvisorComment,
		HasDocument: len(req.Artifact) > 0,
		CreatedAt:   req.CreatedAt,
		ResolvedAt:  req.ResolvedAt,
	}
}

func clientViewOf(detail *client.Detail) clientView {
	view := clientView{
		ID:             detail.Client.ID,
		DocumentNumber: detail.Client.DocumentNumber,
		DocumentType:   detail.Client.DocumentType,
		FullName:       detail.Client.FullName(),
		Gender:         detail.Client.Gender,
		Nationality:    detail.Client.Nationality,
		MaritalStatus:  detail.Client.MaritalStatus,
	}

	if !detail.Client.BirthDate.IsZero() {
		view.BirthDate = detail.Client.BirthDate.Format("2006-01-02")
	}

	if detail.Contact != nil {
		view.Contact = &fields{
			Email:   detail.Contact.Email,
			Phone:   detail.Contact.Phone,
			Address: detail.Contact.Address,
			City:    detail.Contact.City,
			Region:  detail.Contact.Region,
			Country: detail.Contact.Country,
		}
	}

	if detail.Economic != nil {
		view.Economic = &work{
			Occupation: detail.Economic.Occupation,
			Profession: detail.Economic.Profession,
		}
	}

	return view
}
