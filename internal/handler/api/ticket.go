package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	reqdto "cinema-ticketing/internal/handler/dto/request"
	resdto "cinema-ticketing/internal/handler/dto/response"
	"cinema-ticketing/internal/handler/httperr"
	"cinema-ticketing/internal/pkg/config"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/commands"
	"cinema-ticketing/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	purchase      commands.PurchaseCommands
	documents     commands.DocumentCommands
	q             queries.TicketQueries
	publicBaseURL string
}

func NewTicketHandler(
	purchase commands.PurchaseCommands,
	documents commands.DocumentCommands,
	q queries.TicketQueries,
	cfg config.Config,
) *TicketHandler {
	return &TicketHandler{
		purchase:      purchase,
		documents:     documents,
		q:             q,
		publicBaseURL: cfg.Server.PublicBaseURL,
	}
}

// @Summary Purchase ticket
// @Description Buy a seat for a session, generate the PDF ticket and mail a copy
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body reqdto.PurchaseTicketRequest true "Purchase request"
// @Success 201 {object} resdto.PurchaseResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /purchase [post]
// @Router /api/tickets [post]
func (h *TicketHandler) Purchase(c *gin.Context) {
	var req reqdto.PurchaseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid JSON in request body", nil)
		return
	}

	result, err := h.purchase.Purchase(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPurchaseResult(result, h.baseURL(c)))
}

// @Summary Get ticket
// @Description Get ticket details by ID
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} resdto.TicketResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondTicket(c, view)
}

// @Summary Download ticket PDF
// @Description Serve the stored ticket document inline
// @Tags tickets
// @Produce application/pdf
// @Param id path int true "Ticket ID"
// @Success 200 {file} binary
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/tickets/{id}/pdf [get]
func (h *TicketHandler) GetDocument(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}
	doc, err := h.q.Document(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, doc.Name))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

// @Summary Regenerate ticket PDF
// @Description Render and store the ticket document again
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} resdto.TicketResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/tickets/{id}/pdf [post]
func (h *TicketHandler) RegenerateDocument(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}
	if _, err := h.documents.Regenerate(c.Request.Context(), id); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondTicket(c, view)
}

func (h *TicketHandler) respondTicket(c *gin.Context, view *queries.TicketView) {
	res, err := resdto.FromTicketView(view, h.baseURL(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// baseURL prefers the configured public URL, otherwise the request's own
// scheme and host.
func (h *TicketHandler) baseURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + c.Request.Host
}

func ticketID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errs.Newf("non-positive ticket id %d", id)
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ticket id", nil)
		return 0, false
	}
	return id, true
}

func abortWithUseCaseError(c *gin.Context, err error) {
	status := httperr.StatusFor(err)

	var verr *commands.ValidationError
	if errs.As(err, &verr) {
		detail := gin.H{}
		if len(verr.Missing) > 0 {
			detail["missing"] = verr.Missing
		}
		if len(verr.Invalid) > 0 {
			detail["invalid"] = verr.Invalid
		}
		httperr.AbortWithError(c, status, err, validationMessage(verr), detail)
		return
	}

	httperr.AbortWithError(c, status, err, publicMessage(err, status), nil)
}

func validationMessage(verr *commands.ValidationError) string {
	if len(verr.Missing) > 0 {
		return "Not all fields were provided. Missing: " + strings.Join(verr.Missing, ", ")
	}
	for _, f := range verr.Invalid {
		if f == "client_email" {
			return "Invalid email address format."
		}
	}
	return "Invalid fields: " + strings.Join(verr.Invalid, ", ")
}

// publicMessage exposes sentinel texts only; anything else is internal.
func publicMessage(err error, status int) string {
	for _, sentinel := range []error{
		commands.ErrCustomerNotFound,
		commands.ErrSessionNotFound,
		commands.ErrSeatNotFound,
		commands.ErrTicketNotFound,
		commands.ErrEmailTaken,
		commands.ErrSeatTaken,
		commands.ErrIntegrityConflict,
		commands.ErrDocumentGeneration,
		queries.ErrTicketNotFound,
		queries.ErrDocumentNotFound,
	} {
		if errs.Is(err, sentinel) {
			return capitalize(sentinel.Error())
		}
	}
	if status == http.StatusInternalServerError {
		return "Internal server error"
	}
	return http.StatusText(status)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
