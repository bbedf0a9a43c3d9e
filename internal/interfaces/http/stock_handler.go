package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/megamind/stockmanager-api/internal/application/dto"
	stockapp "github.com/megamind/stockmanager-api/internal/application/stock"
	"github.com/megamind/stockmanager-api/internal/domain"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/stock"
)

// StockHandler endpoints du grand livre de stock (protégé ; la création de
// mouvement exige en plus le rôle admin ou manager, câblé dans le router).
type StockHandler struct {
	uc              *stockapp.UseCase
	pdfGen          stockapp.CardPDFGenerator
	defaultPageSize int
	carryForward    bool
}

// NewStockHandler construit le handler.
func NewStockHandler(uc *stockapp.UseCase, pdfGen stockapp.CardPDFGenerator, defaultPageSize int, carryForward bool) *StockHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	return &StockHandler{uc: uc, pdfGen: pdfGen, defaultPageSize: defaultPageSize, carryForward: carryForward}
}

// CreateMovement POST /api/stock/movements
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	movement, err := h.uc.CreateMovement(c.Context(), stockapp.MovementInput{
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		Type:           in.Type,
		ActorID:        GetUserID(c),
		SourceDocument: in.SourceDocument,
		Notes:          in.Notes,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// History GET /api/stock/products/:id/history
func (h *StockHandler) History(c *fiber.Ctx) error {
	movements, err := h.uc.GetHistory(c.Params("id"))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}

// StockCard GET /api/stock/products/:id/stock-card
// Fenêtre optionnelle start/end (RFC 3339) ; carry_forward=true amorce le
// solde avec les mouvements antérieurs à la fenêtre.
func (h *StockHandler) StockCard(c *fiber.Ctx) error {
	from, to, err := windowQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start/end invalides (RFC 3339 attendu)"})
	}
	carryForward := c.QueryBool("carry_forward", h.carryForward)

	lines, err := h.uc.GetStockCard(c.Params("id"), from, to, carryForward)
	if err != nil {
		return stockError(c, err)
	}
	out := make([]dto.StockCardLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.StockCardLineResponse{
			Date:           l.Date,
			Type:           l.Type,
			Quantity:       l.Quantity,
			StockBefore:    l.StockBefore,
			StockAfter:     l.StockAfter,
			SourceDocument: l.SourceDocument,
			Notes:          l.Notes,
		})
	}
	return c.JSON(out)
}

// StockCardPDF GET /api/stock/products/:id/stock-card.pdf
func (h *StockHandler) StockCardPDF(c *fiber.Ctx) error {
	from, to, err := windowQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start/end invalides (RFC 3339 attendu)"})
	}
	productID := c.Params("id")

	product, err := h.uc.GetProduct(productID)
	if err != nil {
		return stockError(c, err)
	}
	lines, err := h.uc.GetStockCard(productID, from, to, c.QueryBool("carry_forward", h.carryForward))
	if err != nil {
		return stockError(c, err)
	}
	data, err := h.pdfGen.GenerateStockCardPDF(c.Context(), product, lines)
	if err != nil {
		return stockError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-card-`+productID+`.pdf"`)
	return c.Send(data)
}

// Entries GET /api/stock/entries?start=&end=&page_size=
func (h *StockHandler) Entries(c *fiber.Ctx) error {
	return h.windowReport(c, h.uc.GetEntriesByPeriod)
}

// Exits GET /api/stock/exits?start=&end=&page_size=
func (h *StockHandler) Exits(c *fiber.Ctx) error {
	return h.windowReport(c, h.uc.GetExitsByPeriod)
}

// EntriesByPeriod GET /api/stock/entries/period?kind=&date=&page_size=
// kind : DAY, WEEK ou MONTH (défaut DAY) ; date RFC 3339, défaut maintenant.
func (h *StockHandler) EntriesByPeriod(c *fiber.Ctx) error {
	return h.kindReport(c, h.uc.GetEntriesByPeriodKind)
}

// ExitsByPeriod GET /api/stock/exits/period?kind=&date=&page_size=
func (h *StockHandler) ExitsByPeriod(c *fiber.Ctx) error {
	return h.kindReport(c, h.uc.GetExitsByPeriodKind)
}

func (h *StockHandler) windowReport(c *fiber.Ctx, report func(start, end time.Time, pageSize int) (*stockapp.PeriodReport, error)) error {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start invalide (RFC 3339 attendu)"})
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end invalide (RFC 3339 attendu)"})
	}
	out, err := report(start, end, c.QueryInt("page_size", h.defaultPageSize))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(toPeriodReportResponse(out))
}

func (h *StockHandler) kindReport(c *fiber.Ctx, report func(kind stock.PeriodKind, ref time.Time, pageSize int) (*stockapp.PeriodReport, error)) error {
	kind := stock.PeriodKind(c.Query("kind", string(stock.PeriodDay)))

	var ref time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		var err error
		ref, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date invalide (RFC 3339 attendu)"})
		}
	}

	out, err := report(kind, ref, c.QueryInt("page_size", h.defaultPageSize))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(toPeriodReportResponse(out))
}

func stockError(c *fiber.Ctx, err error) error {
	var insufficientErr *domain.InsufficientStockError
	if errors.As(err, &insufficientErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficientErr.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "données de mouvement invalides"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Quantity:       m.Quantity,
		Type:           m.Type,
		MovementDate:   m.MovementDate,
		SourceDocument: m.SourceDocument,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
	}
}

func toMovementResponses(movements []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toPeriodReportResponse(r *stockapp.PeriodReport) dto.PeriodReportResponse {
	return dto.PeriodReportResponse{
		Movements:         toMovementResponses(r.Movements),
		Period:            dto.PeriodBoundsResponse{Start: r.Period.Start, End: r.Period.End},
		PageSize:          r.PageSize,
		TotalElements:     r.TotalElements,
		TotalPages:        r.TotalPages,
		HasNextPeriod:     r.HasNextPeriod,
		HasPreviousPeriod: r.HasPreviousPeriod,
		NextPeriod:        dto.PeriodBoundsResponse{Start: r.NextPeriod.Start, End: r.NextPeriod.End},
		PreviousPeriod:    dto.PeriodBoundsResponse{Start: r.PreviousPeriod.Start, End: r.PreviousPeriod.End},
	}
}

// windowQuery lit start/end optionnels (RFC 3339).
func windowQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("start"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := c.Query("end"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
