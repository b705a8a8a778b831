package loans

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"verde-backend/internal/platform/metrics"
)

type Handler struct{ svc *Service }

// RegisterRoutes wires the two surfaces: intake (public) and records
// (behind the passphrase gate).
func RegisterRoutes(public, protected gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// intake surface
	public.POST("/loans", h.CreateLoan)
	public.GET("/rules", h.GetRules)

	// records surface
	protected.GET("/loans", h.ListLoans)
	protected.PUT("/loans", h.ReconcileLoans)
	protected.PUT("/loans/:id", h.UpdateLoan)
}

// POST /loans
func (h *Handler) CreateLoan(c *gin.Context) {
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		metrics.IntakeRejections.Inc()
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	metrics.IntakeSubmissions.Inc()
	c.Header("Location", "/api/v1/loans/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

// GET /loans?name=&vehicle=&status=open,overdue
func (h *Handler) ListLoans(c *gin.Context) {
	statuses, err := ParseStatuses(c.Query("status"))
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	f := Filter{
		Name:     c.Query("name"),
		Vehicle:  c.Query("vehicle"),
		Statuses: statuses,
	}

	res, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// PUT /loans/:id
func (h *Handler) UpdateLoan(c *gin.Context) {
	var edit LoanEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}

	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), edit)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// PUT /loans — write back an edited grid snapshot
func (h *Handler) ReconcileLoans(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}

	res, err := h.svc.Reconcile(c.Request.Context(), req.Rows)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /rules
func (h *Handler) GetRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": RulesText})
}

// ---------- helpers ----------

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(err error) errorDTO {
	var msg string
	var code Code = CodeInternal
	if de, ok := err.(*DomainError); ok {
		code, msg = de.Code, de.Message
	} else {
		msg = err.Error()
	}
	return errorBody(code, msg)
}
