package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcus102/AGROVIE-sub002/internal/dto"
	"github.com/marcus102/AGROVIE-sub002/internal/service"
	"github.com/marcus102/AGROVIE-sub002/internal/wizard"
)

// WizardHandler drives the mission creation wizard. All endpoints are
// stateless: the client sends its draft, the server validates, prices and
// returns the updated draft plus the resulting step.
type WizardHandler struct {
	machine *wizard.Machine
	pricing *service.PricingService
}

// NewWizardHandler creates a new handler.
func NewWizardHandler(machine *wizard.Machine, pricing *service.PricingService) *WizardHandler {
	return &WizardHandler{machine: machine, pricing: pricing}
}

// ValidateStep handles POST /api/wizard/validate. It reports per-field
// errors without moving the wizard.
func (h *WizardHandler) ValidateStep(c *gin.Context) {
	var req dto.WizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step and draft are required"})
		return
	}

	step := wizard.Step(req.Step)
	if !step.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown wizard step"})
		return
	}

	errs := h.machine.ValidateStep(step, &req.Draft)
	c.JSON(http.StatusOK, dto.WizardStepResponse{
		Step:   req.Step,
		Errors: errs,
	})
}

// Advance handles POST /api/wizard/advance. Leaving the pricing inputs step
// triggers the price calculation and stamps original_price on the draft.
func (h *WizardHandler) Advance(c *gin.Context) {
	var req dto.WizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step and draft are required"})
		return
	}

	step := wizard.Step(req.Step)
	if !step.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown wizard step"})
		return
	}

	next, errs, err := h.machine.Advance(c.Request.Context(), step, &req.Draft)
	if err != nil {
		c.Error(err)
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, dto.WizardStepResponse{
			Step:   req.Step,
			Errors: errs,
		})
		return
	}

	c.JSON(http.StatusOK, dto.WizardStepResponse{
		Step:  int(next),
		Draft: &req.Draft,
	})
}

// Retreat handles POST /api/wizard/retreat. Going back never validates and
// never drops draft data.
func (h *WizardHandler) Retreat(c *gin.Context) {
	var req dto.WizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step and draft are required"})
		return
	}

	step := wizard.Step(req.Step)
	if !step.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown wizard step"})
		return
	}

	c.JSON(http.StatusOK, dto.WizardStepResponse{
		Step:  int(h.machine.Retreat(step)),
		Draft: &req.Draft,
	})
}

// Jump handles POST /api/wizard/jump. Direct navigation is only allowed
// from the review step back to an earlier step for editing.
func (h *WizardHandler) Jump(c *gin.Context) {
	var req dto.WizardJumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from, to and draft are required"})
		return
	}

	target, err := h.machine.JumpTo(wizard.Step(req.From), wizard.Step(req.To))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.WizardStepResponse{
		Step:  int(target),
		Draft: &req.Draft,
	})
}

// Quote handles POST /api/wizard/quote. It recalculates the price for the
// draft without advancing the wizard, e.g. after an edit on review.
func (h *WizardHandler) Quote(c *gin.Context) {
	var req dto.PriceQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "draft is required"})
		return
	}

	price, err := h.pricing.QuotePrice(c.Request.Context(), &req.Draft)
	if err != nil {
		c.Error(err)
		return
	}

	req.Draft.SetOriginalPrice(price)
	c.JSON(http.StatusOK, dto.PriceQuoteResponse{
		OriginalPrice: price,
		FinalPrice:    req.Draft.FinalPrice,
	})
}

// AdjustPrice handles POST /api/wizard/adjust. The manual adjustment is
// applied on top of the computed price; final_price is re-derived.
func (h *WizardHandler) AdjustPrice(c *gin.Context) {
	var req dto.AdjustPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "draft is required"})
		return
	}

	if req.Draft.OriginalPrice == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "price must be calculated before it can be adjusted",
		})
		return
	}

	req.Draft.SetAdjustmentPrice(req.Adjustment)
	c.JSON(http.StatusOK, dto.WizardStepResponse{
		Step:  int(wizard.StepReview),
		Draft: &req.Draft,
	})
}
