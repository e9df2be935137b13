package httpapi

import (
	"net/http"
	"strings"

	"dental-voice-agent/internal/calls"
	"dental-voice-agent/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON
// or render a view.
type Handlers struct {
	Initiator  *calls.Initiator
	Reconciler *calls.Reconciler
	Store      *calls.Store
	Profile    *calls.CurrentProfile
}

// --- JSON API ---

type createCallRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// CreateCall starts an outbound call using the current profile.
func (h Handlers) CreateCall(c *gin.Context) {
	var req createCallRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PhoneNumber) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	id, err := h.Initiator.Initiate(c.Request.Context(), req.PhoneNumber, h.Profile.Get())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "call_id": id})
}

// GetCall reconciles one call against the remote platform and returns the
// fresh analysis.
func (h Handlers) GetCall(c *gin.Context) {
	analysis, err := h.Reconciler.Reconcile(c.Request.Context(), c.Param("call_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// ListCalls returns every known record, newest first.
func (h Handlers) ListCalls(c *gin.Context) {
	records := h.Store.List()
	calls.SortNewestFirst(records)
	c.JSON(http.StatusOK, records)
}

func (h Handlers) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if calls.IsValidation(err) {
		status = http.StatusBadRequest
	}
	logger.FromGin(c).Error("call request failed", "path", c.FullPath(), "err", err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// --- Server-rendered views ---

func (h Handlers) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"profile": h.Profile.Get()})
}

func (h Handlers) CallsPage(c *gin.Context) {
	records := h.Store.List()
	calls.SortNewestFirst(records)
	c.HTML(http.StatusOK, "calls.html", gin.H{"calls": records})
}

// CallDetailsPage always reconciles first so the view shows the latest remote
// state; a record missing locally is created by that reconciliation.
func (h Handlers) CallDetailsPage(c *gin.Context) {
	callID := c.Param("call_id")
	if _, err := h.Reconciler.Reconcile(c.Request.Context(), callID); err != nil {
		logger.FromGin(c).Error("call details fetch failed", "call_id", callID, "err", err)
		c.HTML(http.StatusOK, "error.html", gin.H{"error": err.Error()})
		return
	}
	rec, ok := h.Store.Get(callID)
	if !ok {
		// Reconcile self-heals the record, so this should not happen.
		c.HTML(http.StatusOK, "error.html", gin.H{"error": "call record not found"})
		return
	}
	c.HTML(http.StatusOK, "call_details.html", gin.H{"call": rec})
}

// CreateCallForm handles the web form: it replaces the current profile with
// the submitted values, starts the call, and redirects to the detail view.
func (h Handlers) CreateCallForm(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusOK, "index.html", gin.H{"error": "invalid form", "profile": h.Profile.Get()})
		return
	}
	form := c.Request.PostForm

	profile := make(map[string]string, len(calls.ProfileFields))
	for _, f := range calls.ProfileFields {
		if !form.Has(f) {
			continue
		}
		profile[f] = form.Get(f)
	}
	phoneNumber := form.Get("phone_number")

	// A partial submission must not replace the current profile.
	if err := calls.ValidateProfile(profile); err != nil {
		c.HTML(http.StatusOK, "index.html", gin.H{"error": err.Error(), "profile": h.Profile.Get()})
		return
	}
	h.Profile.Set(profile)

	id, err := h.Initiator.Initiate(c.Request.Context(), phoneNumber, profile)
	if err != nil {
		logger.FromGin(c).Error("form call initiation failed", "err", err)
		c.HTML(http.StatusOK, "index.html", gin.H{"error": err.Error(), "profile": h.Profile.Get()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/calls/"+id)
}
