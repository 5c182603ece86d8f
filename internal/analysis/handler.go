package analysis

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"brea-backend/internal/encode"
	"brea-backend/internal/llm"
	"brea-backend/internal/server/respond"
)

// Handler wires HTTP handlers to the orchestrator.
type Handler struct {
	Orch *Orchestrator
}

// NewHandler constructs a Handler.
func NewHandler(orch *Orchestrator) *Handler {
	return &Handler{Orch: orch}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analysis", h.submit)
	rg.GET("/analysis", h.current)
	rg.DELETE("/analysis", h.reset)
}

type submitRequest struct {
	Input string `json:"input"`
}

func (h *Handler) submit(c *gin.Context) {
	in, err := h.readInput(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	result, err := h.Orch.Submit(c.Request.Context(), in)
	c.Set("analysisState", string(h.Orch.State()))
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	respond.OK(c, gin.H{
		"state":  StateSuccess,
		"result": result,
	})
}

// readInput builds the submission union from either a multipart form
// (fields: input, file) or a JSON body. A present file wins over text,
// matching the form's exclusivity rule.
func (h *Handler) readInput(c *gin.Context) (Input, error) {
	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/") {
		var req submitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return Input{}, err
		}
		return TextInput(strings.TrimSpace(req.Input)), nil
	}

	text := strings.TrimSpace(c.PostForm("input"))
	fileHeader, err := c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return Input{}, err
	}
	if fileHeader == nil {
		return TextInput(text), nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return Input{}, err
	}
	// The handle stays open for the orchestrator's encoder; gin closes
	// multipart temp files when the request ends.
	mediaType := fileHeader.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	return TextInput(text).WithFile(f, mediaType), nil
}

func (h *Handler) writeSubmitError(c *gin.Context, err error) {
	var infErr *llm.InferenceError
	var parseErr *ParseError
	var encErr *encode.EncodingError

	switch {
	case errors.Is(err, ErrSubscriptionRequired):
		respond.Error(c, http.StatusPaymentRequired, ErrorCodeSubscription, "An active subscription is required to run analyses.", nil)
	case errors.Is(err, ErrEmptyInput):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "input text or file is required", nil)
	case errors.Is(err, ErrBusy):
		respond.Error(c, http.StatusConflict, ErrorCodeBusy, "An analysis is already in progress.", nil)
	case errors.Is(err, ErrSuperseded):
		respond.Error(c, http.StatusConflict, ErrorCodeBusy, "The analysis was superseded by a newer request.", nil)
	case errors.As(err, &encErr):
		respond.Error(c, http.StatusBadRequest, ErrorCodeEncoding, h.Orch.ErrorMessage(), nil)
	case errors.As(err, &infErr):
		respond.Error(c, http.StatusBadGateway, ErrorCodeInference, h.Orch.ErrorMessage(), []map[string]string{
			{"field": "inference", "issue": infErr.Code},
		})
	case errors.As(err, &parseErr):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeParse, h.Orch.ErrorMessage(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to run analysis", nil)
	}
}

func (h *Handler) current(c *gin.Context) {
	state := h.Orch.State()
	resp := gin.H{"state": state}
	if result, ok := h.Orch.Result(); ok {
		resp["result"] = result
	}
	if msg := h.Orch.ErrorMessage(); msg != "" {
		resp["error"] = msg
	}
	respond.OK(c, resp)
}

func (h *Handler) reset(c *gin.Context) {
	h.Orch.Reset()
	c.Status(http.StatusNoContent)
}
