package marketplace

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/ccplugins/pluginserve/pkg/httputil"
	"github.com/ccplugins/pluginserve/pkg/observability"
)

// maxNameLength bounds plugin and element names accepted over HTTP.
const maxNameLength = 256

var pluginNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Handlers provides HTTP handlers for the plugin marketplace API.
type Handlers struct {
	service *Service
	metrics *observability.Metrics
}

// NewHandlers creates new marketplace handlers. metrics may be nil.
func NewHandlers(service *Service, metrics *observability.Metrics) *Handlers {
	return &Handlers{service: service, metrics: metrics}
}

// RegisterRoutes registers all marketplace routes.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/plugins", h.ListPlugins).Methods("GET")
	r.HandleFunc("/api/v1/plugins/{name}", h.DescribePlugin).Methods("GET")
	r.HandleFunc("/api/v1/plugins/{name}/load-elements", h.LoadElements).Methods("POST")
}

// ElementRequest is one element reference in a load request. The legacy
// element_type key is accepted as an alias for type.
type ElementRequest struct {
	Type        string `json:"type,omitempty"`
	ElementType string `json:"element_type,omitempty"`
	Name        string `json:"name"`
}

func (e *ElementRequest) category() string {
	if e.Type != "" {
		return e.Type
	}
	return e.ElementType
}

// LoadElementsRequest is the body of POST /api/v1/plugins/{name}/load-elements.
type LoadElementsRequest struct {
	Elements []ElementRequest `json:"elements"`
}

// Validate checks the request before any filesystem access happens.
func (req *LoadElementsRequest) Validate() error {
	for _, element := range req.Elements {
		if _, err := ParseCategory(element.category()); err != nil {
			return err
		}
		if element.Name == "" {
			return fmt.Errorf("element name cannot be empty")
		}
		if len(element.Name) > maxNameLength {
			return fmt.Errorf("element name cannot exceed %d characters", maxNameLength)
		}
	}
	return nil
}

// LoadElementsResponse is the body returned for a load request.
type LoadElementsResponse struct {
	PluginName string          `json:"plugin_name"`
	Elements   []LoadedElement `json:"elements"`
}

// ListPlugins handles GET /api/v1/plugins.
func (h *Handlers) ListPlugins(w http.ResponseWriter, r *http.Request) {
	plugins, err := h.service.ListPlugins(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, plugins)
}

// DescribePlugin handles GET /api/v1/plugins/{name}.
func (h *Handlers) DescribePlugin(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := validatePluginName(name); err != nil {
		httputil.WriteValidationError(w, err.Error())
		return
	}

	detail, err := h.service.DescribePlugin(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrPluginNotFound) {
			httputil.WriteNotFoundError(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, detail)
}

// LoadElements handles POST /api/v1/plugins/{name}/load-elements. Unknown
// plugins and unresolvable elements are not errors: they simply produce an
// empty or shorter element list.
func (h *Handlers) LoadElements(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := validatePluginName(name); err != nil {
		httputil.WriteValidationError(w, err.Error())
		return
	}

	var req LoadElementsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteValidationError(w, err.Error())
		return
	}

	refs := make([]ElementRef, 0, len(req.Elements))
	for _, element := range req.Elements {
		refs = append(refs, ElementRef{
			Category: Category(element.category()),
			Name:     element.Name,
		})
	}

	elements, err := h.service.LoadElements(r.Context(), name, refs)
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			httputil.WriteValidationError(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	if h.metrics != nil {
		for _, element := range elements {
			h.metrics.ElementsLoadedTotal.WithLabelValues(string(element.Category)).Inc()
		}
	}

	httputil.WriteSuccess(w, LoadElementsResponse{
		PluginName: name,
		Elements:   elements,
	})
}

// validatePluginName enforces the name format accepted over HTTP. The core
// lookup itself tolerates arbitrary names; this keeps obviously malformed
// input from reaching the filesystem layer at all.
func validatePluginName(name string) error {
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("plugin name cannot exceed %d characters", maxNameLength)
	}
	if !pluginNamePattern.MatchString(name) {
		return fmt.Errorf("plugin name can only contain alphanumeric characters, hyphens, and underscores")
	}
	return nil
}
