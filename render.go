package communitysite

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// pageDocument is the contract with the client-side renderer: a named view
// component plus its view-model props. Every page endpoint, error pages
// included, emits one of these.
type pageDocument struct {
	Component string   `json:"component"`
	Props     echo.Map `json:"props"`
}

// page writes a page document with HTTP 200.
func page(c echo.Context, component string, props echo.Map) error {
	return pageStatus(c, http.StatusOK, component, props)
}

// pageStatus writes a page document with a specific HTTP status code.
func pageStatus(c echo.Context, code int, component string, props echo.Map) error {
	if props == nil {
		props = echo.Map{}
	}
	return c.JSON(code, pageDocument{Component: component, Props: props})
}

// notFoundPage is the single outcome for both missing rows and content the
// visibility policy hides from the viewer.
func notFoundPage(c echo.Context) error {
	return pageStatus(c, http.StatusNotFound, "errors/not-found", nil)
}

// forbiddenPage refuses a write the viewer is not authorized for.
func forbiddenPage(c echo.Context) error {
	return pageStatus(c, http.StatusForbidden, "errors/forbidden", nil)
}

// validationFailed surfaces field-keyed messages without applying the request.
func validationFailed(c echo.Context, errs ValidationErrors) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": errs})
}

// conflictPage refuses an operation that would break referential integrity.
func conflictPage(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, echo.Map{"error": message})
}
