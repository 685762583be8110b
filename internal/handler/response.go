package handler

import "github.com/labstack/echo/v4"

// envelope is the uniform JSON response body: status is "success" for 2xx,
// "error" for client failures, "failed" for server failures.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func statusWord(code int) string {
	switch {
	case code >= 500:
		return "failed"
	case code >= 400:
		return "error"
	default:
		return "success"
	}
}

// respond writes a success envelope carrying data.
func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Status: statusWord(code), Data: data})
}

// respondMsg writes an envelope carrying a message and optional data.
func respondMsg(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, envelope{Status: statusWord(code), Message: msg, Data: data})
}

// fail writes an error envelope with a human-readable message.  Raw store
// or driver error text is never passed here; 5xx messages stay generic.
func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, envelope{Status: statusWord(code), Message: msg})
}
