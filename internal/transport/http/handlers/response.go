package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

// respondOutcome renders an Outcome with the status registered for its kind.
func respondOutcome(c *gin.Context, out domain.Outcome) {
	c.JSON(out.HTTPStatus(), out)
}

// respondError renders err through the kind table. Infrastructure failures are
// attached to the context so the error middleware logs them.
func respondError(c *gin.Context, err error) {
	out := domain.OutcomeFromError(err)
	if out.Kind == domain.KindInfrastructure {
		_ = c.Error(err)
	}
	respondOutcome(c, out)
}

// respondBadRequest renders a binding or validation failure.
func respondBadRequest(c *gin.Context, err error) {
	respondOutcome(c, domain.Failure(domain.KindBadRequest, validationDetails(err)))
}

func validationDetails(err error) []string {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return []string{"request body is required"}
	}
	var details []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			details = append(details, line)
		}
	}
	return details
}
