package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"barorder/internal/commons"
	"barorder/internal/dto"
	"barorder/internal/table"
)

type Controller struct {
	baseURL        string
	maxTableNumber int
	logger         *zap.Logger
}

func NewController(baseURL string, maxTableNumber int, logger *zap.Logger) *Controller {
	return &Controller{baseURL: baseURL, maxTableNumber: maxTableNumber, logger: logger}
}

// HandleTableLink returns the URL to print into a table's QR code.
func (c *Controller) HandleTableLink(w http.ResponseWriter, r *http.Request) {
	number, err := table.ResolveCode(chi.URLParam(r, "number"), c.maxTableNumber)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.TableLinkResponse{
		Table:    number,
		URL:      table.ScanURL(c.baseURL, number),
		MenuPath: table.MenuPath(number),
	}, c.logger)
}
