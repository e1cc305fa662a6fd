package http

import (
	"net/http"

	"github.com/avdeenko/bookclub/internal/utils"
	"github.com/avdeenko/bookclub/models"
)

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.VersionResponse{
		Version:     h.services.AppInfoService.GetAppVersion(r.Context()),
		BuildDate:   h.buildInfo.BuildDate(),
		BuildCommit: h.buildInfo.BuildCommit(),
	}, http.StatusOK)
}
