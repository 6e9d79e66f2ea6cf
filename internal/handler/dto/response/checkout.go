package response

import (
	"cart-engine/internal/usecase/commands"
)

type StageResponse struct {
	RedirectURL string `json:"redirect_url"`
}

func FromStageResult(r *commands.StageResult) *StageResponse {
	return &StageResponse{RedirectURL: r.RedirectURL}
}
