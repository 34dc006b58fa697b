package render

import (
	"encoding/json"

	"github.com/seu-repo/brace-tracker/internal/domain"
)

// JSON renders the machine-readable report payload.
func JSON(reports []domain.WeeklyReport) (string, error) {
	out, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
