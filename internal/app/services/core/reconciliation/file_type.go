package reconciliation

import (
	"path"
	"strings"

	"claimsync-service/internal/app/models"
)

// DetectResponseFileType guesses the transaction type from the file name.
// An extension wins over a substring anywhere in the name.
func DetectResponseFileType(fileName string) models.ResponseFileType {
	name := strings.ToLower(path.Base(fileName))

	switch strings.TrimPrefix(path.Ext(name), ".") {
	case "999":
		return models.ResponseFileTypeAcknowledgment
	case "277":
		return models.ResponseFileTypeStatus
	case "835", "era":
		return models.ResponseFileTypeRemittance
	}

	switch {
	case strings.Contains(name, "999"):
		return models.ResponseFileTypeAcknowledgment
	case strings.Contains(name, "277"):
		return models.ResponseFileTypeStatus
	case strings.Contains(name, "835"), strings.Contains(name, "era"):
		return models.ResponseFileTypeRemittance
	}
	return models.ResponseFileTypeUnknown
}
