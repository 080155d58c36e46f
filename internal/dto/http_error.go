// File: internal/dto/http_error.go
package dto

// HTTPError is the error envelope every endpoint returns on failure.
// swagger:model dto.HTTPError
type HTTPError struct {
	Message string `json:"message"`
}
