package models

type ResponseStatus string

const (
	StatusSuccess ResponseStatus = "SUCCESS"
	StatusFailed  ResponseStatus = "FAILED"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  ResponseStatus `json:"status"`
	Message string         `json:"message"`
	Data    any            `json:"data"`
}
