package dto

type ErrorResponse struct {
	ErrorId string                 `json:"error_id"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}
