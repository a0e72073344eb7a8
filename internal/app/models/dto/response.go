package dto

// DetailResponse represents a simple message response for API endpoints
type DetailResponse struct {
	Detail string `json:"detail"`
}

// NewDetailResponse creates a message-only response
func NewDetailResponse(detail string) DetailResponse {
	return DetailResponse{Detail: detail}
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}
