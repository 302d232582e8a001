package types

// Filter carries the list-endpoint query contract: search, column sorting,
// whitelisted filters and pagination.
//
// /members?search=Silva&sort[joined_at]=desc&filter[category]=tuno&limit=10&offset=0&withPagination=true
type Filter struct {
	Search         string                 `json:"search"`
	Sort           map[string]string      `json:"sort"`
	Filter         map[string]interface{} `json:"filter"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"withPagination"`
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}
