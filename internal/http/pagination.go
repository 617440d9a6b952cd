package http

import "strconv"

// Pagination is a normalized page/limit pair with its derived offset.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ResolvePagination coerces page/limit query values into a bounded
// Pagination. Missing or non-numeric values fall back to page 1 and
// limit 10; a limit outside (0, maxLimit] is forced to maxLimit; page 0
// resets to 1. Negative pages pass through untouched and surface as a
// storage rejection downstream.
func ResolvePagination(pageStr, limitStr string, maxLimit int) Pagination {
	page := 1
	if pageStr != "" {
		if v, err := strconv.Atoi(pageStr); err == nil {
			page = v
		}
	}

	limit := 10
	if limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil {
			limit = v
		}
	}

	if limit > maxLimit || limit <= 0 {
		limit = maxLimit
	}
	if page == 0 {
		page = 1
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: page*limit - limit,
	}
}
