package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelapp-backend/repository"
	"travelapp-backend/utils"
)

// DefaultPageSize is the page size of every list endpoint.
const DefaultPageSize = 10

// Page is the envelope returned by list endpoints.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// listOptions reads ?page= and ?ordering=. It answers 404 itself and returns
// false when the page number is malformed.
func listOptions(c *gin.Context, pageSize int) (repository.ListOptions, bool) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	number := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondWithError(c, http.StatusNotFound, "Invalid page.")
			return repository.ListOptions{}, false
		}
		number = n
	}
	return repository.ListOptions{
		Page:     repository.Page{Number: number, Size: pageSize},
		Ordering: c.Query("ordering"),
	}, true
}

// respondPage writes one page of results, mapping each row through view.
func respondPage[T any, V any](c *gin.Context, opts repository.ListOptions, result repository.ListResult[T], view func(T) V) {
	number, size := opts.Page.Number, opts.Page.Size
	if number > 1 && int64((number-1)*size) >= result.Count {
		utils.RespondWithError(c, http.StatusNotFound, "Invalid page.")
		return
	}

	page := Page[V]{Count: result.Count, Results: make([]V, 0, len(result.Items))}
	for _, item := range result.Items {
		page.Results = append(page.Results, view(item))
	}
	if int64(number*size) < result.Count {
		next := pageURL(c, number+1)
		page.Next = &next
	}
	if number > 1 {
		previous := pageURL(c, number-1)
		page.Previous = &previous
	}
	c.JSON(http.StatusOK, page)
}

func pageURL(c *gin.Context, number int) string {
	u := *c.Request.URL
	query := u.Query()
	if number <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = query.Encode()
	u.Scheme = requestScheme(c)
	u.Host = c.Request.Host
	return u.String()
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

func absoluteURL(c *gin.Context, path string) string {
	return requestScheme(c) + "://" + c.Request.Host + path
}

func identity[T any](item T) T {
	return item
}
