package utils

import (
	"medimarket-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
	"strings"
)

func BuildCatalogQuery(r *http.Request) *requests.CatalogQuery {
	query := r.URL.Query()
	refresh, _ := strconv.ParseBool(query.Get("refresh"))
	return &requests.CatalogQuery{
		Search:  strings.TrimSpace(query.Get("search")),
		Status:  strings.TrimSpace(query.Get("status")),
		Sort:    strings.TrimSpace(query.Get("sort")),
		Order:   strings.ToLower(strings.TrimSpace(query.Get("order"))),
		Refresh: refresh,
	}
}

func ParseUintParam(value string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(value), 10, 64)
}
