package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"impactolocal-backend/internal/service"
)

// pathID parses the {id}-style path variable as an int32.
func pathID(r *http.Request, name string) (int32, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func parseInt32(raw string) (int32, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// pagingFrom reads the optional page/page_size query parameters. Absent
// parameters mean the caller wants a plain list, so nil is returned.
func pagingFrom(r *http.Request) *service.Paging {
	q := r.URL.Query()
	if q.Get("page") == "" && q.Get("page_size") == "" {
		return nil
	}
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	size, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	return &service.Paging{Page: int32(page), PageSize: int32(size)}
}
