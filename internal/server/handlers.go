package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/paginate"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrEmpty):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	}
	var le *catalog.LoadError
	if errors.As(err, &le) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// handlePing is answered here and never reaches the engine.
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("pong"))
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	item, err := s.Engine.ResolveQuery(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type itemsResponse struct {
	Total    int        `json:"total"`
	PageSize int        `json:"page_size"`
	Pages    [][]string `json:"pages"`
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	size := paginate.DefaultPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, errors.New("page_size must be a positive integer"))
			return
		}
		size = n
	}

	pages, total, err := s.Engine.ListPages(size)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	resp := itemsResponse{Total: total, PageSize: size, Pages: [][]string{}}
	for group := range pages {
		resp.Pages = append(resp.Pages, group)
	}
	writeJSON(w, http.StatusOK, resp)
}

type parseResponse struct {
	Token string  `json:"token"`
	Value float64 `json:"value"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	writeJSON(w, http.StatusOK, parseResponse{Token: token, Value: s.Engine.PriceTokenToNumber(token)})
}

type reloadResponse struct {
	Loaded int `json:"loaded"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.Reload == nil {
		writeError(w, http.StatusNotImplemented, errors.New("reload is not configured"))
		return
	}
	n, err := s.Reload(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Loaded: n})
}
