package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
)

type stubMovieService struct {
	ports.MovieService
	listFn   func(ctx context.Context, page domain.Page) (*ports.ListResult[*domain.Movie], error)
	createFn func(ctx context.Context, m domain.Movie) (*domain.Movie, error)
	updateFn func(ctx context.Context, id int64, p domain.MoviePatch) (*domain.Movie, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubMovieService) ListMovies(ctx context.Context, page domain.Page) (*ports.ListResult[*domain.Movie], error) {
	return s.listFn(ctx, page)
}

func (s *stubMovieService) CreateMovie(ctx context.Context, m domain.Movie) (*domain.Movie, error) {
	return s.createFn(ctx, m)
}

func (s *stubMovieService) UpdateMovie(ctx context.Context, id int64, p domain.MoviePatch) (*domain.Movie, error) {
	return s.updateFn(ctx, id, p)
}

func (s *stubMovieService) DeleteMovie(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func TestMovieHandler_List(t *testing.T) {
	var seen domain.Page
	stub := &stubMovieService{
		listFn: func(ctx context.Context, page domain.Page) (*ports.ListResult[*domain.Movie], error) {
			seen = page
			return &ports.ListResult[*domain.Movie]{
				Items: []*domain.Movie{{ID: 3, Title: "Alien", Year: 1979}},
				Total: 41, Page: 3, Limit: 20, TotalPages: 3,
			}, nil
		},
	}

	c, rec := newJSONContext(http.MethodGet, "/movies?page=3", "")
	if err := NewMovieHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if seen.Page != 3 || seen.Limit != 0 {
		t.Fatalf("unexpected page passed to service: %+v", seen)
	}

	var resp struct {
		Data       []domain.Movie `json:"data"`
		Pagination pagination     `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Title != "Alien" {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if resp.Pagination != (pagination{Total: 41, Page: 3, Limit: 20, TotalPages: 3}) {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestMovieHandler_List_BadQuery(t *testing.T) {
	stub := &stubMovieService{}
	for _, target := range []string{"/movies?page=abc", "/movies?limit=1.5", "/movies?page=1000001", "/movies?page=9223372036854775807"} {
		c, _ := newJSONContext(http.MethodGet, target, "")
		if err := NewMovieHandler(stub).List(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", target, err)
		}
	}
}

func TestMovieHandler_Create(t *testing.T) {
	stub := &stubMovieService{
		createFn: func(ctx context.Context, m domain.Movie) (*domain.Movie, error) {
			if m.Title != "Dune" || m.Year != 1984 || m.DirectorID == nil || *m.DirectorID != 1 {
				t.Fatalf("unexpected movie: %+v", m)
			}
			m.ID = 1
			return &m, nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/movies", `{"title":"Dune","year":1984,"director_id":1}`)
	if err := NewMovieHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var got domain.Movie
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != 1 || got.Title != "Dune" {
		t.Fatalf("unexpected movie: %+v", got)
	}
}

func TestMovieHandler_Create_Invalid(t *testing.T) {
	stub := &stubMovieService{}
	for _, body := range []string{`{"year":1984}`, `{"title":"Dune"}`, `{"title":"Dune","year":1984,"director_id":0}`, `{"title":"Dune","year":"1984"}`} {
		c, _ := newJSONContext(http.MethodPost, "/movies", body)
		if err := NewMovieHandler(stub).Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", body, err)
		}
	}
}

func TestMovieHandler_Update_Partial(t *testing.T) {
	stub := &stubMovieService{
		updateFn: func(ctx context.Context, id int64, p domain.MoviePatch) (*domain.Movie, error) {
			if id != 7 || p.Title != nil || p.Year == nil || *p.Year != 2021 || p.DirectorID != nil {
				t.Fatalf("unexpected update: id=%d patch=%+v", id, p)
			}
			return &domain.Movie{ID: 7, Title: "Dune", Year: 2021}, nil
		},
	}

	c, rec := newJSONContext(http.MethodPut, "/movies/7", `{"year":2021}`)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := NewMovieHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMovieHandler_BadID(t *testing.T) {
	stub := &stubMovieService{}
	for _, id := range []string{"abc", "0", "-4", "1.5"} {
		c, _ := newJSONContext(http.MethodDelete, "/movies/"+id, "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		if err := NewMovieHandler(stub).Delete(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", id, err)
		}
	}
}

func TestMovieHandler_Delete(t *testing.T) {
	stub := &stubMovieService{
		deleteFn: func(ctx context.Context, id int64) error {
			if id == 404 {
				return domain.ErrMovieNotFound
			}
			return nil
		},
	}

	c, rec := newJSONContext(http.MethodDelete, "/movies/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := NewMovieHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newJSONContext(http.MethodDelete, "/movies/404", "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	if err := NewMovieHandler(stub).Delete(c); !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

type stubDirectorService struct {
	ports.DirectorService
	createFn func(ctx context.Context, d domain.Director) (*domain.Director, error)
}

func (s *stubDirectorService) CreateDirector(ctx context.Context, d domain.Director) (*domain.Director, error) {
	return s.createFn(ctx, d)
}

func TestDirectorHandler_Create_OptionalBirthYear(t *testing.T) {
	stub := &stubDirectorService{
		createFn: func(ctx context.Context, d domain.Director) (*domain.Director, error) {
			d.ID = 1
			return &d, nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/directors", `{"name":"David Lynch"}`)
	if err := NewDirectorHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["name"] != "David Lynch" || got["birth_year"] != nil {
		t.Fatalf("unexpected director: %+v", got)
	}

	c, _ = newJSONContext(http.MethodPost, "/directors", `{"birth_year":1946}`)
	if err := NewDirectorHandler(stub).Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}
}
