package handler

import (
	"time"

	"github.com/cinevault/movies-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username"  validate:"required"`
	Password string `json:"password"  validate:"required"`
	Role     string `json:"role"      validate:"omitempty,oneof=user admin"`
	AdminKey string `json:"admin_key"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

type meResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// --- Movies ---

type createMovieRequest struct {
	Title      string `json:"title"       validate:"required"`
	Year       int    `json:"year"        validate:"required"`
	DirectorID *int64 `json:"director_id" validate:"omitempty,gt=0"`
}

// updateMovieRequest uses pointers so that absent fields stay untouched.
type updateMovieRequest struct {
	Title      *string `json:"title"`
	Year       *int    `json:"year"`
	DirectorID *int64  `json:"director_id" validate:"omitempty,gt=0"`
}

type movieListResponse struct {
	Data       []*domain.Movie `json:"data"`
	Pagination pagination      `json:"pagination"`
}

// --- Directors ---

type createDirectorRequest struct {
	Name      string `json:"name"       validate:"required"`
	BirthYear *int   `json:"birth_year"`
}

type updateDirectorRequest struct {
	Name      *string `json:"name"`
	BirthYear *int    `json:"birth_year"`
}

type directorListResponse struct {
	Data       []*domain.Director `json:"data"`
	Pagination pagination         `json:"pagination"`
}

type pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
