// Package apperr holds the request-visible error vocabulary. Every error
// carries the HTTP status it maps to and the exact message the API
// returns in the "erro" field.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

var (
	// 400
	ErrInvalidData     = New(http.StatusBadRequest, "Dados inválidos")
	ErrUserExists      = New(http.StatusBadRequest, "Usuário já existe")
	ErrMissingFile     = New(http.StatusBadRequest, "Nenhum arquivo fornecido")
	ErrMissingUsername = New(http.StatusBadRequest, "Username não fornecido")
	ErrMissingQuery    = New(http.StatusBadRequest, "Query não fornecida")
	ErrMissingVideoURL = New(http.StatusBadRequest, "URL do vídeo não fornecida")

	// 401
	ErrBadCredentials = New(http.StatusUnauthorized, "Credenciais inválidas")

	// 404
	ErrUserNotFound = New(http.StatusNotFound, "Usuário não encontrado")

	// 500, upstream file host or local processing
	ErrUploadFailed = New(http.StatusInternalServerError, "Erro ao processar upload")
)

// StatusOf resolves the HTTP status for err, defaulting to 500 for
// anything outside the taxonomy.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}
