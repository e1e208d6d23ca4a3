package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the controllers.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrTopicLocked        = errors.New("este tema aún no está desbloqueado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está en uso")
	ErrInvalidInput       = errors.New("datos inválidos")
)
