package repositories

import "errors"

// Erros de persistência independentes do driver
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
