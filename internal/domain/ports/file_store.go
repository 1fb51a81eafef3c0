package ports

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks . FileStore,OAuthProvider

import (
	"context"
	"io"
)

// Upload descreve um arquivo enviado pelo cliente
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// FileStore persiste blobs e devolve uma chave relativa ao storage
type FileStore interface {
	// Put grava o upload sob namespace e retorna a chave gerada (ex: posts/<uuid>.png)
	Put(ctx context.Context, namespace string, upload Upload) (string, error)
	// URL converte uma chave em URL pública totalmente qualificada
	URL(key string) string
}
