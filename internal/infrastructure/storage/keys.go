package storage

import (
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/rafabene/avantpro-blog/internal/domain/ports"
)

// newObjectKey gera uma chave aleatória sob namespace com a extensão do tipo detectado
func newObjectKey(namespace string, upload ports.Upload) string {
	return path.Join(strings.Trim(namespace, "/"), uuid.NewString()+extensionFor(upload))
}

// extensionFor ignora o nome enviado pelo cliente: a extensão define o
// Content-Type com que o arquivo é servido depois
func extensionFor(upload ports.Upload) string {
	if m := mimetype.Lookup(upload.ContentType); m != nil {
		return m.Extension()
	}
	return ""
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
