package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	"github.com/rafabene/avantpro-blog/internal/handlers/dto"
)

const (
	coverImageField = "cover_image"
	// MaxCoverImageSize é o limite da capa (2MB)
	MaxCoverImageSize = 2 << 20
)

// allowedImageTypes são os tipos aceitos para a capa, detectados pelo conteúdo
var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/bmp",
	"image/svg+xml",
}

// openCoverImage valida tamanho e tipo da capa e devolve o upload pronto para o
// file store. close deve ser chamado após o uso; errs não vazio indica 422.
func openCoverImage(c *gin.Context, fh *multipart.FileHeader) (upload *ports.Upload, closeFn func(), errs dto.FieldErrors, err error) {
	closeFn = func() {}
	if fh == nil {
		return nil, closeFn, nil, nil
	}

	errs = dto.FieldErrors{}

	if fh.Size > MaxCoverImageSize {
		errs.Add(coverImageField, dto.FieldMessage(c, "validation.file_max", coverImageField, MaxCoverImageSize>>10))
		return nil, closeFn, errs, nil
	}

	file, err := fh.Open()
	if err != nil {
		return nil, closeFn, nil, fmt.Errorf("open cover image: %w", err)
	}
	closeFn = func() { _ = file.Close() }

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		closeFn()
		return nil, func() {}, nil, fmt.Errorf("detect cover image type: %w", err)
	}
	if !isAllowedImage(mtype) {
		closeFn()
		errs.Add(coverImageField, dto.FieldMessage(c, "validation.image", coverImageField, ""))
		return nil, func() {}, errs, nil
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		closeFn()
		return nil, func() {}, nil, fmt.Errorf("rewind cover image: %w", err)
	}

	return &ports.Upload{
		Filename:    fh.Filename,
		ContentType: mtype.String(),
		Size:        fh.Size,
		Content:     file,
	}, closeFn, nil, nil
}

func isAllowedImage(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		for _, allowed := range allowedImageTypes {
			if m.Is(allowed) {
				return true
			}
		}
	}
	return false
}
