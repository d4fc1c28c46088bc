package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/softhub/internal/common"
	"github.com/dmitrijs2005/softhub/internal/server/models"
)

// maxFieldSize caps each text field of the upload form.
const maxFieldSize = 64 << 10

// uploadHandler is the streaming second phase of an upload. Parts are read
// in order; the file part is checked and written to disk as it arrives, so
// the text fields may come before or after it.
func (s *HTTPServer) uploadHandler(c *gin.Context) {
	ctx := c.Request.Context()

	mr, err := c.Request.MultipartReader()
	if err != nil {
		s.abortWithError(c, fmt.Errorf("expected a multipart/form-data body: %w", common.ErrValidation))
		return
	}

	var (
		meta   models.SoftwareMeta
		stored *models.StoredPayload
	)

	fail := func(err error) {
		s.software.Discard(ctx, stored)
		s.abortWithError(c, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fail(fmt.Errorf("malformed multipart body: %w", common.ErrValidation))
			return
		}

		switch part.FormName() {
		case common.FormFieldFile:
			if stored != nil || part.FileName() == "" {
				err = drain(part)
				break
			}
			stored, err = s.software.StorePayload(ctx, part.FileName(), part)
		case common.FormFieldName:
			meta.Name, err = readField(part)
		case common.FormFieldVersion:
			meta.Version, err = readField(part)
		case common.FormFieldDescription:
			meta.Description, err = readField(part)
		default:
			err = drain(part)
		}
		_ = part.Close()

		if err != nil {
			fail(err)
			return
		}
	}

	if stored == nil {
		s.abortWithError(c, fmt.Errorf("no file uploaded, %s is required: %w", common.FormFieldFile, common.ErrValidation))
		return
	}

	record, err := s.software.Register(ctx, stored, meta)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Software uploaded successfully",
		"software": record,
	})
}

func (s *HTTPServer) listHandler(c *gin.Context) {
	records, err := s.software.List(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *HTTPServer) downloadHandler(c *gin.Context) {
	d, err := s.software.Resolve(c.Request.Context(), c.Param("serverFilename"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	// RFC 2231 encoding keeps spaces in non-ASCII names intact.
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename}))
	c.File(d.Path)
}

func readField(p *multipart.Part) (string, error) {
	b, err := io.ReadAll(io.LimitReader(p, maxFieldSize+1))
	if err != nil {
		return "", fmt.Errorf("malformed multipart body: %w", common.ErrValidation)
	}
	if len(b) > maxFieldSize {
		return "", fmt.Errorf("field %s is too long: %w", p.FormName(), common.ErrValidation)
	}
	return strings.TrimSpace(string(b)), nil
}

func drain(p *multipart.Part) error {
	if _, err := io.Copy(io.Discard, p); err != nil {
		return fmt.Errorf("malformed multipart body: %w", common.ErrValidation)
	}
	return nil
}
