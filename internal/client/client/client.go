package client

import (
	"context"

	"github.com/dmitrijs2005/softhub/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]models.Software, error)
	Upload(ctx context.Context, token string, u models.Upload) (*models.Software, error)
	Download(ctx context.Context, serverFilename, dir string) (string, error)
}
