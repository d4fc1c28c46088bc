package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/softhub/internal/client/models"
	"github.com/dmitrijs2005/softhub/internal/client/output"
	"github.com/dmitrijs2005/softhub/internal/common"
)

// track updates the online flag from the outcome of a server call.
func (a *App) track(err error) error {
	a.online = !errors.Is(err, common.ErrUnavailable)
	return err
}

func (a *App) List(ctx context.Context) error {
	items, err := a.client.List(ctx)
	if err = a.track(err); err != nil {
		return err
	}
	if len(items) == 0 {
		printlnFn("No software uploaded yet")
		return nil
	}
	return output.WriteTable(a.out, items)
}

func (a *App) Tree(ctx context.Context) error {
	items, err := a.client.List(ctx)
	if err = a.track(err); err != nil {
		return err
	}
	tree := output.NewCatalogueTree(a.config.ServerURL)
	for _, s := range items {
		tree.Insert(s)
	}
	_, err = fmt.Fprint(a.out, tree.Render())
	return err
}

func (a *App) SetToken(ctx context.Context) error {
	token, err := GetSecret("Upload token", a.out)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("empty token: %w", common.ErrValidation)
	}
	a.token = token
	printlnFn("Token saved for this session")
	return nil
}

func (a *App) Upload(ctx context.Context) error {
	if a.token == "" {
		if err := a.SetToken(ctx); err != nil {
			return err
		}
	}

	path, err := GetSimpleText(a.reader, "Path to .exe file", a.out)
	if err != nil {
		return err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%s is not a file: %w", path, common.ErrValidation)
	}
	if !strings.EqualFold(filepath.Ext(path), ".exe") {
		return fmt.Errorf("only .exe files are allowed: %w", common.ErrValidation)
	}

	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("name is required: %w", common.ErrValidation)
	}
	version, err := GetSimpleText(a.reader, "Version (optional)", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	printlnFn("Uploading", filepath.Base(path), "("+output.HumanSize(fi.Size())+")...")

	s, err := a.client.Upload(ctx, a.token, models.Upload{Path: path, Name: name, Version: version, Description: description})
	if err = a.track(err); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			a.token = ""
		}
		return err
	}

	printlnFn("Uploaded", s.Name, s.Version, "as", s.ServerFilename)
	return nil
}

func (a *App) Download(ctx context.Context, serverFilename string) error {
	path, err := a.client.Download(ctx, serverFilename, a.config.DownloadDir)
	if err = a.track(err); err != nil {
		return err
	}
	printlnFn("Saved to", path)
	return nil
}
