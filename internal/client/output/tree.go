// Package output renders catalogue listings for the terminal.
package output

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"

	"github.com/dmitrijs2005/softhub/internal/client/models"
)

// CatalogueTree groups software by name, one branch per name and one leaf
// per uploaded version. Branches appear in the order names are first seen.
type CatalogueTree struct {
	tree  gotree.Tree
	names map[string]gotree.Tree
}

func NewCatalogueTree(rootLabel string) CatalogueTree {
	return CatalogueTree{tree: gotree.New(rootLabel), names: make(map[string]gotree.Tree)}
}

func (t CatalogueTree) getName(name string) gotree.Tree {
	branch := t.names[name]
	if branch == nil {
		branch = t.tree.Add(name)
		t.names[name] = branch
	}
	return branch
}

func (t CatalogueTree) Insert(s models.Software) {
	version := s.Version
	if version == "" {
		version = "(no version)"
	}
	t.getName(s.Name).Add(fmt.Sprintf("%s  %s  %s  [%s]", version, HumanSize(s.Size), s.UploadedAt.Local().Format("2006-01-02 15:04"), s.ServerFilename))
}

func (t CatalogueTree) Render() string {
	return t.tree.Print()
}
