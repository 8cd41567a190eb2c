package contenttree

import (
	"context"

	"github.com/kmclassics/kmclassics/pkg/contents"
	"github.com/kmclassics/kmclassics/pkg/models"
)

// ServiceFetcher reads children straight from the content service, for
// callers that run in the same process as the database.
type ServiceFetcher struct {
	svc    *contents.Service
	bookID string
}

func NewServiceFetcher(svc *contents.Service, bookID string) *ServiceFetcher {
	return &ServiceFetcher{svc: svc, bookID: bookID}
}

func (f *ServiceFetcher) Children(ctx context.Context, node *models.Content) ([]*models.Content, error) {
	return f.svc.GetChildren(ctx, f.bookID, node.VolumeNum, node)
}
