package session

import (
	"context"
	"fmt"
)

// Controller serves the session page. It holds no per-request state and is
// safe for concurrent use when its repository is.
type Controller struct {
	repo Repository
}

func NewController(repo Repository) *Controller {
	return &Controller{repo: repo}
}

// Show resolves id into an outcome. A nil id redirects to Home/Index without
// touching the repository. Repository failures are returned as errors and no
// outcome is produced.
func (c *Controller) Show(ctx context.Context, id *int64) (Result, error) {
	if id == nil {
		return Redirect{Controller: "Home", Action: "Index"}, nil
	}

	s, err := c.repo.GetByID(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("session: get %d: %w", *id, err)
	}
	if s == nil {
		return Content{Text: NotFoundText}, nil
	}

	return View{Model: NewViewModel(s)}, nil
}
