package command

import (
	"context"

	"github.com/sandevgo/salesdash/internal/sales"
	"github.com/sandevgo/salesdash/internal/service/dashboard"
	"github.com/sandevgo/salesdash/internal/session"
)

type KPICommand struct {
	ds    *sales.Dataset
	store *session.Store
}

func NewKPICommand(ds *sales.Dataset, store *session.Store) *KPICommand {
	return &KPICommand{ds: ds, store: store}
}

func (c *KPICommand) Name() string {
	return "kpi"
}

func (c *KPICommand) Description() string {
	return "Show KPIs and breakdowns for the current filters"
}

func (c *KPICommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	var f sales.Filters
	c.store.With(sessionID, func(s *session.Session) {
		f = s.Filters()
	})
	return dashboard.Build(c.ds, f).Markdown(), nil
}
