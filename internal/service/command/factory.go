package command

import (
	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/internal/sales"
	"github.com/sandevgo/salesdash/internal/session"
)

// NewRouter wires the dashboard commands for sessions kept in store.
func NewRouter(ds *sales.Dataset, store *session.Store) *Router {
	r := New([]core.Command{
		NewKPICommand(ds, store),
		NewYearsCommand(ds, store),
		NewCategoriesCommand(ds, store),
		NewResetCommand(store),
	})
	help := NewHelpCommand(r)
	r.commands[help.Name()] = help
	return r
}
