package command

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sandevgo/salesdash/internal/sales"
	"github.com/sandevgo/salesdash/internal/session"
)

type YearsCommand struct {
	ds        *sales.Dataset
	store     *session.Store
	formatter *ResponseFormatter
}

func NewYearsCommand(ds *sales.Dataset, store *session.Store) *YearsCommand {
	return &YearsCommand{ds: ds, store: store, formatter: NewResponseFormatter()}
}

func (c *YearsCommand) Name() string {
	return "years"
}

func (c *YearsCommand) Description() string {
	return "Show or select the years on the dashboard"
}

func (c *YearsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	options := c.ds.Years()

	if len(args) == 0 {
		var current []int
		c.store.With(sessionID, func(s *session.Session) { current = s.Filters().Years })
		return c.formatter.Combine(
			c.formatter.Info("Years"),
			c.formatter.Label("Selected", intsOrNone(current)),
			c.formatter.Label("Available", intsOrNone(options)),
			c.formatter.Usage("/years 2021 2022 | /years all | /years none"),
		), nil
	}

	var years []int
	switch strings.ToLower(args[0]) {
	case "all":
		years = options
	case "none":
	default:
		for _, a := range args {
			y, err := strconv.Atoi(strings.Trim(a, ","))
			if err != nil {
				return "", fmt.Errorf("invalid year %q", a)
			}
			if !slices.Contains(options, y) {
				return "", fmt.Errorf("no data for year %d", y)
			}
			years = append(years, y)
		}
	}

	c.store.With(sessionID, func(s *session.Session) { s.SetYears(years) })
	return c.formatter.Success("Years selected: " + intsOrNone(years)), nil
}

type CategoriesCommand struct {
	ds        *sales.Dataset
	store     *session.Store
	formatter *ResponseFormatter
}

func NewCategoriesCommand(ds *sales.Dataset, store *session.Store) *CategoriesCommand {
	return &CategoriesCommand{ds: ds, store: store, formatter: NewResponseFormatter()}
}

func (c *CategoriesCommand) Name() string {
	return "categories"
}

func (c *CategoriesCommand) Description() string {
	return "Show or select the item categories on the dashboard"
}

// Category names contain spaces, so selections are comma separated.
func (c *CategoriesCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	options := c.ds.Categories()

	if len(args) == 0 {
		var current []string
		c.store.With(sessionID, func(s *session.Session) { current = s.Filters().Categories })
		return c.formatter.Combine(
			c.formatter.Info("Categories"),
			c.formatter.Label("Selected", stringsOrNone(current)),
			c.formatter.Label("Available", stringsOrNone(options)),
			c.formatter.Usage("/categories Cabbage, Flower/Leaf/Veg. | /categories all | /categories none"),
		), nil
	}

	joined := strings.Join(args, " ")
	var categories []string
	switch strings.ToLower(joined) {
	case "all":
		categories = options
	case "none":
	default:
		for _, name := range strings.Split(joined, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			i := slices.IndexFunc(options, func(o string) bool { return strings.EqualFold(o, name) })
			if i < 0 {
				return "", fmt.Errorf("unknown category %q", name)
			}
			categories = append(categories, options[i])
		}
	}

	c.store.With(sessionID, func(s *session.Session) { s.SetCategories(categories) })
	return c.formatter.Success("Categories selected: " + stringsOrNone(categories)), nil
}

type ResetCommand struct {
	store     *session.Store
	formatter *ResponseFormatter
}

func NewResetCommand(store *session.Store) *ResetCommand {
	return &ResetCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Select all years and categories again"
}

func (c *ResetCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.store.With(sessionID, func(s *session.Session) { s.Reset() })
	return c.formatter.Success("Filters reset"), nil
}

func intsOrNone(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return stringsOrNone(parts)
}

func stringsOrNone(xs []string) string {
	if len(xs) == 0 {
		return "none"
	}
	return strings.Join(xs, ", ")
}
