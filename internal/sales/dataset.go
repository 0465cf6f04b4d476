package sales

import (
	"slices"
	"sort"
)

// Dataset is an immutable view over loaded records. Filtering returns a new
// view; the underlying slice is never modified.
type Dataset struct {
	records []Record
}

func NewDataset(records []Record) *Dataset {
	return &Dataset{records: records}
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of the view's records.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}

// Each calls fn for every record in the view, in load order.
func (d *Dataset) Each(fn func(Record)) {
	if d == nil {
		return
	}
	for _, r := range d.records {
		fn(r)
	}
}

func (d *Dataset) Years() []int {
	set := make(map[int]struct{})
	d.Each(func(r Record) { set[r.Year] = struct{}{} })

	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func (d *Dataset) Categories() []string {
	set := make(map[string]struct{})
	d.Each(func(r Record) { set[r.Category] = struct{}{} })

	cats := make([]string, 0, len(set))
	for c := range set {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Filters is the user's selection on the two dashboard axes.
type Filters struct {
	Years      []int
	Categories []string
}

// DefaultFilters selects every year and category present in d.
func DefaultFilters(d *Dataset) Filters {
	return Filters{Years: d.Years(), Categories: d.Categories()}
}

func (f Filters) Clone() Filters {
	return Filters{Years: slices.Clone(f.Years), Categories: slices.Clone(f.Categories)}
}

// FilterYears keeps records whose year is selected. An empty selection keeps nothing.
func (d *Dataset) FilterYears(years []int) *Dataset {
	set := make(map[int]struct{}, len(years))
	for _, y := range years {
		set[y] = struct{}{}
	}
	return d.where(func(r Record) bool {
		_, ok := set[r.Year]
		return ok
	})
}

// Filter applies both axes. An empty selection on either axis keeps nothing.
func (d *Dataset) Filter(f Filters) *Dataset {
	years := make(map[int]struct{}, len(f.Years))
	for _, y := range f.Years {
		years[y] = struct{}{}
	}
	cats := make(map[string]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		cats[c] = struct{}{}
	}
	return d.where(func(r Record) bool {
		_, okYear := years[r.Year]
		_, okCat := cats[r.Category]
		return okYear && okCat
	})
}

func (d *Dataset) where(keep func(Record) bool) *Dataset {
	var out []Record
	d.Each(func(r Record) {
		if keep(r) {
			out = append(out, r)
		}
	})
	return &Dataset{records: out}
}
