package element

import (
	"sort"
	"strconv"
	"strings"
)

// Element is a player from the shared game catalog.
type Element struct {
	ID          int
	WebName     string
	FirstName   string
	SecondName  string
	TeamID      int
	ElementType int
}

func (e Element) DisplayName() string {
	if name := strings.TrimSpace(e.WebName); name != "" {
		return name
	}
	full := strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.SecondName))
	if full != "" {
		return full
	}
	return strconv.Itoa(e.ID)
}

// Catalog maps element ids to catalog entries.
type Catalog struct {
	byID map[int]Element
}

func NewCatalog(elements []Element) Catalog {
	byID := make(map[int]Element, len(elements))
	for _, e := range elements {
		if e.ID <= 0 {
			continue
		}
		byID[e.ID] = e
	}
	return Catalog{byID: byID}
}

func (c Catalog) Get(id int) (Element, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Name returns the display name of id, or the id itself when unknown.
func (c Catalog) Name(id int) string {
	if e, ok := c.byID[id]; ok {
		return e.DisplayName()
	}
	return strconv.Itoa(id)
}

func (c Catalog) Len() int {
	return len(c.byID)
}

// Elements returns the catalog sorted by id.
func (c Catalog) Elements() []Element {
	out := make([]Element, 0, len(c.byID))
	for _, e := range c.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
