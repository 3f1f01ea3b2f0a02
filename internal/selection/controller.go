// Package selection tracks the single currently-selected town and the
// precedence rules between the event sources that may drive it.
package selection

// Source names the origin of a selection event.
type Source string

const (
	SourceBarClick     Source = "bar_click"
	SourceScatterClick Source = "scatter_click"
	SourceSearch       Source = "search"
	SourceClear        Source = "clear"
)

// ChartKind tags a chart click payload variant.
type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartScatter ChartKind = "scatter"
)

// ClickPayload is the identity payload attached to a clicked chart
// point. Bar points carry (RankID, TownKey); scatter points carry only
// TownKey.
type ClickPayload struct {
	Kind    ChartKind `json:"kind"`
	RankID  int       `json:"rank_id,omitempty"`
	TownKey string    `json:"town_key"`
}

// Event is one selection trigger. Click is nil when a chart click event
// fired without point data.
type Event struct {
	Source Source        `json:"source"`
	Query  string        `json:"query,omitempty"` // search box value
	Click  *ClickPayload `json:"click,omitempty"`
}

// Controller holds the selected town key. Most-recent-event-wins: clear
// always empties the selection, search sets it verbatim (even for keys
// not in the dataset — resolution happens downstream), and chart clicks
// set it from the point payload. A click with no usable payload leaves
// the selection unchanged.
type Controller struct {
	key      string
	selected bool
}

// Apply reacts to one selection event.
func (c *Controller) Apply(ev Event) {
	switch ev.Source {
	case SourceClear:
		c.key = ""
		c.selected = false
	case SourceSearch:
		if ev.Query == "" {
			c.key = ""
			c.selected = false
			return
		}
		c.key = ev.Query
		c.selected = true
	case SourceBarClick, SourceScatterClick:
		if ev.Click == nil || ev.Click.TownKey == "" {
			return
		}
		c.key = ev.Click.TownKey
		c.selected = true
	}
}

// Selected returns the current town key; the second return is false
// when nothing is selected.
func (c *Controller) Selected() (string, bool) {
	return c.key, c.selected
}
