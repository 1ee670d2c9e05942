package dropdown

import (
	"github.com/likipe/zonekit/internal/resource"
	"github.com/likipe/zonekit/internal/view"
)

// BlankValue is the value of the leading "nothing selected" option.
const BlankValue = "0"

// Item is the view for one option. The blank option has no model.
type Item struct {
	view.Base
	model   *resource.Model
	label   func(*resource.Model) string
	blank   string
	changed func()
}

func newItem(m *resource.Model, label func(*resource.Model) string, blank string, changed func()) *Item {
	it := &Item{model: m, label: label, blank: blank, changed: changed}
	if m != nil {
		it.Bind(m.On(resource.ModelChange, func(*resource.Model) {
			if it.Closed() {
				return
			}
			it.Render()
			if it.changed != nil {
				it.changed()
			}
		}))
	}
	it.Render()
	return it
}

// Model returns the bound model, or nil for the blank option.
func (it *Item) Model() *resource.Model {
	return it.model
}

// Value returns the model id, or BlankValue.
func (it *Item) Value() string {
	if it.model == nil {
		return BlankValue
	}
	return it.model.ID()
}

// Render refreshes the label.
func (it *Item) Render() string {
	if it.model == nil {
		return it.SetContent(it.blank)
	}
	return it.SetContent(it.label(it.model))
}
