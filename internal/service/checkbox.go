package service

import (
	"fmt"
	"strings"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

// CheckboxGroup is a multi-select vocabulary whose None member excludes every
// other member. Selections it returns are always in vocabulary order and never
// hold None together with anything else.
type CheckboxGroup struct {
	Vocabulary
	None string
}

func newCheckboxGroup(name, none string, options ...Option) CheckboxGroup {
	return CheckboxGroup{Vocabulary: newVocabulary(name, options...), None: none}
}

// Toggle checks or unchecks one member. Checking None clears the rest; checking
// anything else clears None.
func (g CheckboxGroup) Toggle(sel model.Selection, tag string, checked bool) (model.Selection, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if !g.Has(tag) {
		return sel, fmt.Errorf("unknown %s %q", g.name, tag)
	}
	return g.toggle(sel, tag, checked), nil
}

func (g CheckboxGroup) toggle(sel model.Selection, tag string, checked bool) model.Selection {
	set := make(map[string]bool, len(sel)+1)
	for _, v := range sel {
		set[v] = true
	}
	switch {
	case !checked:
		delete(set, tag)
	case tag == g.None:
		set = map[string]bool{g.None: true}
	default:
		delete(set, g.None)
		set[tag] = true
	}
	return g.ordered(set)
}

// Select replays checking each tag in turn, so the last of None and a real
// member wins when both are given.
func (g CheckboxGroup) Select(tags ...string) (model.Selection, error) {
	var sel model.Selection
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		var err error
		sel, err = g.Toggle(sel, tag, true)
		if err != nil {
			return nil, err
		}
	}
	return sel, nil
}

// Normalize restores the group invariants on a selection built elsewhere,
// dropping members the vocabulary does not know.
func (g CheckboxGroup) Normalize(sel model.Selection) model.Selection {
	var out model.Selection
	for _, tag := range sel {
		if g.Has(tag) {
			out = g.toggle(out, tag, true)
		}
	}
	return out
}

// Format renders the selection for the relay, "None selected" when empty.
func (g CheckboxGroup) Format(sel model.Selection) string {
	if len(sel) == 0 {
		return "None selected"
	}
	labels := make([]string, 0, len(sel))
	for _, v := range sel {
		labels = append(labels, g.Label(v))
	}
	return strings.Join(labels, ", ")
}

func (g CheckboxGroup) ordered(set map[string]bool) model.Selection {
	if len(set) == 0 {
		return nil
	}
	out := make(model.Selection, 0, len(set))
	for _, o := range g.options {
		if set[o.Value] {
			out = append(out, o.Value)
		}
	}
	return out
}
