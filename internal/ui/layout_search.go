package ui

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/sahilm/fuzzy"
)

// Fuzzy search palette: filters buttons by label, frequently launched
// buttons rank first, Enter launches the highlighted row.

type searchResult struct {
	id     string
	label  string
	detail string
	count  int
	score  int
}

const maxSearchResults = 8

func (r *Renderer) layoutSearchOverlay(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	if !r.machine.Is(ModeSearch) {
		return layout.Dimensions{}
	}

	launch := func(idx int) {
		if idx < 0 || idx >= len(r.searchResults) {
			return
		}
		*eventOut = UIEvent{Action: ActionLaunch, ButtonID: r.searchResults[idx].id}
		r.dismissOverlay(gtx)
	}

	// Selection keys are drained here so the focused editor never sees them.
	for {
		evt, ok := gtx.Event(
			key.Filter{Focus: &r.searchEditor, Name: key.NameEscape},
			key.Filter{Focus: &r.searchEditor, Name: key.NameUpArrow},
			key.Filter{Focus: &r.searchEditor, Name: key.NameDownArrow},
		)
		if !ok {
			break
		}
		ke, ok := evt.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case key.NameEscape:
			r.dismissOverlay(gtx)
		case key.NameUpArrow:
			if n := len(r.searchResults); n > 0 {
				r.searchSel = (r.searchSel - 1 + n) % n
			}
		case key.NameDownArrow:
			if n := len(r.searchResults); n > 0 {
				r.searchSel = (r.searchSel + 1) % n
			}
		}
	}

	for {
		evt, ok := r.searchEditor.Update(gtx)
		if !ok {
			break
		}
		switch evt.(type) {
		case widget.ChangeEvent:
			r.updateSearchResults(state)
		case widget.SubmitEvent:
			launch(r.searchSel)
		}
	}
	// First frame after opening: show the most launched buttons.
	if r.searchQuery == "" && r.searchResults == nil {
		r.updateSearchResults(state)
	}

	if r.backdropClick.Clicked(gtx) {
		r.dismissOverlay(gtx)
	}
	for i := range r.searchResults {
		if i >= len(r.searchResultBtns) {
			break
		}
		if r.searchResultBtns[i].Clicked(gtx) {
			launch(i)
		}
	}
	if !r.machine.Is(ModeSearch) {
		return layout.Dimensions{}
	}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, colBackdrop, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return r.backdropClick.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Max}
			})
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			width := unit.Dp(440)
			if px := gtx.Dp(width); px > gtx.Constraints.Max.X {
				width = gtx.Metric.PxToDp(gtx.Constraints.Max.X)
			}
			offset := image.Pt((gtx.Constraints.Max.X-gtx.Dp(width))/2, gtx.Dp(60))
			defer op.Offset(offset).Push(gtx.Ops).Pop()
			return r.modalBodyClick.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return r.menuShell(gtx, width, func(gtx layout.Context) layout.Dimensions {
					return r.layoutSearchPanel(gtx)
				})
			})
		}),
	)
}

func (r *Renderer) layoutSearchPanel(gtx layout.Context) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return widget.Border{Color: colBorder, Width: unit.Dp(1), CornerRadius: unit.Dp(4)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
							material.Editor(r.Theme, &r.searchEditor, "Search buttons...").Layout)
					})
			})
		}),
	}

	if len(r.searchResults) == 0 {
		if strings.TrimSpace(r.searchQuery) != "" {
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12), Bottom: unit.Dp(12)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(r.Theme, "No matches")
						lbl.Color = colMuted
						return lbl.Layout(gtx)
					})
			}))
		}
	} else {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.List(r.Theme, &r.searchList).Layout(gtx, len(r.searchResults),
				func(gtx layout.Context, i int) layout.Dimensions {
					return r.layoutSearchRow(gtx, i)
				})
		}))
		children = append(children, layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout))
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (r *Renderer) layoutSearchRow(gtx layout.Context, i int) layout.Dimensions {
	if i >= len(r.searchResultBtns) {
		return layout.Dimensions{}
	}
	res := &r.searchResults[i]
	return material.Clickable(gtx, &r.searchResultBtns[i], func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				if i == r.searchSel {
					paint.FillShape(gtx.Ops, colCellHover, clip.Rect{Max: gtx.Constraints.Min}.Op())
				}
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
							layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
								return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
									layout.Rigid(func(gtx layout.Context) layout.Dimensions {
										lbl := material.Body1(r.Theme, res.label)
										lbl.Color = colText
										lbl.MaxLines = 1
										return lbl.Layout(gtx)
									}),
									layout.Rigid(func(gtx layout.Context) layout.Dimensions {
										lbl := material.Caption(r.Theme, res.detail)
										lbl.Color = colMuted
										lbl.MaxLines = 1
										return lbl.Layout(gtx)
									}),
								)
							}),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								if res.count == 0 {
									return layout.Dimensions{}
								}
								lbl := material.Caption(r.Theme, fmt.Sprintf("%d×", res.count))
								lbl.Color = colMuted
								return lbl.Layout(gtx)
							}),
						)
					})
			}),
		)
	})
}

// updateSearchResults recomputes the result rows for the current query. An
// empty query lists the most launched buttons instead.
func (r *Renderer) updateSearchResults(state *State) {
	r.searchQuery = r.searchEditor.Text()
	r.searchSel = 0

	query := strings.TrimSpace(r.searchQuery)
	results := r.searchResults[:0]

	if query == "" {
		for i := range state.Buttons {
			b := &state.Buttons[i]
			if !b.Launchable() {
				continue
			}
			results = append(results, searchResult{
				id:     b.Button.ID,
				label:  b.Button.Label,
				detail: b.Button.Action.Describe(),
				count:  state.Stats[b.Button.ID].Count,
			})
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].count > results[j].count
		})
	} else {
		labels := make([]string, 0, len(state.Buttons))
		index := make([]int, 0, len(state.Buttons))
		for i := range state.Buttons {
			if state.Buttons[i].Launchable() {
				labels = append(labels, state.Buttons[i].Button.Label)
				index = append(index, i)
			}
		}
		for _, m := range fuzzy.Find(query, labels) {
			b := &state.Buttons[index[m.Index]]
			count := state.Stats[b.Button.ID].Count
			results = append(results, searchResult{
				id:     b.Button.ID,
				label:  b.Button.Label,
				detail: b.Button.Action.Describe(),
				count:  count,
				score:  m.Score + usageBoost(count),
			})
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].score > results[j].score
		})
	}

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	r.searchResults = results
	if n := len(results) - len(r.searchResultBtns); n > 0 {
		r.searchResultBtns = append(r.searchResultBtns, make([]widget.Clickable, n)...)
	}
}

// usageBoost folds launch counts into the fuzzy score so a frequently used
// button beats a slightly better textual match. Capped so rare exact matches
// still surface.
func usageBoost(count int) int {
	if count > 20 {
		count = 20
	}
	return count * 4
}
