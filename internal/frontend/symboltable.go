package frontend

import (
	"fmt"

	"github.com/janpfeifer/GoMentalist/internal/trick"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// SymbolTableStep shows the symbol table, DisplayPageSize numbers at a time.
type SymbolTableStep struct {
	app.Compo
	Epoch int

	page      int
	pageEpoch int
}

func (s *SymbolTableStep) OnMount(ctx app.Context) {
	s.page = 0
	s.pageEpoch = s.Epoch
}

func (s *SymbolTableStep) goToPage(page int) {
	table := State.Session.Table()
	if page < 0 || page >= table.NumPages(trick.DisplayPageSize) {
		return
	}
	klog.V(1).Infof("SymbolTableStep: page %d", page)
	s.page = page
}

func (s *SymbolTableStep) Render() app.UI {
	if State.Session == nil {
		return app.Div().Aria("busy", "true").Text("Preparing the symbols...")
	}
	if s.pageEpoch != s.Epoch {
		// New table: start from the first page.
		s.page = 0
		s.pageEpoch = s.Epoch
	}
	table := State.Session.Table()
	numPages := table.NumPages(trick.DisplayPageSize)
	entries := table.Page(s.page, trick.DisplayPageSize)

	items := make([]app.UI, 0, len(entries))
	for _, e := range entries {
		items = append(items, app.Div().Class("symbol-item").Body(
			app.Div().Class("item-number").Text(e.Number),
			app.Div().Class("item-symbol").Text(string(e.Symbol)),
		))
	}

	indicators := make([]app.UI, 0, numPages)
	for p := range numPages {
		class := "page-indicator"
		if p == s.page {
			class += " active"
		}
		indicators = append(indicators, app.Button().
			Type("button").
			Class(class).
			OnClick(func(ctx app.Context, e app.Event) { s.goToPage(p) }).
			Text(p+1))
	}

	first := s.page * trick.DisplayPageSize
	last := min(first+trick.DisplayPageSize, table.Len()) - 1

	return card("symbol-table-step", "🔍 Find Your Symbol", "Look for your result in the table below",
		[]app.UI{
			app.P().Class("instruction-text").Body(
				app.Text("Find the number you fixed in your mind and "),
				app.Strong().Text("memorize the symbol"),
				app.Text(" below it."),
			),
			app.Div().Class("symbol-grid").Body(items...),
			app.Div().Class("pagination-controls").Body(
				button("‹ Previous", variantGhost, func(ctx app.Context, e app.Event) { s.goToPage(s.page - 1) }).
					Disabled(s.page == 0),
				app.Div().Class("page-indicators").Body(indicators...),
				button("Next ›", variantGhost, func(ctx app.Context, e app.Event) { s.goToPage(s.page + 1) }).
					Disabled(s.page == numPages-1),
			),
			app.Div().Class("page-info").Text(
				fmt.Sprintf("Page %d of %d • Numbers %d - %d", s.page+1, numPages, first, last)),
			app.Div().Class("table-tip").Body(
				app.Span().Class("tip-icon").Text("💡"),
				app.Span().Text("Use the arrows or click the page numbers to browse the table."),
			),
		},
		backButton(),
		button("✅ I memorized the symbol", variantPrimary, onNext),
	)
}
