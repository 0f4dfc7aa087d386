package frontend

import (
	"fmt"

	"github.com/janpfeifer/GoMentalist/internal/trick"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// card lays out a step: a header with title and subtitle, the content, and the buttons at the bottom.
func card(class, title, subtitle string, content []app.UI, footer ...app.UI) app.UI {
	header := []app.UI{app.H2().Class("card-title").Text(title)}
	if subtitle != "" {
		header = append(header, app.P().Class("card-subtitle").Text(subtitle))
	}
	return app.Article().Class("card", class).Body(
		app.Header().Class("card-header").Body(header...),
		app.Div().Class("card-content").Body(content...),
		app.Footer().Class("card-footer").Body(
			app.Div().Class("step-buttons").Body(footer...),
		),
	)
}

// button variants.
const (
	variantPrimary = "primary"
	variantGhost   = "ghost"
)

func button(label, variant string, onClick app.EventHandler) app.HTMLButton {
	return app.Button().
		Type("button").
		Class("btn", "btn-"+variant).
		OnClick(onClick).
		Text(label)
}

func onNext(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.NextStep()
}

func onPrev(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.PrevStep()
}

func backButton() app.UI {
	return button("← Back", variantGhost, onPrev)
}

// StepIndicator shows the progress through the steps. Completed steps can be clicked to go back.
type StepIndicator struct {
	app.Compo
	Current int
}

func (s *StepIndicator) Render() app.UI {
	items := make([]app.UI, 0, trick.NumSteps)
	for i := range trick.NumSteps {
		step := trick.Step(i)
		class := "step-dot"
		switch {
		case i < s.Current:
			class += " completed"
		case i == s.Current:
			class += " active"
		}
		dot := app.Li().Class(class).Title(step.Title()).Body(
			app.Span().Class("step-number").Text(i+1),
			app.Span().Class("step-label").Text(step.Title()),
		)
		if i < s.Current {
			dot = dot.OnClick(func(ctx app.Context, e app.Event) {
				State.GoToStep(i)
			})
		}
		items = append(items, dot)
	}
	return app.Nav().Class("step-indicator").Body(
		app.Ul().Body(items...),
		app.Div().Class("step-progress").Body(
			app.Div().Class("step-progress-bar").
				Style("width", fmt.Sprintf("%d%%", 100*s.Current/(trick.NumSteps-1))),
		),
	)
}

// numParticles floating in the background.
const numParticles = 24

// Background renders the floating particles behind the cards. Animation is pure CSS.
type Background struct {
	app.Compo
}

func (b *Background) Render() app.UI {
	particles := make([]app.UI, 0, numParticles)
	for i := range numParticles {
		particles = append(particles, app.Span().
			Class("particle").
			Style("left", fmt.Sprintf("%d%%", (i*37)%100)).
			Style("top", fmt.Sprintf("%d%%", (i*53)%100)).
			Style("animation-delay", fmt.Sprintf("%.1fs", float64(i%8)*0.7)))
	}
	return app.Div().Class("background").Aria("hidden", "true").Body(particles...)
}
