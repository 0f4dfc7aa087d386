package frontend

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

const (
	// RevealDelay is the pause before the build-up starts.
	RevealDelay = 500 * time.Millisecond

	// BuildUpDuration is how long the "reading your mind" phase lasts before the symbol shows.
	BuildUpDuration = 2 * time.Second

	numConfetti = 20
)

// RevealStep shows the magic symbol after a short build-up.
type RevealStep struct {
	app.Compo
	Magic string

	revealing  bool
	showSymbol bool
	timers     []*time.Timer
}

func (r *RevealStep) OnMount(ctx app.Context) {
	klog.V(1).Infof("RevealStep: OnMount called")
	r.revealing = false
	r.showSymbol = false
	r.timers = []*time.Timer{
		time.AfterFunc(RevealDelay, func() {
			ctx.Dispatch(func(ctx app.Context) {
				r.revealing = true
			})
		}),
		time.AfterFunc(RevealDelay+BuildUpDuration, func() {
			ctx.Dispatch(func(ctx app.Context) {
				r.showSymbol = true
			})
		}),
	}
}

func (r *RevealStep) OnDismount() {
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}

func (r *RevealStep) onRestart(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.Restart()
}

func (r *RevealStep) Render() app.UI {
	var content []app.UI
	switch {
	case !r.revealing:
		content = append(content, app.P().Class("pre-reveal").Body(
			app.Text("Concentrate on the symbol you memorized..."),
			app.Br(),
			app.Text("I am reading your mind..."),
		))

	case !r.showSymbol:
		content = append(content, app.Div().Class("buildup").Body(
			app.Div().Class("crystal-ball").Text("🔮"),
			app.P().Class("buildup-text").Text("Reading your mental energy..."),
		))

	default:
		content = append(content,
			app.Div().Class("magic-symbol", "pop-in").Text(r.Magic),
			app.Div().Class("reveal-message").Body(
				app.H3().Text("🎉 Amazing, isn't it?"),
				app.P().Body(
					app.Text("Through the reading of your mental energy, I captured exactly"),
					app.Br(),
					app.Strong().Text("the symbol that was in your mind!"),
				),
				app.P().Class("final-message").Body(
					app.Text("✨ "),
					app.Em().Text("\"The human mind is the greatest mystery of the universe\""),
					app.Text(" ✨"),
				),
			),
		)
		confetti := make([]app.UI, 0, numConfetti)
		for i := range numConfetti {
			confetti = append(confetti, app.Span().
				Class("confetti").
				Style("left", fmt.Sprintf("%d%%", (i*41)%100)).
				Style("animation-delay", fmt.Sprintf("%dms", (i%5)*120)))
		}
		content = append(content, app.Div().Class("confetti-container").Body(confetti...))
	}

	class := "reveal-step"
	if r.showSymbol {
		class += " glow"
	}
	footer := []app.UI{backButton()}
	if r.showSymbol {
		footer = append(footer, button("🔄 Try Again", variantPrimary, r.onRestart))
	}
	return card(class, "🔮 The Revelation", "The moment of truth has arrived...", content, footer...)
}
