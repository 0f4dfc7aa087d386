// Package frontend implements the go-app components of the presentation.
package frontend

import (
	"github.com/janpfeifer/GoMentalist/internal/trick"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// App is the root component: background, step indicator and the current step.
type App struct {
	app.Compo
}

func (a *App) OnMount(ctx app.Context) {
	klog.V(1).Infof("App: OnMount called")
	State.Listeners["app"] = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
}

func (a *App) OnDismount() {
	delete(State.Listeners, "app")
}

func (a *App) OnAppUpdate(ctx app.Context) {
	if State.Session != nil && State.Session.Step() != trick.StepWelcome {
		klog.Infof("App: update available, not reloading not to interrupt the trick...")
		return
	}
	klog.Infof("App: update available, reloading...")
	ctx.Reload()
}

func (a *App) Render() app.UI {
	if State.Session == nil {
		return app.Main().Class("container").Body(
			app.Article().Body(
				app.H2().Text("Something went wrong"),
				app.P().Style("color", "red").Text(State.Error),
			),
		)
	}

	step := State.Session.Step()
	var content app.UI
	switch step {
	case trick.StepChooseNumber:
		content = &ThinkNumberStep{}
	case trick.StepCompute:
		content = &CalculationStep{}
	case trick.StepLookupSymbol:
		content = &SymbolTableStep{Epoch: State.Session.Epoch()}
	case trick.StepReveal:
		content = &RevealStep{Magic: string(State.Session.MagicSymbol())}
	default:
		content = &WelcomeStep{}
	}

	return app.Div().Class("app").Body(
		&Background{},
		app.Div().Class("app-container").Body(
			&StepIndicator{Current: int(step)},
			errorBanner(),
			app.Main().Class("app-main").Body(
				app.Div().Class("step-container", "fade-in").Body(content),
			),
		),
	)
}

// errorBanner shows the last error of a running session, or nothing.
func errorBanner() app.UI {
	if State.Error == "" {
		return nil
	}
	return app.Div().Class("error-banner").Text(State.Error)
}
