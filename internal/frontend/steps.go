package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// WelcomeStep introduces the presentation.
type WelcomeStep struct {
	app.Compo
}

func (w *WelcomeStep) Render() app.UI {
	return card("welcome-step", "🔮 Mind Reading", "An experience of mental connection",
		[]app.UI{
			app.Div().Class("welcome-icon").Text("🧠"),
			app.P().Body(
				app.Text("I will guide you through a short exercise of concentration. "),
				app.Text("At the end, I will read the symbol you are thinking of."),
			),
			app.Ul().Class("welcome-list").Body(
				app.Li().Text("🔢 Think of a number"),
				app.Li().Text("🧮 Follow a few mental steps"),
				app.Li().Text("🔍 Find your symbol in the table"),
				app.Li().Text("✨ Let me reveal it"),
			),
			app.P().Class("hint").Text("Find a quiet moment: concentration is everything."),
		},
		button("✨ Start", variantPrimary, onNext),
	)
}

// ThinkNumberStep asks the user to pick a two-digit number.
type ThinkNumberStep struct {
	app.Compo
}

var exampleNumbers = []string{"25", "67", "43", "88"}

func (t *ThinkNumberStep) Render() app.UI {
	examples := make([]app.UI, 0, len(exampleNumbers))
	for _, n := range exampleNumbers {
		examples = append(examples, app.Span().Class("example-number").Text(n))
	}
	return card("think-step", "🔢 Think of a Number", "Choose it freely, and keep it to yourself",
		[]app.UI{
			app.P().Class("instruction-text").Body(
				app.Text("Think of any "),
				app.Strong().Text("two-digit"),
				app.Text(" number between 10 and 99."),
				app.Br(),
				app.Text("It can be your age, a lucky number, or simply the first one that comes to mind."),
			),
			app.Div().Class("number-display").Body(
				app.Span().Class("number-placeholder").Text("??"),
			),
			app.H4().Text("Valid examples:"),
			app.Div().Class("examples-grid").Body(examples...),
		},
		backButton(),
		button("I have my number →", variantPrimary, onNext),
	)
}

// calcInstruction is one of the mental operations of the CalculationStep.
type calcInstruction struct {
	title, text, example string
}

var calcInstructions = []calcInstruction{
	{"Add the digits", "Take your number and add its two digits together.", "Example: if you thought of 47, then 4 + 7 = 11"},
	{"Transform the energy", "Now subtract that sum from your original number.", "Example: 47 - 11 = 36"},
	{"Fix the number in your mind", "Concentrate intensely on this final number.", "In our example it would be: 36"},
}

// CalculationStep walks the user through subtracting the digit sum.
type CalculationStep struct {
	app.Compo
}

func (c *CalculationStep) Render() app.UI {
	steps := make([]app.UI, 0, len(calcInstructions))
	for i, ci := range calcInstructions {
		steps = append(steps, app.Div().Class("calc-step").Body(
			app.Div().Class("step-number").Text(i+1),
			app.Div().Class("step-content").Body(
				app.H4().Text(ci.title),
				app.P().Body(
					app.Text(ci.text),
					app.Br(),
					app.Span().Class("example").Text(ci.example),
				),
			),
		))
	}
	return card("calculation-step", "🧮 Channel the Energy", "Follow each step with full concentration",
		[]app.UI{
			app.P().Class("instruction-intro").Text("Now we will channel your mental energy through the number you chose."),
			app.Div().Class("calculation-steps").Body(steps...),
			app.Div().Class("calculation-tip").Body(
				app.Span().Class("tip-icon").Text("💡"),
				app.Span().Text("Take your time. Make sure the calculation is right before moving on."),
			),
		},
		backButton(),
		button("I have the result →", variantPrimary, onNext),
	)
}
