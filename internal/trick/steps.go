package trick

import "fmt"

// Step of the presentation.
type Step int

const (
	StepWelcome      Step = iota // Introduction.
	StepChooseNumber             // User thinks of a two-digit number.
	StepCompute                  // User subtracts the sum of the digits.
	StepLookupSymbol             // User finds the result in the symbol table.
	StepReveal                   // The magic symbol is "read" from the user's mind.
)

const (
	// NumSteps is the total number of steps.
	NumSteps = 5

	// LastStep is the final step, the reveal.
	LastStep = StepReveal
)

var stepNames = [NumSteps]string{"Welcome", "ChooseNumber", "Compute", "LookupSymbol", "Reveal"}

var stepTitles = [NumSteps]string{
	"Welcome",
	"Think of a Number",
	"Channel the Energy",
	"Find Your Symbol",
	"The Revelation",
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// Title is the human-readable name of the step, used by the step indicator.
func (s Step) Title() string {
	if !s.Valid() {
		return ""
	}
	return stepTitles[s]
}

// Valid reports whether s is one of the defined steps.
func (s Step) Valid() bool {
	return s >= StepWelcome && s <= LastStep
}
