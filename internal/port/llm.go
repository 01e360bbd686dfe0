package port

// Generator represents a language model used to produce answers.
type Generator interface {
	// Generate produces text for the given prompt.
	Generate(prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
