package llm

import "fmt"

// MockGenerator records every prompt it receives and returns a canned
// response, so tests can inspect what the orchestrator actually sent.
type MockGenerator struct {
	Response string
	Err      error
	Prompts  []string
}

func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

func (g *MockGenerator) Generate(prompt string) (string, error) {
	g.Prompts = append(g.Prompts, prompt)
	if g.Err != nil {
		return "", g.Err
	}
	if g.Response == "" {
		return fmt.Sprintf("mock answer to prompt of %d chars", len(prompt)), nil
	}
	return g.Response, nil
}

func (g *MockGenerator) Calls() int {
	return len(g.Prompts)
}

func (g *MockGenerator) ModelName() string {
	return "mock"
}
