package questionnaire

import "github.com/abhisek/aipath/internal/careers"

func init() {
	qn, err := New(seedQuestions())
	if err != nil {
		panic(err)
	}
	if err := ValidateShape(qn, 4, 4); err != nil {
		panic(err)
	}
	std = qn
}

// w builds a Weights value in enumeration order:
// researcher, data scientist, NLP engineer, prompt engineer.
func w(researcher, dataScientist, nlpEngineer, promptEngineer int) Weights {
	return Weights{
		careers.Researcher:     researcher,
		careers.DataScientist:  dataScientist,
		careers.NLPEngineer:    nlpEngineer,
		careers.PromptEngineer: promptEngineer,
	}
}

func seedQuestions() []Question {
	return []Question{
		{
			ID:     "interests",
			Prompt: "What aspects of AI interest you most?",
			Options: []Option{
				{Value: "research", Label: "Advancing the theoretical foundations of AI", Weights: w(3, 1, 1, 0)},
				{Value: "data", Label: "Extracting insights from large datasets", Weights: w(1, 3, 1, 1)},
				{Value: "language", Label: "Making computers understand human language", Weights: w(1, 1, 3, 2)},
				{Value: "applications", Label: "Building practical AI applications for users", Weights: w(0, 2, 2, 3)},
			},
		},
		{
			ID:     "programming",
			Prompt: "What's your programming experience level?",
			Options: []Option{
				{Value: "beginner", Label: "Just starting out with basic concepts", Weights: w(0, 1, 0, 3)},
				{Value: "intermediate", Label: "Comfortable with Python and basic libraries", Weights: w(1, 2, 2, 2)},
				{Value: "advanced", Label: "Strong in multiple languages and frameworks", Weights: w(2, 3, 3, 1)},
				{Value: "expert", Label: "Can implement complex algorithms from scratch", Weights: w(3, 2, 3, 0)},
			},
		},
		{
			ID:     "thinking",
			Prompt: "How do you prefer to approach problems?",
			Options: []Option{
				{Value: "theoretical", Label: "Start with mathematical models and theory", Weights: w(3, 2, 1, 0)},
				{Value: "analytical", Label: "Dive deep into data to find patterns", Weights: w(1, 3, 2, 1)},
				{Value: "systematic", Label: "Build step-by-step technical solutions", Weights: w(2, 1, 3, 1)},
				{Value: "creative", Label: "Experiment and iterate quickly", Weights: w(0, 1, 1, 3)},
			},
		},
		{
			ID:     "curiosity",
			Prompt: "What drives your curiosity in AI?",
			Options: []Option{
				{Value: "understand", Label: "Understanding how intelligence actually works", Weights: w(3, 1, 1, 0)},
				{Value: "predict", Label: "Discovering hidden patterns and predictions", Weights: w(1, 3, 1, 1)},
				{Value: "communicate", Label: "Making AI understand and generate language", Weights: w(1, 1, 3, 2)},
				{Value: "solve", Label: "Solving real-world problems for people", Weights: w(0, 2, 2, 3)},
			},
		},
	}
}
