package careers

import "slices"

// Profile is the static description shown for a recommended career.
type Profile struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Skills      []string `json:"skills" yaml:"skills"`
	NextSteps   []string `json:"next_steps" yaml:"next_steps"`
}

// Lookup returns the profile for id. The returned slices are copies, so
// callers may modify them freely. An invalid id yields the zero Profile.
func Lookup(id ID) Profile {
	if !id.Valid() {
		return Profile{}
	}
	p := profiles[id]
	p.Skills = slices.Clone(p.Skills)
	p.NextSteps = slices.Clone(p.NextSteps)
	return p
}

var profiles = [Count]Profile{
	Researcher: {
		Title:       "AI Researcher",
		Description: "You're driven by fundamental questions about intelligence and learning. You enjoy diving deep into mathematical models and contributing to the theoretical foundations of AI.",
		Skills:      []string{"Advanced Mathematics", "Research Methodology", "Deep Learning", "Academic Writing"},
		NextSteps: []string{
			"Pursue a PhD in AI/ML",
			"Read research papers daily",
			"Contribute to open source research",
			"Attend academic conferences",
		},
	},
	DataScientist: {
		Title:       "Data Scientist",
		Description: "You excel at finding meaningful patterns in complex datasets. You love turning messy data into actionable insights that drive business decisions.",
		Skills:      []string{"Statistics", "Python/R", "Data Visualization", "Machine Learning"},
		NextSteps: []string{
			"Master pandas and scikit-learn",
			"Build a portfolio of data projects",
			"Learn business domain knowledge",
			"Practice on Kaggle competitions",
		},
	},
	NLPEngineer: {
		Title:       "NLP Engineer",
		Description: "You're fascinated by language and communication. You want to build systems that can understand, process, and generate human language naturally.",
		Skills:      []string{"Natural Language Processing", "Deep Learning", "Linguistics", "Software Engineering"},
		NextSteps: []string{
			"Study transformer architectures",
			"Build chatbots or text analyzers",
			"Learn about language models",
			"Contribute to NLP libraries",
		},
	},
	PromptEngineer: {
		Title:       "Prompt Engineer",
		Description: "You're creative and experimental, great at finding innovative ways to get AI to solve problems. You excel at understanding how to communicate effectively with AI systems.",
		Skills:      []string{"Prompt Design", "AI Model Understanding", "Creative Problem Solving", "User Experience"},
		NextSteps: []string{
			"Experiment with different AI models",
			"Build prompt libraries",
			"Learn about AI limitations",
			"Create AI-powered applications",
		},
	},
}
