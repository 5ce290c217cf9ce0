package cmd

// sample is a canned resume used by the interactive mode.
type sample struct {
	Title string
	Text  string
}

var samples = []sample{
	{
		Title: "Data Scientist Resume",
		Text: "Data Scientist with 3 years experience in Python, TensorFlow, pandas, numpy, SQL, " +
			"and machine learning. Built predictive models for customer behavior analysis and " +
			"recommendation systems.",
	},
	{
		Title: "Frontend Developer Resume",
		Text: "Frontend Developer skilled in React, JavaScript, HTML, CSS, TypeScript, and modern " +
			"web development tools. Experience with responsive design and user experience optimization.",
	},
	{
		Title: "DevOps Engineer Resume",
		Text: "DevOps Engineer with expertise in AWS, Docker, Kubernetes, CI/CD pipelines, Terraform, " +
			"and cloud infrastructure. Experienced in automation and infrastructure as code.",
	},
	{
		Title: "Software Engineer Resume",
		Text: `JOHN DOE
Software Engineer

SKILLS:
- Python, JavaScript, React, Node.js
- AWS, Docker, Kubernetes, CI/CD
- Machine Learning, TensorFlow, SQL
- Git, Agile, REST APIs

EXPERIENCE:
- Senior Developer at TechCorp (2020-2023)
  * Built scalable microservices using Python and AWS
  * Led team of 5 developers in agile environment
  * Implemented CI/CD pipelines reducing deployment time by 60%
- Data Scientist at AI Startup (2018-2020)
  * Developed ML models using TensorFlow and Python
  * Improved prediction accuracy by 25%
  * Created data pipelines processing 1M+ records daily

EDUCATION:
- BS Computer Science, University of Technology
- MS Data Science, Online University`,
	},
}

func sampleTitles() []string {
	titles := make([]string, 0, len(samples))
	for _, s := range samples {
		titles = append(titles, s.Title)
	}
	return titles
}

func findSample(title string) *sample {
	for i := range samples {
		if samples[i].Title == title {
			return &samples[i]
		}
	}
	return nil
}
