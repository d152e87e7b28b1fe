package suggest

type Field string

const (
	FieldTitle                 Field = "title"
	FieldSubtitle              Field = "subtitle"
	FieldDescription           Field = "description"
	FieldObjectives            Field = "objectives"
	FieldRequirements          Field = "requirements"
	FieldModuleTitle           Field = "moduleTitle"
	FieldSubsectionDescription Field = "subsectionDescription"
)

// pools holds the candidate templates per field. A %[1]s verb is replaced by
// the current course title.
var pools = map[Field][]string{
	FieldTitle: {
		"The Complete %[1]s Bootcamp",
		"%[1]s: From Beginner to Pro",
		"Mastering %[1]s in 30 Days",
		"Practical %[1]s for Professionals",
		"%[1]s Essentials",
	},
	FieldSubtitle: {
		"Build real projects and gain job-ready skills in %[1]s",
		"A hands-on journey through the core ideas of %[1]s",
		"Everything you need to start working with %[1]s today",
		"Learn %[1]s step by step with practical exercises",
	},
	FieldDescription: {
		"This course takes you through %[1]s from first principles to advanced techniques. Each module combines short lectures with hands-on exercises so you can apply what you learn immediately.",
		"Whether you are new to %[1]s or looking to sharpen your skills, this course gives you a structured path with real-world examples, quizzes and guided labs.",
		"In %[1]s you will learn the concepts professionals use every day. By the end you will have completed several projects you can show to employers.",
	},
	FieldObjectives: {
		"Understand the fundamentals of %[1]s\nApply %[1]s techniques to real problems\nBuild a portfolio project\nPrepare for advanced study",
		"Explain the key concepts behind %[1]s\nUse industry tools with confidence\nDebug and improve your own work",
		"Design solutions using %[1]s\nEvaluate trade-offs between approaches\nCommunicate results clearly",
	},
	FieldRequirements: {
		"No prior experience with %[1]s is required\nA computer with internet access",
		"Basic computer literacy\nWillingness to practice %[1]s regularly",
		"Familiarity with the basics of %[1]s is helpful but not required\nAbout 3 hours per week",
	},
	FieldModuleTitle: {
		"Getting Started with %[1]s",
		"Core Concepts of %[1]s",
		"Hands-on %[1]s Projects",
		"Advanced %[1]s Techniques",
		"%[1]s in the Real World",
	},
	FieldSubsectionDescription: {
		"A short walkthrough of the key ideas in %[1]s with worked examples.",
		"Practice what you learned about %[1]s with guided exercises.",
		"Check your understanding of %[1]s before moving on.",
		"Apply %[1]s concepts in a realistic scenario.",
	},
}

func IsKnownField(f Field) bool {
	_, ok := pools[f]
	return ok
}

// Candidates returns every rendered candidate for field, in pool order.
func Candidates(field Field, title string) []string {
	templates := pools[field]
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = render(t, title)
	}
	return out
}
