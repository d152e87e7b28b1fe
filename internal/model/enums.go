package model

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelExpert       Level = "Expert"
)

var Levels = []Level{LevelBeginner, LevelIntermediate, LevelExpert}

var Languages = []string{
	"English",
	"Spanish",
	"French",
	"German",
	"Hindi",
	"Mandarin",
	"Japanese",
	"Portuguese",
	"Arabic",
}

// Categories maps each category to its allowed subcategories.
var Categories = map[string][]string{
	"Development":          {"Web Development", "Mobile Development", "Programming Languages", "Game Development", "Databases"},
	"Business":             {"Entrepreneurship", "Communication", "Management", "Sales", "Strategy"},
	"Finance":              {"Accounting", "Cryptocurrency", "Investing", "Personal Finance"},
	"IT & Software":        {"IT Certifications", "Network & Security", "Hardware", "Operating Systems"},
	"Design":               {"Web Design", "Graphic Design", "UX Design", "3D & Animation"},
	"Marketing":            {"Digital Marketing", "SEO", "Social Media Marketing", "Branding"},
	"Personal Growth":      {"Productivity", "Leadership", "Career Development", "Parenting"},
	"Photography":          {"Digital Photography", "Portrait Photography", "Video Design"},
	"Health & Fitness":     {"Fitness", "Nutrition", "Yoga", "Mental Health"},
	"Music":                {"Instruments", "Music Production", "Vocal", "Music Theory"},
	"Teaching & Academics": {"Math", "Science", "Language Learning", "Test Prep"},
}

func IsValidLevel(l Level) bool {
	for _, v := range Levels {
		if v == l {
			return true
		}
	}
	return false
}

func IsValidLanguage(lang string) bool {
	for _, v := range Languages {
		if v == lang {
			return true
		}
	}
	return false
}

func IsValidCategory(category string) bool {
	_, ok := Categories[category]
	return ok
}

// IsValidSubcategory reports whether sub belongs to category. An empty sub is always valid.
func IsValidSubcategory(category, sub string) bool {
	if sub == "" {
		return true
	}
	for _, v := range Categories[category] {
		if v == sub {
			return true
		}
	}
	return false
}

type SubsectionType string

const (
	SubsectionLecture    SubsectionType = "lecture"
	SubsectionQuiz       SubsectionType = "quiz"
	SubsectionAssignment SubsectionType = "assignment"
	SubsectionLab        SubsectionType = "lab"
)

func IsValidSubsectionType(t SubsectionType) bool {
	switch t {
	case SubsectionLecture, SubsectionQuiz, SubsectionAssignment, SubsectionLab:
		return true
	}
	return false
}

type SessionType string

const (
	SessionClassroom SessionType = "classroom"
	SessionOneOnOne  SessionType = "one-on-one"
)

func IsValidSessionType(t SessionType) bool {
	return t == SessionClassroom || t == SessionOneOnOne
}

type CourseStatus string

const (
	StatusActive   CourseStatus = "active"
	StatusPaused   CourseStatus = "paused"
	StatusArchived CourseStatus = "archived"
)

func IsValidStatus(s CourseStatus) bool {
	return s == StatusActive || s == StatusPaused || s == StatusArchived
}

var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ActivityKind is a tracked interaction with a published course.
type ActivityKind string

const (
	ActivityClick   ActivityKind = "click"
	ActivityBooking ActivityKind = "booking"
)

func IsValidActivityKind(k ActivityKind) bool {
	return k == ActivityClick || k == ActivityBooking
}
