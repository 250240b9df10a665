package consts

import "strings"

const (
	SkillPlumbing    = "Plumbing"
	SkillTutor       = "Tutor"
	SkillCooking     = "Cooking"
	SkillCleaning    = "Cleaning"
	SkillElectrician = "Electrician"
	SkillPainting    = "Painting"
	SkillDriving     = "Driving"
	SkillCarpentry   = "Carpentry"
	SkillGardening   = "Gardening"
	SkillMechanic    = "Mechanic"
)

const (
	TimeMorning = "Morning"
	TimeEvening = "Evening"
	TimeWeekend = "Weekend"
)

var Skills = []string{
	SkillPlumbing,
	SkillTutor,
	SkillCooking,
	SkillCleaning,
	SkillElectrician,
	SkillPainting,
	SkillDriving,
	SkillCarpentry,
	SkillGardening,
	SkillMechanic,
}

var TimeWindows = []string{
	TimeMorning,
	TimeEvening,
	TimeWeekend,
}

// CanonicalSkill returns the canonical spelling of a skill, matched case-insensitively
func CanonicalSkill(skill string) (string, bool) {
	return canonical(Skills, skill)
}

// CanonicalTimeWindow returns the canonical spelling of a time window
func CanonicalTimeWindow(window string) (string, bool) {
	return canonical(TimeWindows, window)
}

func canonical(values []string, v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, c := range values {
		if strings.EqualFold(c, v) {
			return c, true
		}
	}
	return "", false
}
