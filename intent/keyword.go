package intent

import (
	"regexp"
	"strings"

	"github.com/bitmark-inc/neighbourmatch-api/consts"
)

type keyword struct {
	key   string
	value string
}

// skillKeywords is scanned in order by the substring pass
var skillKeywords = []keyword{
	{"sink", consts.SkillPlumbing}, {"leak", consts.SkillPlumbing}, {"leaking", consts.SkillPlumbing},
	{"plumber", consts.SkillPlumbing}, {"pipe", consts.SkillPlumbing}, {"plumbing", consts.SkillPlumbing},
	{"tap", consts.SkillPlumbing}, {"drain", consts.SkillPlumbing}, {"drip", consts.SkillPlumbing},
	{"flush", consts.SkillPlumbing}, {"bathroom", consts.SkillPlumbing}, {"toilet", consts.SkillPlumbing},
	{"shower", consts.SkillPlumbing},

	{"math", consts.SkillTutor}, {"maths", consts.SkillTutor}, {"tutor", consts.SkillTutor},
	{"teach", consts.SkillTutor}, {"teacher", consts.SkillTutor}, {"study", consts.SkillTutor},
	{"exam", consts.SkillTutor}, {"exams", consts.SkillTutor}, {"school", consts.SkillTutor},
	{"homework", consts.SkillTutor}, {"assignment", consts.SkillTutor}, {"learn", consts.SkillTutor},
	{"academic", consts.SkillTutor}, {"grade", consts.SkillTutor}, {"student", consts.SkillTutor},
	{"education", consts.SkillTutor}, {"science", consts.SkillTutor}, {"physics", consts.SkillTutor},
	{"chemistry", consts.SkillTutor}, {"english", consts.SkillTutor}, {"depressed", consts.SkillTutor},
	{"stressed", consts.SkillTutor}, {"struggling", consts.SkillTutor}, {"fail", consts.SkillTutor},
	{"failing", consts.SkillTutor}, {"marks", consts.SkillTutor}, {"test", consts.SkillTutor},

	{"cook", consts.SkillCooking}, {"food", consts.SkillCooking}, {"cooking", consts.SkillCooking},
	{"meal", consts.SkillCooking}, {"chef", consts.SkillCooking}, {"lunch", consts.SkillCooking},
	{"dinner", consts.SkillCooking}, {"breakfast", consts.SkillCooking}, {"recipe", consts.SkillCooking},
	{"kitchen", consts.SkillCooking}, {"hungry", consts.SkillCooking}, {"eat", consts.SkillCooking},

	{"clean", consts.SkillCleaning}, {"maid", consts.SkillCleaning}, {"cleaning", consts.SkillCleaning},
	{"sweep", consts.SkillCleaning}, {"dust", consts.SkillCleaning}, {"dirty", consts.SkillCleaning},
	{"mess", consts.SkillCleaning}, {"vacuum", consts.SkillCleaning}, {"tidy", consts.SkillCleaning},

	{"electric", consts.SkillElectrician}, {"wire", consts.SkillElectrician}, {"electrician", consts.SkillElectrician},
	{"fan", consts.SkillElectrician}, {"switch", consts.SkillElectrician}, {"power", consts.SkillElectrician},
	{"light", consts.SkillElectrician}, {"fuse", consts.SkillElectrician}, {"socket", consts.SkillElectrician},
	{"bulb", consts.SkillElectrician},

	{"paint", consts.SkillPainting}, {"painting", consts.SkillPainting}, {"painter", consts.SkillPainting},
	{"wall", consts.SkillPainting}, {"colour", consts.SkillPainting}, {"color", consts.SkillPainting},

	{"driver", consts.SkillDriving}, {"drive", consts.SkillDriving}, {"driving", consts.SkillDriving},
	{"cab", consts.SkillDriving}, {"ride", consts.SkillDriving}, {"drop", consts.SkillDriving},
	{"transport", consts.SkillDriving}, {"pick", consts.SkillDriving},

	{"carpenter", consts.SkillCarpentry}, {"wood", consts.SkillCarpentry}, {"furniture", consts.SkillCarpentry},
	{"carpentry", consts.SkillCarpentry}, {"shelf", consts.SkillCarpentry}, {"door", consts.SkillCarpentry},
	{"broken", consts.SkillCarpentry}, {"fix", consts.SkillCarpentry}, {"repair", consts.SkillCarpentry},
	{"table", consts.SkillCarpentry},

	{"garden", consts.SkillGardening}, {"plant", consts.SkillGardening}, {"gardening", consts.SkillGardening},
	{"tree", consts.SkillGardening}, {"grass", consts.SkillGardening}, {"flower", consts.SkillGardening},
	{"lawn", consts.SkillGardening},

	{"bike", consts.SkillMechanic}, {"car", consts.SkillMechanic}, {"vehicle", consts.SkillMechanic},
	{"petrol", consts.SkillMechanic}, {"puncture", consts.SkillMechanic}, {"punchered", consts.SkillMechanic},
	{"tyre", consts.SkillMechanic}, {"engine", consts.SkillMechanic}, {"mechanic", consts.SkillMechanic},
	{"scooter", consts.SkillMechanic}, {"gas", consts.SkillMechanic}, {"oil", consts.SkillMechanic},
}

var timeKeywords = []keyword{
	{"morning", consts.TimeMorning}, {"afternoon", consts.TimeMorning},
	{"evening", consts.TimeEvening}, {"night", consts.TimeEvening}, {"tonight", consts.TimeEvening},
	{"today", consts.TimeEvening},
	{"weekend", consts.TimeWeekend}, {"saturday", consts.TimeWeekend}, {"sunday", consts.TimeWeekend},
}

var (
	skillIndex    = map[string]string{}
	wordSeparator = regexp.MustCompile(`\W+`)
)

func init() {
	for _, k := range skillKeywords {
		skillIndex[k.key] = k.value
	}
}

// KeywordParse extracts an intent from a free text with the fixed keyword
// tables. It is pure and never needs network access.
func KeywordParse(text string) Intent {
	lower := strings.ToLower(text)

	var tokens []string
	for _, w := range wordSeparator.Split(lower, -1) {
		if w != "" {
			tokens = append(tokens, w)
		}
	}

	return Intent{
		Skill:      matchSkill(tokens),
		TimeWindow: matchTime(lower),
	}
}

func matchSkill(tokens []string) string {
	for _, token := range tokens {
		if skill, ok := skillIndex[token]; ok {
			return skill
		}
	}

	// compound words such as "pipeline" or "bulbs"
	for _, token := range tokens {
		for _, k := range skillKeywords {
			if strings.Contains(token, k.key) {
				return k.value
			}
		}
	}

	return ""
}

func matchTime(lower string) string {
	for _, k := range timeKeywords {
		if strings.Contains(lower, k.key) {
			return k.value
		}
	}
	return ""
}
