package risk

import "time"

// Season 季节
type Season string

const (
	SeasonFruehling Season = "fruehling"
	SeasonSommer    Season = "sommer"
	SeasonHerbst    Season = "herbst"
	SeasonWinter    Season = "winter"
	// SeasonAlle 模板适用于所有季节
	SeasonAlle Season = "alle"
)

// Seasons 四个具体季节
var Seasons = []Season{SeasonFruehling, SeasonSommer, SeasonHerbst, SeasonWinter}

var seasonLabels = map[Season]string{
	SeasonFruehling: "Frühling",
	SeasonSommer:    "Sommer",
	SeasonHerbst:    "Herbst",
	SeasonWinter:    "Winter",
	SeasonAlle:      "Alle",
}

// Label 德语名称
func (s Season) Label() string {
	return seasonLabels[s]
}

// Valid 是否为具体季节
func (s Season) Valid() bool {
	switch s {
	case SeasonFruehling, SeasonSommer, SeasonHerbst, SeasonWinter:
		return true
	}
	return false
}

// ParseSeason 同时接受代码和德语名称
func ParseSeason(v string) (Season, bool) {
	s := Season(v)
	if _, ok := seasonLabels[s]; ok {
		return s, true
	}
	for code, label := range seasonLabels {
		if label == v {
			return code, true
		}
	}
	return "", false
}

// SeasonOf 按月份推导季节：3-5 春，6-8 夏，9-11 秋，其余冬
func SeasonOf(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return SeasonFruehling
	case m >= time.June && m <= time.August:
		return SeasonSommer
	case m >= time.September && m <= time.November:
		return SeasonHerbst
	default:
		return SeasonWinter
	}
}

// Setting 室内/室外
type Setting string

const (
	SettingIndoor  Setting = "indoor"
	SettingOutdoor Setting = "outdoor"
	SettingBoth    Setting = "both"
	SettingAlle    Setting = "alle"
)

// Valid 是否为具体取值
func (s Setting) Valid() bool {
	return s == SettingIndoor || s == SettingOutdoor || s == SettingBoth
}

// IsOutdoor 是否包含室外部分
func (s Setting) IsOutdoor() bool {
	return s == SettingOutdoor || s == SettingBoth
}
