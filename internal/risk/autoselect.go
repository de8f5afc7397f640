package risk

// Criteria 危害的自动选择条件，未设置的标志不参与匹配
type Criteria struct {
	IsOutdoor             bool     `json:"is_outdoor"`
	HasElectricity        bool     `json:"has_electricity"`
	HasGenerator          bool     `json:"has_generator"`
	HasWorkAbove2m        bool     `json:"has_work_above_2m"`
	HasPublicAccess       bool     `json:"has_public_access"`
	HasNightWork          bool     `json:"has_night_work"`
	HasTrafficArea        bool     `json:"has_traffic_area"`
	HasHazardousMaterials bool     `json:"has_hazardous_materials"`
	Seasons               []Season `json:"seasons"`
	CustomCriteria        []string `json:"custom_criteria"`
}

// Attributes 项目属性
type Attributes struct {
	IsOutdoor             bool
	HasElectricity        bool
	HasGenerator          bool
	HasWorkAbove2m        bool
	HasPublicAccess       bool
	HasNightWork          bool
	HasTrafficArea        bool
	HasHazardousMaterials bool
	Season                Season
	Custom                map[string]bool
}

func (c Criteria) flags() []bool {
	return []bool{
		c.IsOutdoor, c.HasElectricity, c.HasGenerator, c.HasWorkAbove2m,
		c.HasPublicAccess, c.HasNightWork, c.HasTrafficArea, c.HasHazardousMaterials,
	}
}

func (a Attributes) flags() []bool {
	return []bool{
		a.IsOutdoor, a.HasElectricity, a.HasGenerator, a.HasWorkAbove2m,
		a.HasPublicAccess, a.HasNightWork, a.HasTrafficArea, a.HasHazardousMaterials,
	}
}

// Empty 没有任何条件
func (c Criteria) Empty() bool {
	for _, f := range c.flags() {
		if f {
			return false
		}
	}
	return len(c.Seasons) == 0 && len(c.CustomCriteria) == 0
}

// Matches 所有已设置的条件都被项目满足时返回 true，空条件永不匹配
func (c Criteria) Matches(a Attributes) bool {
	if c.Empty() {
		return false
	}
	af := a.flags()
	for i, f := range c.flags() {
		if f && !af[i] {
			return false
		}
	}
	if len(c.Seasons) > 0 {
		found := false
		for _, s := range c.Seasons {
			if s == a.Season || s == SeasonAlle {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, name := range c.CustomCriteria {
		if !a.Custom[name] {
			return false
		}
	}
	return true
}

// Select 返回条件匹配项目属性的元素，保持原有顺序
func Select[T any](items []T, criteria func(T) Criteria, attrs Attributes) []T {
	out := make([]T, 0)
	for _, item := range items {
		if criteria(item).Matches(attrs) {
			out = append(out, item)
		}
	}
	return out
}
