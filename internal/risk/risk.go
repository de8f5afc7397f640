// Package risk 风险评分、季节推导与危害自动选择
package risk

import (
	"fmt"
)

// 评分刻度
const (
	MinScale = 1
	MaxScale = 5
)

// Level 风险等级
type Level string

const (
	LevelNiedrig  Level = "niedrig"
	LevelMittel   Level = "mittel"
	LevelHoch     Level = "hoch"
	LevelSehrHoch Level = "sehr_hoch"
)

// Band 风险等级区间
type Band struct {
	Level Level  `json:"level"`
	Label string `json:"label"`
	Color string `json:"color"` // 十六进制颜色
	Max   int    `json:"max"`   // 区间上限（含）
}

// Bands 按上限升序排列的四个等级
var Bands = []Band{
	{Level: LevelNiedrig, Label: "Niedrig", Color: "#c8e6c9", Max: 4},
	{Level: LevelMittel, Label: "Mittel", Color: "#fff9c4", Max: 8},
	{Level: LevelHoch, Label: "Hoch", Color: "#ffe0b2", Max: 16},
	{Level: LevelSehrHoch, Label: "Sehr hoch", Color: "#ffcdd2", Max: MaxScale * MaxScale},
}

// ValidScale 判断评分是否在 1..5
func ValidScale(n int) bool {
	return n >= MinScale && n <= MaxScale
}

// Score 计算风险值 = 严重程度 × 可能性
func Score(severity, probability int) (int, error) {
	if !ValidScale(severity) {
		return 0, fmt.Errorf("Schadenschwere %d außerhalb 1..5", severity)
	}
	if !ValidScale(probability) {
		return 0, fmt.Errorf("Wahrscheinlichkeit %d außerhalb 1..5", probability)
	}
	return severity * probability, nil
}

// Classify 将风险值映射到等级，超出上限的值归入最高等级
func Classify(score int) Band {
	for _, b := range Bands {
		if score <= b.Max {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// Assess 计算风险值并分级
func Assess(severity, probability int) (int, Band, error) {
	score, err := Score(severity, probability)
	if err != nil {
		return 0, Band{}, err
	}
	return score, Classify(score), nil
}

// Cell 风险矩阵单元
type Cell struct {
	Severity    int  `json:"severity"`
	Probability int  `json:"probability"`
	Score       int  `json:"score"`
	Band        Band `json:"band"`
}

// Matrix 生成 5×5 风险矩阵，行为严重程度，列为可能性
func Matrix() [][]Cell {
	rows := make([][]Cell, 0, MaxScale)
	for s := MinScale; s <= MaxScale; s++ {
		row := make([]Cell, 0, MaxScale)
		for p := MinScale; p <= MaxScale; p++ {
			row = append(row, Cell{Severity: s, Probability: p, Score: s * p, Band: Classify(s * p)})
		}
		rows = append(rows, row)
	}
	return rows
}
