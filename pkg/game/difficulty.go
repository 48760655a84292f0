package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Difficulty 游戏难度
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

// Difficulties 返回所有难度（按显示顺序）
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Label 返回菜单上显示的文字
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyNormal:
		return "Normal"
	case DifficultyHard:
		return "Hard"
	default:
		return "?"
	}
}

// ParseDifficulty 解析难度名称（不区分大小写）
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return DifficultyNormal, fmt.Errorf("unknown difficulty %q", s)
}

// MarshalYAML 以名称形式写入存档
func (d Difficulty) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML 从名称解析
func (d *Difficulty) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(name)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
