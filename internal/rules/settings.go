package rules

import "strings"

type Settings struct {
	Disabled map[string]bool // rule ids left out of the catalogue
}

var rsettings = Settings{
	Disabled: map[string]bool{},
}

func SetSettings(s Settings) {
	disabled := map[string]bool{}
	for id, off := range s.Disabled {
		if off {
			disabled[normID(id)] = true
		}
	}
	rsettings = Settings{Disabled: disabled}
}

func normID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
