package user

// Preferences holds per-user UI settings stored as a JSON document.
type Preferences struct {
	DarkMode bool `json:"dark_mode"`
	// Extra keeps keys this version does not know about so they survive updates.
	Extra map[string]interface{} `json:"-"`
}

func DefaultPreferences() Preferences {
	return Preferences{}
}

// ToMap flattens the preferences for JSON storage.
func (p Preferences) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(p.Extra)+1)
	for k, v := range p.Extra {
		out[k] = v
	}
	out["dark_mode"] = p.DarkMode
	return out
}

// PreferencesFromMap is the inverse of ToMap. Unknown keys land in Extra.
func PreferencesFromMap(m map[string]interface{}) Preferences {
	p := Preferences{}
	for k, v := range m {
		if k == "dark_mode" {
			if b, ok := v.(bool); ok {
				p.DarkMode = b
			}
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]interface{})
		}
		p.Extra[k] = v
	}
	return p
}
