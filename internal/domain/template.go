package domain

// VariableSpec documents a placeholder declared in a template's front matter.
type VariableSpec struct {
	Name        string
	Description string
	Default     string
	Required    bool
}

// Template is a named Markdown prompt with {name} placeholders.
// Body excludes the optional front matter block.
type Template struct {
	Name        string
	Path        string
	Description string
	System      string
	Variables   []VariableSpec
	Body        string
}

// Defaults returns the default values declared for the template's variables.
func (t Template) Defaults() Vars {
	out := Vars{}
	for _, v := range t.Variables {
		if v.Default != "" {
			out[v.Name] = v.Default
		}
	}
	return out
}

// TemplateRef is a lightweight reference to a template file on disk.
type TemplateRef struct {
	Name        string
	Path        string
	Description string
}
