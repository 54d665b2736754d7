package dockerfile

// Form is the editable Dockerfile state: the selected template plus every
// field a preset populates.
type Form struct {
	Template string `yaml:"template" json:"template"`
	Preset   `yaml:",inline"`
	// CustomInstructions is free text emitted before CMD. Presets leave it empty.
	CustomInstructions string `yaml:"customInstructions" json:"customInstructions"`
}

// NewForm returns a form populated from the named preset.
func NewForm(r *Registry, name string) (*Form, error) {
	f := &Form{}
	if err := f.Apply(r, name); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply overwrites every editable field with the named preset. The form is
// left untouched when the name is unknown.
func (f *Form) Apply(r *Registry, name string) error {
	p, err := r.Get(name)
	if err != nil {
		return err
	}
	f.Template = name
	f.Preset = p
	f.CustomInstructions = ""
	return nil
}

// ApplyPreset applies a built-in preset.
func (f *Form) ApplyPreset(name string) error {
	return f.Apply(Builtin(), name)
}
