package ui

// Fake is a scripted Prompter for tests. Each field is consumed in
// order as the corresponding method is called; running out of
// scripted answers is a test bug and panics.
type Fake struct {
	Texts    []string
	Confirms []bool
	Selects  []int
	Editors  []string
}

var _ Prompter = (*Fake)(nil)

func (f *Fake) Text(string, string) (string, error) {
	if len(f.Texts) == 0 {
		panic("ui.Fake: no scripted Text answer")
	}
	v := f.Texts[0]
	f.Texts = f.Texts[1:]
	return v, nil
}

func (f *Fake) Confirm(string, bool) (bool, error) {
	if len(f.Confirms) == 0 {
		panic("ui.Fake: no scripted Confirm answer")
	}
	v := f.Confirms[0]
	f.Confirms = f.Confirms[1:]
	return v, nil
}

func (f *Fake) Select(string, []string) (int, error) {
	if len(f.Selects) == 0 {
		panic("ui.Fake: no scripted Select answer")
	}
	v := f.Selects[0]
	f.Selects = f.Selects[1:]
	return v, nil
}

func (f *Fake) Editor(string, string) (string, error) {
	if len(f.Editors) == 0 {
		panic("ui.Fake: no scripted Editor answer")
	}
	v := f.Editors[0]
	f.Editors = f.Editors[1:]
	return v, nil
}
