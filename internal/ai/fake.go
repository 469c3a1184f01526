package ai

import "context"

// Fake is a scripted Generator for tests.
type Fake struct {
	Text string
	Err  error
}

var _ Generator = (*Fake)(nil)

func (f *Fake) Generate(context.Context, string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}
