package tui

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted reports that the user interrupted a prompt.
var ErrAborted = errors.New("tui: prompt aborted")

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// PromptDriver abstracts the actual TUI implementation so CLI flows can be
// tested without a real terminal and callers can swap implementations.
type PromptDriver interface {
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

// NewDriver returns the survey-backed prompt driver.
func NewDriver() PromptDriver {
	return &surveyDriver{}
}

type surveyDriver struct{}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
