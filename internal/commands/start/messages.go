package startcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	startMessageType = "landing.start.submit"
	// MaxInputNameLength bounds the submitted name in characters.
	MaxInputNameLength = 256
)

// StartCommand is the call-to-action form submission of an anonymous visitor.
type StartCommand struct {
	InputName string `json:"inputName"`
}

// Type implements command.Message.
func (StartCommand) Type() string { return startMessageType }

// Validate requires a non-blank name of at most MaxInputNameLength characters.
func (cmd StartCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.InputName,
			validation.Required,
			validation.RuneLength(1, MaxInputNameLength),
			validation.By(func(value any) error {
				if strings.TrimSpace(value.(string)) == "" {
					return validation.NewError("landing.start.input_name_blank", "input name must not be blank")
				}
				return nil
			}),
		),
	)
}

// StartResult acknowledges a submission.
type StartResult struct {
	Success bool   `json:"success"`
	Value   string `json:"value"`
}
