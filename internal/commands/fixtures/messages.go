package fixturescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importMessageType = "landing.fixtures.import_directory"

// ImportDirectoryCommand loads every markdown fixture below Directory into the
// content store.
type ImportDirectoryCommand struct {
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importMessageType }

func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("landing.fixtures.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
