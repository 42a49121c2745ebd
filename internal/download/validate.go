package download

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ytget/hitplayer/internal/model"
)

var validate = validator.New()

// ValidateRequest checks that a request names a source and an existing destination directory
func ValidateRequest(req model.Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
