package chat

import (
	"embed"
	"fmt"
	"strings"

	"github.com/theorem-health/avatar-gateway/pkg/apperr"
)

//go:embed prompts/*.txt
var promptFS embed.FS

// SystemPromptFor loads the mode-specific system prompt used on the
// fallback path. A missing prompt resource is a configuration fault, not
// an upstream one.
func SystemPromptFor(mode string) (string, error) {
	data, err := promptFS.ReadFile(fmt.Sprintf("prompts/%s_avatar.txt", mode))
	if err != nil {
		return "", apperr.Wrap(apperr.Configuration, err, "Prompt file not found: %s_avatar.txt", mode)
	}
	return strings.TrimSpace(string(data)), nil
}
