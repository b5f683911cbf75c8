package common

import (
	"fmt"
	"strings"
)

const LatestQualifier = "$LATEST"

type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf(
		"Error in inputs: %s",
		e.Message)
}

func TrimAndCheckEmptyString(s *string) bool {
	*s = strings.TrimSpace(*s)
	return len(*s) == 0
}

// ValidateVersionParams trims every string parameter in place and reports all
// problems at once.
func ValidateVersionParams(params *VersionParams) error {
	var errorMessage strings.Builder
	if TrimAndCheckEmptyString(&params.FunctionName) {
		errorMessage.WriteString("Function Name cannot be null.\n")
	}
	TrimAndCheckEmptyString(&params.CodeSha256)
	TrimAndCheckEmptyString(&params.RevisionID)
	TrimAndCheckEmptyString(&params.VersionDescription)
	TrimAndCheckEmptyString(&params.Region)
	TrimAndCheckEmptyString(&params.Profile)

	TrimAndCheckEmptyString(&params.FunctionVersion)
	if params.State == Absent && params.FunctionVersion == LatestQualifier {
		errorMessage.WriteString("$LATEST cannot be deleted.\n")
	}

	if len(errorMessage.String()) > 0 {
		return &InputError{
			Message: errorMessage.String(),
		}
	}
	return nil
}
