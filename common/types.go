package common

import "fmt"

type DesiredState int

const (
	Present DesiredState = iota
	Absent
)

func (s DesiredState) String() string {
	switch s {
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return fmt.Sprintf("DesiredState(%d)", int(s))
	}
}

// ParseDesiredState accepts "present" and "absent". An empty value means present.
func ParseDesiredState(s string) (DesiredState, error) {
	switch s {
	case "", "present":
		return Present, nil
	case "absent":
		return Absent, nil
	default:
		return Present, &InputError{Message: fmt.Sprintf("state must be one of present, absent; got %q", s)}
	}
}

type VersionParams struct {
	FunctionName       string
	State              DesiredState
	FunctionVersion    string
	CodeSha256         string
	RevisionID         string
	VersionDescription string
	Region             string
	Profile            string
	CheckMode          bool
	RequireRole        bool
}
