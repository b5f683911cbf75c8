package lambda

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog"
)

// FunctionApi is the subset of the Lambda API used to manage versions.
type FunctionApi interface {
	ListVersionsByFunction(ctx context.Context, params *lambda.ListVersionsByFunctionInput, optFns ...func(*lambda.Options)) (*lambda.ListVersionsByFunctionOutput, error)
	PublishVersion(ctx context.Context, params *lambda.PublishVersionInput, optFns ...func(*lambda.Options)) (*lambda.PublishVersionOutput, error)
	DeleteFunction(ctx context.Context, params *lambda.DeleteFunctionInput, optFns ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error)
}

type ServiceWrapper struct {
	Client FunctionApi
	Logger zerolog.Logger
}

// PublishOptions holds the optional fields of a publish request. A nil field
// is left out of the request.
type PublishOptions struct {
	Description *string
	CodeSha256  *string
	RevisionID  *string
}

// RoleChecker reports whether an execution role still exists.
type RoleChecker interface {
	RoleExists(ctx context.Context, roleArn string) (bool, error)
}

type OperationResult struct {
	Changed bool             `json:"changed" yaml:"changed"`
	Version *VersionSnapshot `json:"version,omitempty" yaml:"version,omitempty"`
	Message string           `json:"msg,omitempty" yaml:"msg,omitempty"`
}
