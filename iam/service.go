package iam

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

type Api interface {
	GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error)
}

type ServiceWrapper struct {
	Client Api
	Logger zerolog.Logger
}

func Client(cfg aws.Config) *iam.Client {
	return iam.NewFromConfig(cfg)
}

// RoleName extracts the role name from a role ARN such as
// arn:aws:iam::123456789012:role/service-role/my-role. A bare name is
// returned unchanged.
func RoleName(roleArn string) (string, error) {
	if !arn.IsARN(roleArn) {
		return roleArn, nil
	}
	parsed, err := arn.Parse(roleArn)
	if err != nil {
		return "", err
	}
	if parsed.Service != "iam" || !strings.HasPrefix(parsed.Resource, "role/") {
		return "", fmt.Errorf("not a role ARN: %s", roleArn)
	}
	return parsed.Resource[strings.LastIndex(parsed.Resource, "/")+1:], nil
}

// RoleExists reports whether the role behind roleArn can still be found.
func (wrapper ServiceWrapper) RoleExists(ctx context.Context, roleArn string) (bool, error) {
	roleName, err := RoleName(roleArn)
	if err != nil {
		return false, err
	}
	result, err := wrapper.Client.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.(type) {
			case *types.NoSuchEntityException:
				wrapper.Logger.Debug().Str("role", roleName).Msg("role does not exist")
				return false, nil
			}
		}
		return false, fmt.Errorf("get role %s: %w", roleName, err)
	}
	wrapper.Logger.Debug().Str("role", aws.ToString(result.Role.Arn)).Msg("role exists")
	return true, nil
}
