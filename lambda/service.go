package lambda

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

func LoadConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

func Client(cfg aws.Config) *lambda.Client {
	return lambda.NewFromConfig(cfg)
}

// ListVersions returns every version of the function, $LATEST included,
// following pagination. A function that does not exist has no versions.
func (wrapper ServiceWrapper) ListVersions(ctx context.Context, name string) ([]types.FunctionConfiguration, error) {
	var versions []types.FunctionConfiguration
	paginator := lambda.NewListVersionsByFunctionPaginator(wrapper.Client, &lambda.ListVersionsByFunctionInput{
		FunctionName: aws.String(name),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) {
				switch apiErr.(type) {
				case *types.ResourceNotFoundException:
					wrapper.Logger.Debug().Str("function", name).Msg("function not found")
					return nil, nil
				}
			}
			return nil, &OperationError{Op: "list versions", FunctionName: name, Kind: ErrTransport, Err: err}
		}
		versions = append(versions, page.Versions...)
	}
	wrapper.Logger.Debug().Str("function", name).Int("versions", len(versions)).Msg("listed versions")
	return versions, nil
}

func (wrapper ServiceWrapper) PublishVersion(ctx context.Context, name string, opts PublishOptions) (*lambda.PublishVersionOutput, error) {
	wrapper.Logger.Debug().Str("function", name).
		Bool("code_sha_256", opts.CodeSha256 != nil).
		Bool("revision_id", opts.RevisionID != nil).
		Msg("publishing version")
	return wrapper.Client.PublishVersion(ctx, &lambda.PublishVersionInput{
		FunctionName: aws.String(name),
		Description:  opts.Description,
		CodeSha256:   opts.CodeSha256,
		RevisionId:   opts.RevisionID,
	})
}

func (wrapper ServiceWrapper) DeleteVersion(ctx context.Context, name, qualifier string) error {
	wrapper.Logger.Debug().Str("function", name).Str("qualifier", qualifier).Msg("deleting version")
	_, err := wrapper.Client.DeleteFunction(ctx, &lambda.DeleteFunctionInput{
		FunctionName: aws.String(name),
		Qualifier:    aws.String(qualifier),
	})
	return err
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
