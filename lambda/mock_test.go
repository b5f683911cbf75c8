package lambda

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

type mockFunctionApi struct {
	// pages are returned one per ListVersionsByFunction call, chained by Marker.
	pages      [][]types.FunctionConfiguration
	listErr    error
	publishOut *lambda.PublishVersionOutput
	publishErr error
	deleteErr  error

	listCalls     int
	publishInputs []*lambda.PublishVersionInput
	deleteInputs  []*lambda.DeleteFunctionInput
}

func (m *mockFunctionApi) ListVersionsByFunction(ctx context.Context, params *lambda.ListVersionsByFunctionInput, optFns ...func(*lambda.Options)) (*lambda.ListVersionsByFunctionOutput, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	page := 0
	if params.Marker != nil {
		page = int((*params.Marker)[0] - '0')
	}
	if page >= len(m.pages) {
		return &lambda.ListVersionsByFunctionOutput{}, nil
	}
	out := &lambda.ListVersionsByFunctionOutput{Versions: m.pages[page]}
	if page+1 < len(m.pages) {
		out.NextMarker = aws.String(string(rune('0' + page + 1)))
	}
	return out, nil
}

func (m *mockFunctionApi) PublishVersion(ctx context.Context, params *lambda.PublishVersionInput, optFns ...func(*lambda.Options)) (*lambda.PublishVersionOutput, error) {
	m.publishInputs = append(m.publishInputs, params)
	if m.publishErr != nil {
		return nil, m.publishErr
	}
	if m.publishOut != nil {
		return m.publishOut, nil
	}
	return &lambda.PublishVersionOutput{
		FunctionName: params.FunctionName,
		Version:      aws.String("1"),
		Description:  params.Description,
	}, nil
}

func (m *mockFunctionApi) DeleteFunction(ctx context.Context, params *lambda.DeleteFunctionInput, optFns ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error) {
	m.deleteInputs = append(m.deleteInputs, params)
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return &lambda.DeleteFunctionOutput{}, nil
}

type mockRoleChecker struct {
	exists bool
	err    error
	arns   []string
}

func (m *mockRoleChecker) RoleExists(ctx context.Context, roleArn string) (bool, error) {
	m.arns = append(m.arns, roleArn)
	return m.exists, m.err
}

func version(id, modified string) types.FunctionConfiguration {
	return types.FunctionConfiguration{
		FunctionName: aws.String("test-function"),
		Version:      aws.String(id),
		LastModified: aws.String(modified),
		Role:         aws.String("arn:aws:iam::123456789012:role/test"),
	}
}

var errNetwork = errors.New("connection reset")
