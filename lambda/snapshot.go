package lambda

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// VersionSnapshot is the configuration of one function version with field
// names in snake case.
type VersionSnapshot struct {
	CodeSha256    string                 `json:"code_sha256" yaml:"code_sha256"`
	CodeSize      int64                  `json:"code_size" yaml:"code_size"`
	Description   string                 `json:"description" yaml:"description"`
	Environment   *EnvironmentSnapshot   `json:"environment,omitempty" yaml:"environment,omitempty"`
	FunctionArn   string                 `json:"function_arn" yaml:"function_arn"`
	FunctionName  string                 `json:"function_name" yaml:"function_name"`
	Handler       string                 `json:"handler" yaml:"handler"`
	LastModified  string                 `json:"last_modified" yaml:"last_modified"`
	MemorySize    int32                  `json:"memory_size" yaml:"memory_size"`
	RevisionID    string                 `json:"revision_id" yaml:"revision_id"`
	Role          string                 `json:"role" yaml:"role"`
	Runtime       string                 `json:"runtime" yaml:"runtime"`
	Timeout       int32                  `json:"timeout" yaml:"timeout"`
	TracingConfig *TracingConfigSnapshot `json:"tracing_config,omitempty" yaml:"tracing_config,omitempty"`
	Version       string                 `json:"version" yaml:"version"`
	VpcConfig     *VpcConfigSnapshot     `json:"vpc_config,omitempty" yaml:"vpc_config,omitempty"`
}

// EnvironmentSnapshot keeps variable names exactly as the function defines them.
type EnvironmentSnapshot struct {
	Variables map[string]string `json:"variables" yaml:"variables"`
}

type TracingConfigSnapshot struct {
	Mode string `json:"mode" yaml:"mode"`
}

type VpcConfigSnapshot struct {
	SecurityGroupIds []string `json:"security_group_ids" yaml:"security_group_ids"`
	SubnetIds        []string `json:"subnet_ids" yaml:"subnet_ids"`
	VpcId            string   `json:"vpc_id" yaml:"vpc_id"`
}

func snapshotFromConfiguration(c types.FunctionConfiguration) *VersionSnapshot {
	snapshot := &VersionSnapshot{
		CodeSha256:   aws.ToString(c.CodeSha256),
		CodeSize:     c.CodeSize,
		Description:  aws.ToString(c.Description),
		FunctionArn:  aws.ToString(c.FunctionArn),
		FunctionName: aws.ToString(c.FunctionName),
		Handler:      aws.ToString(c.Handler),
		LastModified: aws.ToString(c.LastModified),
		MemorySize:   aws.ToInt32(c.MemorySize),
		RevisionID:   aws.ToString(c.RevisionId),
		Role:         aws.ToString(c.Role),
		Runtime:      string(c.Runtime),
		Timeout:      aws.ToInt32(c.Timeout),
		Version:      aws.ToString(c.Version),
	}
	if c.Environment != nil {
		snapshot.Environment = &EnvironmentSnapshot{Variables: c.Environment.Variables}
	}
	if c.TracingConfig != nil {
		snapshot.TracingConfig = &TracingConfigSnapshot{Mode: string(c.TracingConfig.Mode)}
	}
	if c.VpcConfig != nil {
		snapshot.VpcConfig = &VpcConfigSnapshot{
			SecurityGroupIds: c.VpcConfig.SecurityGroupIds,
			SubnetIds:        c.VpcConfig.SubnetIds,
			VpcId:            aws.ToString(c.VpcConfig.VpcId),
		}
	}
	return snapshot
}

func snapshotFromPublishOutput(out *lambda.PublishVersionOutput) *VersionSnapshot {
	return snapshotFromConfiguration(types.FunctionConfiguration{
		CodeSha256:    out.CodeSha256,
		CodeSize:      out.CodeSize,
		Description:   out.Description,
		Environment:   out.Environment,
		FunctionArn:   out.FunctionArn,
		FunctionName:  out.FunctionName,
		Handler:       out.Handler,
		LastModified:  out.LastModified,
		MemorySize:    out.MemorySize,
		RevisionId:    out.RevisionId,
		Role:          out.Role,
		Runtime:       out.Runtime,
		Timeout:       out.Timeout,
		TracingConfig: out.TracingConfig,
		Version:       out.Version,
		VpcConfig:     out.VpcConfig,
	})
}
