package iam

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type mockIAMClient struct {
	err       error
	roleNames []string
}

func (m *mockIAMClient) GetRole(ctx context.Context, input *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error) {
	m.roleNames = append(m.roleNames, aws.ToString(input.RoleName))
	if m.err != nil {
		return nil, m.err
	}
	return &iam.GetRoleOutput{
		Role: &types.Role{
			Arn: aws.String("arn:aws:iam::123456789012:role/" + aws.ToString(input.RoleName)),
		},
	}, nil
}

func TestRoleName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"arn:aws:iam::123456789012:role/test", "test", false},
		{"arn:aws:iam::123456789012:role/service-role/test", "test", false},
		{"test", "test", false},
		{"arn:aws:iam::123456789012:user/test", "", true},
		{"arn:aws:s3:::role/test", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := RoleName(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServiceWrapper_RoleExists(t *testing.T) {
	mock := &mockIAMClient{}
	sw := ServiceWrapper{Client: mock, Logger: zerolog.Nop()}

	exists, err := sw.RoleExists(context.TODO(), "arn:aws:iam::123456789012:role/service-role/test")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{"test"}, mock.roleNames)
}

func TestServiceWrapper_RoleMissing(t *testing.T) {
	sw := ServiceWrapper{
		Client: &mockIAMClient{err: &types.NoSuchEntityException{Message: aws.String("not found")}},
		Logger: zerolog.Nop(),
	}
	exists, err := sw.RoleExists(context.TODO(), "arn:aws:iam::123456789012:role/test")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestServiceWrapper_RoleLookupFails(t *testing.T) {
	cause := errors.New("throttled")
	sw := ServiceWrapper{Client: &mockIAMClient{err: cause}, Logger: zerolog.Nop()}

	exists, err := sw.RoleExists(context.TODO(), "arn:aws:iam::123456789012:role/test")
	assert.False(t, exists)
	assert.ErrorIs(t, err, cause)
}
