package lambda

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/rs/zerolog"

	"github.com/a-pavithraa/lambda-version/common"
)

// Fractional seconds are accepted when parsing even though the layout omits them.
const lastModifiedLayout = "2006-01-02T15:04:05-0700"

const (
	msgCodeHashMismatch = "code hash mismatch"
	msgRevisionMismatch = "revision mismatch"
	msgCheckPublish     = "check mode: version would be published"
	msgCheckDelete      = "check mode: version would be deleted"
)

// VersionManager publishes or deletes versions of a single function. The
// version list is fetched once, when the manager is created.
type VersionManager struct {
	wrapper  ServiceWrapper
	params   common.VersionParams
	versions []types.FunctionConfiguration
	roles    RoleChecker
	logger   zerolog.Logger
}

type Option func(*VersionManager)

func WithLogger(logger zerolog.Logger) Option {
	return func(m *VersionManager) {
		m.logger = logger
	}
}

// WithRoleChecker enables the execution role check that runs before publishing.
func WithRoleChecker(roles RoleChecker) Option {
	return func(m *VersionManager) {
		m.roles = roles
	}
}

func NewVersionManager(ctx context.Context, wrapper ServiceWrapper, params common.VersionParams, opts ...Option) (*VersionManager, error) {
	m := &VersionManager{
		wrapper: wrapper,
		params:  params,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.wrapper.Logger = m.logger

	versions, err := m.wrapper.ListVersions(ctx, params.FunctionName)
	if err != nil {
		return nil, err
	}
	m.versions = versions
	return m, nil
}

func (m *VersionManager) Run(ctx context.Context) (*OperationResult, error) {
	if len(m.versions) == 0 {
		if m.params.State == common.Present {
			return nil, &OperationError{Op: "publish version", FunctionName: m.params.FunctionName, Kind: ErrFunctionNotFound}
		}
		m.logger.Info().Str("function", m.params.FunctionName).Msg("function does not exist, nothing to delete")
		return &OperationResult{Changed: false}, nil
	}
	if m.params.State == common.Absent {
		return m.EnsureDeleted(ctx)
	}
	return m.EnsurePublished(ctx)
}

// EnsurePublished publishes a new version when $LATEST was modified after the
// most recent published version, or when nothing was published yet.
func (m *VersionManager) EnsurePublished(ctx context.Context) (*OperationResult, error) {
	name := m.params.FunctionName
	if len(m.versions) == 0 {
		return nil, &OperationError{Op: "publish version", FunctionName: name, Kind: ErrFunctionNotFound}
	}

	latest, published, err := newestVersions(m.versions)
	if err != nil {
		return nil, &OperationError{Op: "compare versions", FunctionName: name, Kind: ErrInvalidTimestamp, Err: err}
	}
	if latest == nil {
		return nil, &OperationError{Op: "compare versions", FunctionName: name, Qualifier: common.LatestQualifier, Kind: ErrFunctionNotFound}
	}

	if published != nil && !latest.modified.After(published.modified) {
		m.logger.Info().Str("function", name).Str("version", aws.ToString(published.config.Version)).
			Msg("no changes since last published version")
		return &OperationResult{Changed: false, Version: snapshotFromConfiguration(published.config)}, nil
	}

	if m.params.CheckMode {
		return &OperationResult{Changed: true, Version: snapshotFromConfiguration(latest.config), Message: msgCheckPublish}, nil
	}

	if m.roles != nil {
		if err := m.checkRole(ctx, aws.ToString(latest.config.Role)); err != nil {
			return nil, err
		}
	}

	opts := PublishOptions{
		Description: optionalString(m.params.VersionDescription),
		CodeSha256:  optionalString(m.params.CodeSha256),
		RevisionID:  optionalString(m.params.RevisionID),
	}
	out, err := m.wrapper.PublishVersion(ctx, name, opts)
	if err != nil {
		var preconditionErr *types.PreconditionFailedException
		var invalidParamErr *types.InvalidParameterValueException
		switch {
		case errors.As(err, &preconditionErr):
			m.logger.Info().Str("function", name).Msg("revision id does not match $LATEST, not publishing")
			return &OperationResult{Changed: false, Message: msgRevisionMismatch}, nil
		case opts.CodeSha256 != nil && errors.As(err, &invalidParamErr):
			m.logger.Info().Str("function", name).Msg("code hash does not match $LATEST, not publishing")
			return &OperationResult{Changed: false, Message: msgCodeHashMismatch}, nil
		}
		return nil, &OperationError{Op: "publish version", FunctionName: name, Kind: ErrTransport, Err: err}
	}

	m.logger.Info().Str("function", name).Str("version", aws.ToString(out.Version)).Msg("published new version")
	return &OperationResult{Changed: true, Version: snapshotFromPublishOutput(out)}, nil
}

// EnsureDeleted deletes the requested version if it is still listed.
func (m *VersionManager) EnsureDeleted(ctx context.Context) (*OperationResult, error) {
	name, qualifier := m.params.FunctionName, m.params.FunctionVersion
	if qualifier == "" {
		return nil, &OperationError{Op: "delete version", FunctionName: name, Kind: ErrMissingParameter,
			Err: &common.InputError{Message: "function_version is required when state is absent"}}
	}

	if !m.versionExists(qualifier) {
		m.logger.Info().Str("function", name).Str("qualifier", qualifier).Msg("version does not exist")
		return &OperationResult{Changed: false}, nil
	}

	if m.params.CheckMode {
		return &OperationResult{Changed: true, Message: msgCheckDelete}, nil
	}

	if err := m.wrapper.DeleteVersion(ctx, name, qualifier); err != nil {
		return nil, &OperationError{Op: "delete version", FunctionName: name, Qualifier: qualifier, Kind: ErrDeletionFailed, Err: err}
	}
	m.logger.Info().Str("function", name).Str("qualifier", qualifier).Msg("deleted version")
	return &OperationResult{Changed: true}, nil
}

func (m *VersionManager) versionExists(qualifier string) bool {
	for _, v := range m.versions {
		if aws.ToString(v.Version) == qualifier {
			return true
		}
	}
	return false
}

func (m *VersionManager) checkRole(ctx context.Context, roleArn string) error {
	name := m.params.FunctionName
	if roleArn == "" {
		return &OperationError{Op: "check execution role", FunctionName: name, Kind: ErrRoleNotFound}
	}
	exists, err := m.roles.RoleExists(ctx, roleArn)
	if err != nil {
		return &OperationError{Op: "check execution role", FunctionName: name, Kind: ErrTransport, Err: err}
	}
	if !exists {
		m.logger.Warn().Str("function", name).Str("role", roleArn).Msg("execution role is missing")
		return &OperationError{Op: "check execution role", FunctionName: name, Kind: ErrRoleNotFound}
	}
	return nil
}

type datedVersion struct {
	config   types.FunctionConfiguration
	modified time.Time
}

// newestVersions finds the $LATEST entry and the most recently modified
// published version in a single pass. List order is not relied upon.
func newestVersions(versions []types.FunctionConfiguration) (latest, published *datedVersion, err error) {
	for _, v := range versions {
		modified, err := parseLastModified(aws.ToString(v.LastModified))
		if err != nil {
			return nil, nil, err
		}
		current := &datedVersion{config: v, modified: modified}
		if aws.ToString(v.Version) == common.LatestQualifier {
			latest = current
			continue
		}
		if published == nil || modified.After(published.modified) {
			published = current
		}
	}
	return latest, published, nil
}

func parseLastModified(s string) (time.Time, error) {
	t, err := time.Parse(lastModifiedLayout, s)
	if err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, err
}
