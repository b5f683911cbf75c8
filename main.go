package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/a-pavithraa/lambda-version/common"
	"github.com/a-pavithraa/lambda-version/formatter"
	"github.com/a-pavithraa/lambda-version/iam"
	"github.com/a-pavithraa/lambda-version/lambda"
	"github.com/a-pavithraa/lambda-version/version"
)

func envVar(name string) []string {
	return []string{"LAMBDA_VERSION_" + strings.ToUpper(name)}
}

func versionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "yaml or toml config file name",
		},
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "function_name",
				Aliases: []string{"n"},
				Usage:   "Name or ARN of the Lambda function",
				EnvVars: envVar("function_name"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "state",
				Value:   "present",
				Usage:   "Desired state of the version - present or absent",
				EnvVars: envVar("state"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "function_version",
				Aliases: []string{"fv"},
				Usage:   "Version to delete when state is absent",
				EnvVars: envVar("function_version"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "code_sha_256",
				Usage:   "Only publish if $LATEST code has this SHA256",
				EnvVars: envVar("code_sha_256"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "revision_id",
				Usage:   "Only publish if $LATEST has this revision id",
				EnvVars: envVar("revision_id"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "version_description",
				Aliases: []string{"d"},
				Usage:   "Description of the published version",
				EnvVars: envVar("version_description"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "region",
				Aliases: []string{"r"},
				Usage:   "Region",
				EnvVars: append(envVar("region"), "AWS_REGION"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "Shared config profile",
				EnvVars: append(envVar("profile"), "AWS_PROFILE"),
			},
		),
		altsrc.NewBoolFlag(
			&cli.BoolFlag{
				Name:    "check",
				Usage:   "Report what would change without publishing or deleting",
				EnvVars: envVar("check"),
			},
		),
		altsrc.NewBoolFlag(
			&cli.BoolFlag{
				Name:    "require_role",
				Usage:   "Refuse to publish when the execution role of $LATEST no longer exists",
				EnvVars: envVar("require_role"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   formatter.FormatJSON,
				Usage:   "Output format - json, yaml or text",
				EnvVars: envVar("output"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "log_level",
				Value:   "info",
				Usage:   "debug, info, warn or error",
				EnvVars: envVar("log_level"),
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "log_format",
				Value:   "console",
				Usage:   "console or json",
				EnvVars: envVar("log_format"),
			},
		),
	}
}

func newApp() *cli.App {
	flags := versionFlags()
	before := altsrc.InitInputSourceWithContext(flags, configSource)
	commands := []*cli.Command{
		{
			Name:   "ensure",
			Before: before,
			Flags:  flags,
			Usage:  "Publishes a version when $LATEST changed, or deletes a version when state is absent",
			Action: EnsureVersion,
		},
		{
			Name:    "publish_version",
			Aliases: []string{"pv"},
			Before:  before,
			Flags:   flags,
			Usage:   "Publishes a new version if $LATEST is newer than the last published version",
			Action:  PublishVersion,
		},
		{
			Name:    "delete_version",
			Aliases: []string{"dv"},
			Before:  before,
			Flags:   flags,
			Usage:   "Deletes a published version",
			Action:  DeleteVersion,
		},
	}

	return &cli.App{
		Name:     "lambda-version",
		Usage:    "Publishes and deletes Lambda function versions",
		Version:  version.Get().String(),
		Commands: commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()
		logger.Fatal().Err(err).Msg("Not able to run the command")
	}
}

// configSource picks the altsrc loader from the extension of --config.
func configSource(cCtx *cli.Context) (altsrc.InputSourceContext, error) {
	path := cCtx.String("config")
	if path == "" {
		return altsrc.NewMapInputSource("", map[interface{}]interface{}{}), nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return altsrc.NewYamlSourceFromFile(path)
	case ".toml":
		return altsrc.NewTomlSourceFromFile(path)
	default:
		return nil, &common.InputError{Message: "unsupported config extension: " + ext}
	}
}

func EnsureVersion(cCtx *cli.Context) error {
	params, err := SetVersionParams(cCtx)
	if err != nil {
		return err
	}
	return runVersionManager(cCtx, params)
}

func PublishVersion(cCtx *cli.Context) error {
	params, err := SetVersionParams(cCtx)
	if err != nil {
		return err
	}
	params.State = common.Present
	return runVersionManager(cCtx, params)
}

func DeleteVersion(cCtx *cli.Context) error {
	params, err := SetVersionParams(cCtx)
	if err != nil {
		return err
	}
	params.State = common.Absent
	if common.TrimAndCheckEmptyString(&params.FunctionVersion) {
		return &common.InputError{
			Message: "function_version is required to delete a version",
		}
	}
	return runVersionManager(cCtx, params)
}

func SetVersionParams(cCtx *cli.Context) (*common.VersionParams, error) {
	state, err := common.ParseDesiredState(strings.TrimSpace(cCtx.String("state")))
	if err != nil {
		return nil, err
	}
	params := common.VersionParams{
		FunctionName:       cCtx.String("function_name"),
		State:              state,
		FunctionVersion:    cCtx.String("function_version"),
		CodeSha256:         cCtx.String("code_sha_256"),
		RevisionID:         cCtx.String("revision_id"),
		VersionDescription: cCtx.String("version_description"),
		Region:             cCtx.String("region"),
		Profile:            cCtx.String("profile"),
		CheckMode:          cCtx.Bool("check"),
		RequireRole:        cCtx.Bool("require_role"),
	}
	return &params, nil
}

func runVersionManager(cCtx *cli.Context, params *common.VersionParams) error {
	if err := common.ValidateVersionParams(params); err != nil {
		return err
	}
	output := cCtx.String("output")
	if err := formatter.CheckFormat(output); err != nil {
		return err
	}
	logger, err := common.NewLogger(cCtx.String("log_level"), cCtx.String("log_format"))
	if err != nil {
		return err
	}

	ctx := cCtx.Context
	cfg, err := lambda.LoadConfig(ctx, params.Region, params.Profile)
	if err != nil {
		return &lambda.OperationError{Op: "load aws config", FunctionName: params.FunctionName, Kind: lambda.ErrTransport, Err: err}
	}

	opts := []lambda.Option{lambda.WithLogger(logger)}
	if params.RequireRole {
		opts = append(opts, lambda.WithRoleChecker(iam.ServiceWrapper{Client: iam.Client(cfg), Logger: logger}))
	}
	logger.Debug().Str("function", params.FunctionName).Stringer("state", params.State).Bool("check", params.CheckMode).Msg("starting")

	manager, err := lambda.NewVersionManager(ctx, lambda.ServiceWrapper{Client: lambda.Client(cfg)}, *params, opts...)
	if err != nil {
		return err
	}
	result, err := manager.Run(ctx)
	if err != nil {
		return err
	}
	return formatter.WriteResult(cCtx.App.Writer, result, output)
}
