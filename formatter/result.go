package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/a-pavithraa/lambda-version/lambda"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// WriteResult renders a run result in the requested format.
func WriteResult(w io.Writer, result *lambda.OperationResult, format string) error {
	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeText(w io.Writer, result *lambda.OperationResult) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "CHANGED\t%t\n", result.Changed)
	if result.Message != "" {
		fmt.Fprintf(tw, "MESSAGE\t%s\n", result.Message)
	}
	if v := result.Version; v != nil {
		fmt.Fprintf(tw, "FUNCTION\t%s\n", v.FunctionName)
		fmt.Fprintf(tw, "VERSION\t%s\n", v.Version)
		fmt.Fprintf(tw, "ARN\t%s\n", v.FunctionArn)
		fmt.Fprintf(tw, "DESCRIPTION\t%s\n", orDash(v.Description))
		fmt.Fprintf(tw, "RUNTIME\t%s\n", orDash(v.Runtime))
		fmt.Fprintf(tw, "HANDLER\t%s\n", orDash(v.Handler))
		fmt.Fprintf(tw, "MEMORY\t%d MB\n", v.MemorySize)
		fmt.Fprintf(tw, "TIMEOUT\t%ds\n", v.Timeout)
		fmt.Fprintf(tw, "CODE SIZE\t%s\n", humanize.Bytes(uint64(v.CodeSize)))
		fmt.Fprintf(tw, "CODE SHA256\t%s\n", v.CodeSha256)
		fmt.Fprintf(tw, "REVISION\t%s\n", v.RevisionID)
		fmt.Fprintf(tw, "LAST MODIFIED\t%s\n", v.LastModified)
		if v.VpcConfig != nil && v.VpcConfig.VpcId != "" {
			fmt.Fprintf(tw, "VPC\t%s (%s)\n", v.VpcConfig.VpcId, strings.Join(v.VpcConfig.SubnetIds, ","))
		}
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func CheckFormat(format string) error {
	switch format {
	case "", FormatJSON, FormatYAML, FormatText:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
