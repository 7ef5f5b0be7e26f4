package cmd

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/radiofrance/strargs/pkg/argparse"
)

const (
	consoleFormat = "console"
	yamlFormat    = "yaml"
	jsonFormat    = "json"
	tokensFormat  = "tokens"
)

// parseOutputFormat ensures the value of the "--output" flag is valid.
func parseOutputFormat(output string) (string, error) {
	switch output {
	case "":
		return consoleFormat, nil
	case consoleFormat, yamlFormat, jsonFormat, tokensFormat:
		return output, nil
	default:
		return "", fmt.Errorf("\"%s\" is not a valid output format", output)
	}
}

func renderArguments(w io.Writer, args argparse.Arguments, format string) error {
	switch format {
	case yamlFormat:
		out, err := yaml.Marshal(args.Map())
		if err != nil {
			return fmt.Errorf("failed to render yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case jsonFormat:
		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(args.Map(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case tokensFormat:
		for _, token := range args.Tokens() {
			if _, err := fmt.Fprintln(w, token); err != nil {
				return err
			}
		}
		return nil
	default:
		renderConsoleOutput(w, args)
		return nil
	}
}

// renderConsoleOutput displays the arguments as a nice table.
func renderConsoleOutput(w io.Writer, args argparse.Arguments) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	data := make([][]string, 0, args.Len())
	for _, key := range args.Keys() {
		data = append(data, []string{key, args.Value(key)})
	}

	table.AppendBulk(data)

	table.SetHeader([]string{"Key", "Value"})
	table.Render()
}
