package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

const requestTimeout = 90 * time.Second

var (
	exportFormat string
	exportOutput string
)

var sendCmd = &cobra.Command{
	Use:   "send <text>",
	Short: "Send one message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewAPIClient(serverURL, requestTimeout)
		res, err := client.SubmitTurn(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		printTurn(cmd.OutOrStdout(), res)
		return nil
	},
}

var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Re-send the last message of the current conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewAPIClient(serverURL, requestTimeout)
		res, err := client.RetryTurn(cmd.Context())
		if err != nil {
			return err
		}
		printTurn(cmd.OutOrStdout(), res)
		return nil
	},
}

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"list", "ls"},
	Short:   "List conversations, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewAPIClient(serverURL, requestTimeout)
		sessions, currentID, err := client.ListSessions(cmd.Context())
		if err != nil {
			return err
		}
		printSessions(cmd.OutOrStdout(), sessions, currentID)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Download a conversation transcript",
	Long: `Download a conversation transcript.

Supported formats: md, json, jsonl, yaml.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewAPIClient(serverURL, requestTimeout)
		data, err := client.Export(cmd.Context(), args[0], exportFormat)
		if err != nil {
			return err
		}
		if exportOutput == "" || exportOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", args[0], exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (md, json, jsonl, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")

	rootCmd.AddCommand(sendCmd, retryCmd, sessionsCmd, exportCmd)
}

func printTurn(w io.Writer, res *domain.TurnResult) {
	if res == nil {
		fmt.Fprintln(w, "Nothing to send.")
		return
	}
	if res.Error != nil {
		fmt.Fprintf(w, "! %s\n\n", res.Error.Message)
	}
	fmt.Fprintln(w, res.AssistantMessage.Content)
}

func printSessions(w io.Writer, sessions []domain.ChatSession, currentID string) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No conversations yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tTITLE\tMESSAGES\tUPDATED")
	for _, s := range sessions {
		mark := ""
		if s.ID == currentID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", mark, s.ID, s.Title, len(s.Messages), s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	tw.Flush()
}
