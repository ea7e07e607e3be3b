package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/portfolio-chat/relay/internal/chatclient"
	"github.com/portfolio-chat/relay/internal/logging"
	"github.com/portfolio-chat/relay/internal/site"
)

var rootCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Talk to the portfolio assistant from a terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), os.Stdin, os.Stdout)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.String("config", "configs/site.yaml", "path to the site YAML file")
	flags.String("endpoint", "", "relay URL, overrides api_endpoint from the site file")
	flags.Bool("plain", false, "disable markdown rendering and the typing indicator")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	viper.SetEnvPrefix("PORTFOLIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	cobra.CheckErr(viper.BindPFlags(flags))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out *os.File) error {
	logger := logging.New(os.Stderr, viper.GetString("log-level"), chatclient.IsTerminal(os.Stderr.Fd()))

	s, err := site.Load(viper.GetString("config"))
	if err != nil {
		return err
	}

	endpoint := viper.GetString("endpoint")
	if endpoint == "" {
		endpoint = s.APIEndpoint
	}
	if endpoint == "" {
		return errors.New("no relay endpoint: set api_endpoint in the site file or pass --endpoint")
	}

	styled := !viper.GetBool("plain") && chatclient.IsTerminal(out.Fd())
	transcript := chatclient.NewTerminalTranscript(out, s.Chatbot.Name, styled)
	client := chatclient.NewClient(s, chatclient.NewRelayClient(endpoint, nil), transcript, logger)

	logger.Debug().Str("endpoint", endpoint).Bool("styled", styled).Msg("Chat session started")

	if greeting := s.Greeting(); greeting != "" {
		transcript.AppendAssistant(greeting)
	}
	for i, suggestion := range s.Chatbot.Suggestions {
		fmt.Fprintf(out, "  /%d  %s\n", i+1, suggestion)
	}
	if len(s.Chatbot.Suggestions) > 0 {
		fmt.Fprintln(out)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Fprint(out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			line = strings.TrimSpace(l)
		}

		if line == "/quit" || line == "/exit" {
			return nil
		}
		line = pickSuggestion(line, s.Chatbot.Suggestions)

		// Failures are already shown in the transcript and logged.
		if err := client.SendMessage(ctx, line); err != nil && ctx.Err() != nil {
			return nil
		}
	}
}

// pickSuggestion turns "/N" into the Nth suggestion. Anything else passes
// through unchanged.
func pickSuggestion(line string, suggestions []string) string {
	if !strings.HasPrefix(line, "/") {
		return line
	}
	n, err := strconv.Atoi(strings.TrimPrefix(line, "/"))
	if err != nil || n < 1 || n > len(suggestions) {
		return line
	}
	return suggestions[n-1]
}
