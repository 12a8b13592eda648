package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"voice-journal-be/internal/bootstrap"
	"voice-journal-be/internal/config"
	"voice-journal-be/internal/dto"
	"voice-journal-be/pkg/database"
	"voice-journal-be/pkg/events"
	pktNats "voice-journal-be/pkg/nats"

	"github.com/spf13/cobra"
)

var (
	priorAnswerFlag    string
	conversationIdFlag string
	subjectFlag        string
)

var rootCmd = &cobra.Command{
	Use:          "journal",
	Short:        "Query the voice journal from the terminal",
	SilenceUsage: true,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from your notes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show how many notes carry each tag",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print the tag co-occurrence graph",
	Args:  cobra.NoArgs,
	RunE:  runMap,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream journal events from NATS",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	askCmd.Flags().StringVarP(&priorAnswerFlag, "prior", "p", "", "Previous assistant answer to build on")
	askCmd.Flags().StringVarP(&conversationIdFlag, "conversation", "c", "", "Conversation id for follow-up questions")
	watchCmd.Flags().StringVarP(&subjectFlag, "subject", "s", pktNats.SubjectPrefix+".>", "Subject filter")
	rootCmd.AddCommand(askCmd, tagsCmd, mapCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withContainer loads config, connects and runs fn against a fresh container.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *bootstrap.Container) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	container, err := bootstrap.NewContainer(ctx, db, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	return fn(ctx, container)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		res, err := c.QuestionService.Ask(ctx, &dto.AskQuestionRequest{
			Question:       question,
			PriorAnswer:    priorAnswerFlag,
			ConversationId: conversationIdFlag,
		})
		if err != nil {
			return err
		}
		renderAnswer(cmd.OutOrStdout(), res)
		return nil
	})
}

func runTags(cmd *cobra.Command, args []string) error {
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		counts, err := c.KnowledgeService.TagCounts(ctx)
		if err != nil {
			return err
		}
		renderTags(cmd.OutOrStdout(), counts)
		return nil
	})
}

func runMap(cmd *cobra.Command, args []string) error {
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		graph, err := c.KnowledgeService.KnowledgeMap(ctx)
		if err != nil {
			return err
		}
		renderMap(cmd.OutOrStdout(), graph)
		return nil
	})
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.Messaging.NatsURL == "" {
		return fmt.Errorf("NATS_URL is not set")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub, err := pktNats.NewSubscriber(cfg.Messaging.NatsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	out := cmd.OutOrStdout()
	err = sub.Subscribe(ctx, subjectFlag, "", func(ctx context.Context, event events.Event) error {
		renderEvent(out, event)
		return nil
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}
