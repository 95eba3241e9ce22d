package communication

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/logging"
)

type Slack struct {
	client  *slack.Client
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
	// APIURL overrides the Slack Web API endpoint.
	APIURL string
}

func NewSlack(token string, options SlackOption) *Slack {
	var opts []slack.Option
	if options.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(options.APIURL))
	}
	client := slack.New(token, opts...)
	return &Slack{client: client, options: options}
}

func (s *Slack) postMessage(ctx context.Context, channelID, message string) error {
	if channelID == "" {
		return nil
	}
	_, _, err := s.client.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (s *Slack) Info(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.InfoChannelID, message)
}

func (s *Slack) Error(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.ErrorChannelID, message)
}

// ReportFailure posts "<operation> failed: <err>" to the error channel. A
// failed post is logged and otherwise ignored.
func (s *Slack) ReportFailure(ctx context.Context, operation string, err error) {
	if postErr := s.Error(ctx, fmt.Sprintf("%s failed: %v", operation, err)); postErr != nil {
		logging.Ctx(ctx).Warn().Err(postErr).Str("operation", operation).Msg("failure notification failed")
	}
}
