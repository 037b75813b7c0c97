package slack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shubh-37/storm-sessions/internal/session"
	"github.com/slack-go/slack"
)

// parseID takes the first word of the command text. Anything that is not an
// integer counts as no id.
func parseID(text string) *int64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(fields[0], "#"), 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func ephemeral(text string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text,
	}
}

// messageFor renders a presenter outcome as a Slack reply. A redirect has no
// page to go to in Slack, so it becomes a usage hint.
func messageFor(command string, result session.Result) *slack.Msg {
	switch res := result.(type) {
	case session.Redirect:
		return ephemeral(fmt.Sprintf("Usage: `%s <session id>`", command))
	case session.Content:
		return ephemeral(res.Text)
	case session.View:
		text := fmt.Sprintf("*%s*\nSession #%d, created %s",
			res.Model.Name,
			res.Model.ID,
			res.Model.DateCreated.Format("Jan 02, 2006"))
		msg := ephemeral(text)
		msg.Blocks = slack.Blocks{BlockSet: []slack.Block{
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
		}}
		return msg
	}
	return ephemeral("Unsupported result.")
}
