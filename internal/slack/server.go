package slack

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/shubh-37/storm-sessions/internal/metrics"
	"github.com/shubh-37/storm-sessions/internal/session"
	"github.com/slack-go/slack"
)

// CommandHandler answers the /session slash command.
type CommandHandler struct {
	sessions      *session.Controller
	signingSecret string
}

func NewCommandHandler(sessions *session.Controller, signingSecret string) *CommandHandler {
	log.Printf("[slack] signing secret configured (length: %d)", len(signingSecret))
	return &CommandHandler{
		sessions:      sessions,
		signingSecret: signingSecret,
	}
}

func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("[slack] error reading body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Verify the request signature
	sv, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		log.Printf("[slack] error creating secrets verifier: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := sv.Write(body); err != nil {
		log.Printf("[slack] error writing to verifier: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := sv.Ensure(); err != nil {
		log.Printf("[slack] error verifying signature: %v", err)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		log.Printf("[slack] error parsing slash command: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	log.Printf("[slack] command %s %q from %s", cmd.Command, cmd.Text, cmd.UserID)

	result, err := h.sessions.Show(r.Context(), parseID(cmd.Text))
	if err != nil {
		metrics.SessionOutcomes.WithLabelValues("error").Inc()
		log.Printf("[slack] show session %q: %v", cmd.Text, err)
		writeMessage(w, ephemeral(":warning: Could not load the session. Please try again."))
		return
	}
	metrics.SessionOutcomes.WithLabelValues(result.Kind()).Inc()

	writeMessage(w, messageFor(cmd.Command, result))
}

func writeMessage(w http.ResponseWriter, msg *slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Printf("[slack] error encoding response: %v", err)
	}
}
