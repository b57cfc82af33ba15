package brain

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/theorem-health/avatar-gateway/internal/services/chat/models"
	"github.com/theorem-health/avatar-gateway/pkg/apperr"
)

// streamFrame is one decoded "data: {json}" frame from the brain's
// incremental protocol. Text is a pointer so a frame carrying an empty
// fragment is distinguishable from a control frame.
type streamFrame struct {
	Text *string `json:"text"`
	Done bool    `json:"done"`
}

// Stream consumes the brain's line-delimited SSE protocol, forwarding
// each text fragment to onText as soon as it is decoded. It returns nil
// on a done frame or clean end of stream, and an error on any I/O or
// parse failure. The upstream connection is closed exactly once in
// either case.
func (s *Service) Stream(ctx context.Context, turn models.ChatTurn, onText func(text string) error) error {
	payload := queryRequest{
		Mode:      turn.Mode,
		Message:   turn.Message,
		History:   historyOrEmpty(turn.History),
		SessionID: turn.SessionID,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal brain stream request: %w", err)
	}

	url := s.baseURL + "/api/brain/stream"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create brain stream request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := s.streamClient.Do(httpReq)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, err, "Brain stream error")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperr.New(apperr.Upstream, "Brain stream returned status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var frame streamFrame
		if err := json.Unmarshal([]byte(line[len("data: "):]), &frame); err != nil {
			return apperr.Wrap(apperr.Upstream, err, "Brain stream error: malformed frame")
		}

		if frame.Text != nil {
			if err := onText(*frame.Text); err != nil {
				return err
			}
			continue
		}

		if frame.Done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return apperr.Wrap(apperr.Upstream, err, "Brain stream error")
	}

	return nil
}
