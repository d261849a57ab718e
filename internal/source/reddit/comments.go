package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"prospector/internal/content"
)

// Comments returns the flattened comment tree of a submission. Continuation
// placeholders ("load more comments" stubs) are resolved up to the client's
// configured budget of extra fetches; the remainder is discarded so the work
// per submission stays bounded.
func (c *Client) Comments(ctx context.Context, submissionID string) ([]content.Item, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return nil, errors.New("submission id must not be empty")
	}

	var payload []thing
	if err := c.get(ctx, "/comments/"+url.PathEscape(submissionID), nil, &payload); err != nil {
		return nil, err
	}
	// The endpoint returns two listings: the submission itself, then the
	// comment forest.
	if len(payload) < 2 {
		return nil, fmt.Errorf("comments payload for %s has %d listings, want 2", submissionID, len(payload))
	}
	children, err := payload[1].listingChildren()
	if err != nil {
		return nil, err
	}

	var items []content.Item
	var pending []string
	if err := walkComments(children, &items, &pending); err != nil {
		return nil, err
	}

	for budget := c.moreBudget; budget > 0 && len(pending) > 0; budget-- {
		batch := pending
		if len(batch) > moreBatchSize {
			batch = batch[:moreBatchSize]
		}
		pending = pending[len(batch):]

		extra, err := c.moreChildren(ctx, submissionID, batch)
		if err != nil {
			return nil, err
		}
		if err := walkComments(extra, &items, &pending); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// moreBatchSize is the maximum number of comment IDs one continuation fetch
// may request.
const moreBatchSize = 100

func (c *Client) moreChildren(ctx context.Context, submissionID string, ids []string) ([]thing, error) {
	params := url.Values{}
	params.Set("api_type", "json")
	params.Set("link_id", "t3_"+submissionID)
	params.Set("children", strings.Join(ids, ","))

	var payload struct {
		JSON struct {
			Data struct {
				Things []thing `json:"things"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := c.get(ctx, "/api/morechildren", params, &payload); err != nil {
		return nil, err
	}
	return payload.JSON.Data.Things, nil
}

func walkComments(children []thing, items *[]content.Item, pending *[]string) error {
	for _, child := range children {
		switch child.Kind {
		case kindComment:
			var data commentData
			if err := json.Unmarshal(child.Data, &data); err != nil {
				return fmt.Errorf("decode comment: %w", err)
			}
			*items = append(*items, data.item())
			replies, err := replyChildren(data.Replies)
			if err != nil {
				return err
			}
			if err := walkComments(replies, items, pending); err != nil {
				return err
			}
		case kindMore:
			var data moreData
			if err := json.Unmarshal(child.Data, &data); err != nil {
				return fmt.Errorf("decode continuation: %w", err)
			}
			*pending = append(*pending, data.Children...)
		}
	}
	return nil
}

// replyChildren unwraps a comment's replies field, which Reddit encodes as
// either an empty string or a nested listing.
func replyChildren(raw json.RawMessage) ([]thing, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == `""` || trimmed == "null" {
		return nil, nil
	}
	var reply thing
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("decode replies: %w", err)
	}
	return reply.listingChildren()
}
