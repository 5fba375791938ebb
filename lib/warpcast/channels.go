// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package warpcast

import (
	"context"
	"net/http"
	"net/url"
)

// ListChannels returns the first limit channels of the full channel
// directory, in the order the service returns them.
//
// The service has no paginated channel listing, so every call fetches
// the whole directory and slices it locally; cost is proportional to
// the total number of channels regardless of limit.
func (client *Client) ListChannels(ctx context.Context, limit int) ([]Channel, error) {
	if err := validateLimit(opListChannels, limit, MaxChannelLimit); err != nil {
		return nil, err
	}

	var envelope channelsEnvelope
	if err := client.get(ctx, opListChannels, "/v2/all-channels", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Result == nil {
		return nil, &APIError{
			Operation:  opListChannels,
			StatusCode: http.StatusOK,
			Message:    "response is missing result",
		}
	}

	wire := envelope.Result.Channels
	if len(wire) > limit {
		wire = wire[:limit]
	}
	channels := make([]Channel, len(wire))
	for index := range wire {
		channels[index] = toChannel(&wire[index])
	}
	return channels, nil
}

// GetChannel returns one channel. Returns a *NotFoundError if the
// channel does not exist.
func (client *Client) GetChannel(ctx context.Context, channelID string) (*Channel, error) {
	if err := validateRequired(opGetChannel, "channel id", channelID); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("channelId", channelID)

	var envelope channelEnvelope
	if err := client.get(ctx, opGetChannel, "/v1/channel", query, &envelope); err != nil {
		return nil, notFound(err, "channel", channelID)
	}
	if envelope.Result.Channel == nil {
		return nil, &NotFoundError{
			Resource:   "channel",
			Identifier: channelID,
			API: &APIError{
				Operation:  opGetChannel,
				StatusCode: http.StatusOK,
				Message:    "response has no channel",
			},
		}
	}

	channel := toChannel(envelope.Result.Channel)
	return &channel, nil
}

// FollowChannel follows a channel as the authenticated account. Returns
// the service's success flag. Requires authentication.
func (client *Client) FollowChannel(ctx context.Context, channelID string) (bool, error) {
	return client.channelFollow(ctx, opFollowChannel, http.MethodPost, channelID)
}

// UnfollowChannel stops following a channel. Returns the service's
// success flag. Requires authentication.
func (client *Client) UnfollowChannel(ctx context.Context, channelID string) (bool, error) {
	return client.channelFollow(ctx, opUnfollowChannel, http.MethodDelete, channelID)
}

func (client *Client) channelFollow(ctx context.Context, operation, method, channelID string) (bool, error) {
	if err := validateRequired(operation, "channel id", channelID); err != nil {
		return false, err
	}

	var envelope successEnvelope
	err := client.authenticatedSend(ctx, operation, method, "/fc/channel-follows",
		map[string]string{"channelId": channelID}, &envelope)
	if err != nil {
		return false, err
	}
	return envelope.Success, nil
}
