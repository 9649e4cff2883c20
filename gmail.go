package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const gmailUser = "me"

// googleHTTPClient builds an authenticated client from an existing
// credentials.json + token.json pair. There is no interactive auth flow
// here: the token must already exist (the frontend drives the OAuth dance
// and uploads the files).
func googleHTTPClient(ctx context.Context, credentialsPath, tokenPath string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading client secret file: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parsing client secret file: %w", err)
	}

	f, err := os.Open(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}

	return oauthConfig.Client(ctx, tok), nil
}

// GmailMailbox implements Mailbox on the Gmail API.
type GmailMailbox struct {
	srv *gmail.Service
}

func NewGmailMailbox(ctx context.Context, credentialsPath, tokenPath string) (*GmailMailbox, error) {
	client, err := googleHTTPClient(ctx, credentialsPath, tokenPath)
	if err != nil {
		return nil, err
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating Gmail service: %w", err)
	}
	return &GmailMailbox{srv: srv}, nil
}

// FetchMessages lists inbox messages for an intent and resolves each to a
// subject + snippet record. Per-message metadata failures are skipped so a
// single bad message cannot sink the fetch.
func (m *GmailMailbox) FetchMessages(ctx context.Context, intent string, maxCount int) ([]Message, error) {
	query := "in:inbox -in:draft"
	switch intent {
	case IntentToday:
		today := time.Now().In(fixedZone).Format("2006/01/02")
		query += " after:" + today
	case IntentUnread:
		query += " is:unread"
	}

	list, err := m.srv.Users.Messages.List(gmailUser).
		MaxResults(int64(maxCount)).
		Q(query).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	var messages []Message
	for _, ref := range list.Messages {
		full, err := m.srv.Users.Messages.Get(gmailUser, ref.Id).
			Format("metadata").
			MetadataHeaders("Subject").
			Context(ctx).
			Do()
		if err != nil {
			// One unreadable message should not sink the whole fetch.
			continue
		}

		msg := Message{
			ID:      full.Id,
			Snippet: full.Snippet,
		}
		if full.Payload != nil {
			for _, header := range full.Payload.Headers {
				if header.Name == "Subject" {
					msg.Subject = header.Value
				}
			}
		}
		if full.InternalDate > 0 {
			msg.ReceivedAt = time.UnixMilli(full.InternalDate).In(fixedZone).Format(time.RFC3339)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
