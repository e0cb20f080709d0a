package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const testToken = "123:abc"

type TelegramClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestTelegramClientSuite(t *testing.T) {
	suite.Run(t, new(TelegramClientTestSuite))
}

func (s *TelegramClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *TelegramClientTestSuite) newClient(handler http.HandlerFunc) *TelegramClient {
	s.server = httptest.NewServer(handler)
	return New(testToken, s.server.URL+"/bot%s/%s")
}

func (s *TelegramClientTestSuite) TestSendMessage() {
	c := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/bot"+testToken+"/sendMessage", r.URL.Path)
		s.Require().NoError(r.ParseForm())
		s.Equal("555", r.PostForm.Get("chat_id"))
		s.Equal("<b>hi</b>", r.PostForm.Get("text"))
		s.Equal("HTML", r.PostForm.Get("parse_mode"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":17,"date":0,"chat":{"id":555,"type":"private"}}}`))
	})

	id, err := c.SendMessage(context.Background(), 555, "<b>hi</b>")
	s.Require().NoError(err)
	s.Equal(17, id)
}

func (s *TelegramClientTestSuite) TestSendMessageErrors() {
	cases := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "api error",
			body:    `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`,
			wantErr: new(APIError),
		},
		{
			name:    "too many requests",
			body:    `{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":5}}`,
			wantErr: new(TooManyRequestError),
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			c := s.newClient(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			})
			defer s.server.Close()

			_, err := c.SendMessage(context.Background(), 1, "text")
			s.Require().Error(err)
			s.IsType(tc.wantErr, err)
		})
	}
}

func (s *TelegramClientTestSuite) TestSendMessageTooManyRequestsRetryAfter() {
	c := s.newClient(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":5}}`))
	})

	_, err := c.SendMessage(context.Background(), 1, "text")
	var tooMany *TooManyRequestError
	s.Require().ErrorAs(err, &tooMany)
	s.Equal(5*time.Second, tooMany.RetryAfter)
}

func (s *TelegramClientTestSuite) TestSendMessageContextCanceled() {
	release := make(chan struct{})
	c := s.newClient(func(_ http.ResponseWriter, _ *http.Request) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.SendMessage(ctx, 1, "text")
	s.ErrorIs(err, context.DeadlineExceeded)
}
