package initdata

import (
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/stretchr/testify/suite"
)

const testBotToken = "123456:test-bot-token"

type InitDataTestSuite struct {
	suite.Suite
	now      time.Time
	verifier *Verifier
}

func TestInitDataSuite(t *testing.T) {
	suite.Run(t, new(InitDataTestSuite))
}

func (s *InitDataTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.verifier = NewVerifier(testBotToken).WithClock(func() time.Time { return s.now })
}

func (s *InitDataTestSuite) signed(values url.Values) string {
	hash, err := Sign(values, DeriveSecret(testBotToken))
	s.Require().NoError(err)
	values.Set(hashKey, hash)
	return values.Encode()
}

func (s *InitDataTestSuite) validValues(authAge time.Duration) url.Values {
	v := url.Values{}
	v.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	v.Set(userKey, `{"id":42,"first_name":"Ivan","username":"ivan"}`)
	v.Set(authDateKey, strconv.FormatInt(s.now.Add(-authAge).Unix(), 10))
	return v
}

func (s *InitDataTestSuite) TestVerifyValid() {
	data, err := s.verifier.Verify(s.signed(s.validValues(time.Minute)))
	s.Require().NoError(err)
	s.Require().NotNil(data.User)
	s.Equal(int64(42), data.User.ID)
	s.Equal("ivan", *data.User.Username)
	s.Nil(data.User.LastName)
	s.Equal("AAHdF6IQAAAAAN0XohDhrOrc", data.QueryID)
	s.Require().NotNil(data.AuthDate)
	s.Equal(s.now.Add(-time.Minute).Unix(), data.AuthDate.Unix())
}

func (s *InitDataTestSuite) TestVerifyTampered() {
	raw := s.signed(s.validValues(time.Minute))
	values, err := url.ParseQuery(raw)
	s.Require().NoError(err)
	values.Set(userKey, `{"id":43,"first_name":"Ivan","username":"ivan"}`)

	_, verifyErr := s.verifier.Verify(values.Encode())
	s.True(domain.IsAuthReason(verifyErr, domain.AuthInvalidSignature))
}

func (s *InitDataTestSuite) TestVerifyWrongToken() {
	other := NewVerifier("654321:other-token").WithClock(func() time.Time { return s.now })
	_, err := other.Verify(s.signed(s.validValues(time.Minute)))
	s.True(domain.IsAuthReason(err, domain.AuthInvalidSignature))
}

func (s *InitDataTestSuite) TestVerifyErrors() {
	cases := []struct {
		name   string
		raw    func() string
		reason domain.AuthReason
	}{
		{
			name: "missing hash",
			raw: func() string {
				return s.validValues(time.Minute).Encode()
			},
			reason: domain.AuthMissingSignature,
		},
		{
			name: "empty hash",
			raw: func() string {
				v := s.validValues(time.Minute)
				v.Set(hashKey, "")
				return v.Encode()
			},
			reason: domain.AuthMissingSignature,
		},
		{
			name: "non hex hash",
			raw: func() string {
				v := s.validValues(time.Minute)
				v.Set(hashKey, "zz-not-hex")
				return v.Encode()
			},
			reason: domain.AuthInvalidSignature,
		},
		{
			name:   "broken escaping",
			raw:    func() string { return "user=%zz&hash=00" },
			reason: domain.AuthMalformedPayload,
		},
		{
			name: "duplicated key",
			raw: func() string {
				return s.signed(s.validValues(time.Minute)) + "&query_id=other"
			},
			reason: domain.AuthMalformedPayload,
		},
		{
			name: "expired",
			raw: func() string {
				return s.signed(s.validValues(MaxAge + time.Second))
			},
			reason: domain.AuthExpired,
		},
		{
			name: "non integer auth_date",
			raw: func() string {
				v := s.validValues(time.Minute)
				v.Set(authDateKey, "yesterday")
				return s.signed(v)
			},
			reason: domain.AuthInvalidTimestamp,
		},
		{
			name: "invalid user json",
			raw: func() string {
				v := s.validValues(time.Minute)
				v.Set(userKey, `{"id":`)
				return s.signed(v)
			},
			reason: domain.AuthMalformedPayload,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.verifier.Verify(tc.raw())
			s.Require().Error(err)
			s.Truef(domain.IsAuthReason(err, tc.reason), "got %v", err)
		})
	}
}

func (s *InitDataTestSuite) TestVerifyMaxAgeBoundary() {
	_, err := s.verifier.Verify(s.signed(s.validValues(MaxAge)))
	s.NoError(err)
}

func (s *InitDataTestSuite) TestVerifyWithoutAuthDate() {
	v := s.validValues(0)
	v.Del(authDateKey)

	data, err := s.verifier.Verify(s.signed(v))
	s.Require().NoError(err)
	s.Nil(data.AuthDate)
}

func (s *InitDataTestSuite) TestVerifyWithoutUser() {
	v := s.validValues(time.Minute)
	v.Del(userKey)

	data, err := s.verifier.Verify(s.signed(v))
	s.Require().NoError(err)
	s.Nil(data.User)
}

func (s *InitDataTestSuite) TestCheckFreshness() {
	ts := strconv.FormatInt(s.now.Unix()-3600, 10)
	_, err := CheckFreshness(ts, s.now, MaxAge)
	s.NoError(err)

	ts = strconv.FormatInt(s.now.Unix()-3601, 10)
	_, err = CheckFreshness(ts, s.now, MaxAge)
	s.True(domain.IsAuthReason(err, domain.AuthExpired))

	authDate, err := CheckFreshness("", s.now, MaxAge)
	s.NoError(err)
	s.Nil(authDate)
}

func (s *InitDataTestSuite) TestDataCheckString() {
	got := DataCheckString(map[string]string{
		"user":      `{"id":1}`,
		"auth_date": "100",
		"hash":      "ignored",
		"query_id":  "q",
	})
	s.Equal("auth_date=100\nquery_id=q\nuser={\"id\":1}", got)
}
