package config

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestFlagsDefaults() {
	var conf Config
	loadFlags(flag.NewFlagSet("test", flag.ContinueOnError), nil, &conf)

	s.Equal("localhost:8080", conf.RunAddress)
	s.Equal("internal/db/migrations", conf.MigrationsDir)
	s.Equal(DefaultTelegramAPIEndpoint, conf.TelegramAPIEndpoint)
	s.Zero(conf.ManagerChatID)
}

func (s *ConfigTestSuite) TestEnvOverridesFlags() {
	var flagsConf Config
	loadFlags(flag.NewFlagSet("test", flag.ContinueOnError), []string{
		"-a", ":9000", "-d", "postgres://flags", "-t", "flag-token", "-c", "100",
	}, &flagsConf)

	envConf := Config{DatabaseDSN: "postgres://env", ManagerChatID: 200}

	conf := mergeConfig(&envConf, &flagsConf)
	s.Equal(":9000", conf.RunAddress)
	s.Equal("postgres://env", conf.DatabaseDSN)
	s.Equal("flag-token", conf.TelegramBotToken)
	s.Equal(int64(200), conf.ManagerChatID)
	s.NoError(conf.validate())
}

func (s *ConfigTestSuite) TestValidate() {
	s.Error((&Config{TelegramBotToken: "t"}).validate())
	s.Error((&Config{DatabaseDSN: "postgres://"}).validate())
}

func (s *ConfigTestSuite) TestStringMasksSecrets() {
	conf := Config{DatabaseDSN: "postgres://user:pass@db", TelegramBotToken: "123456:secret-token"}
	out := conf.String()

	s.False(strings.Contains(out, "secret-token"))
	s.False(strings.Contains(out, "pass@db"))
	s.Contains(out, "1234***")
}
