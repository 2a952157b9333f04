package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/snipcast/server/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 8080,
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
	}
	transcriptTTLHours = configVar[int]{
		envKey:       "SERVER_TRANSCRIPT_TTL_HOURS",
		flagKey:      "transcript-ttl-hours",
		defaultValue: 24 * 14,
	}
	segmentGapMs = configVar[int]{
		envKey:       "SERVER_SEGMENT_GAP_MS",
		flagKey:      "segment-gap-ms",
		defaultValue: 50,
	}
	transitionToleranceMs = configVar[int]{
		envKey:       "SERVER_TRANSITION_TOLERANCE_MS",
		flagKey:      "transition-tolerance-ms",
		defaultValue: 200,
	}
	transitionCooldownMs = configVar[int]{
		envKey:       "SERVER_TRANSITION_COOLDOWN_MS",
		flagKey:      "transition-cooldown-ms",
		defaultValue: 500,
	}
	timeUpdateThrottleMs = configVar[int]{
		envKey:       "SERVER_TIMEUPDATE_THROTTLE_MS",
		flagKey:      "timeupdate-throttle-ms",
		defaultValue: 100,
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.String(redisHost.flagKey, redisHost.defaultValue, "Redis host")
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, "Redis port")
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, "Redis password")
	pflag.Int(transcriptTTLHours.flagKey, transcriptTTLHours.defaultValue, "Transcript expiration in hours")
	pflag.Int(segmentGapMs.flagKey, segmentGapMs.defaultValue, "Minimum gap between adjacent highlight segments in milliseconds")
	pflag.Int(transitionToleranceMs.flagKey, transitionToleranceMs.defaultValue, "Segment boundary tolerance in milliseconds")
	pflag.Int(transitionCooldownMs.flagKey, transitionCooldownMs.defaultValue, "Minimum spacing between segment transitions in milliseconds")
	pflag.Int(timeUpdateThrottleMs.flagKey, timeUpdateThrottleMs.defaultValue, "Timeupdate throttle window in milliseconds")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(redisHost.flagKey, redisHost.envKey)
	viper.BindEnv(redisPort.flagKey, redisPort.envKey)
	viper.BindEnv(redisPassword.flagKey, redisPassword.envKey)
	viper.BindEnv(transcriptTTLHours.flagKey, transcriptTTLHours.envKey)
	viper.BindEnv(segmentGapMs.flagKey, segmentGapMs.envKey)
	viper.BindEnv(transitionToleranceMs.flagKey, transitionToleranceMs.envKey)
	viper.BindEnv(transitionCooldownMs.flagKey, transitionCooldownMs.envKey)
	viper.BindEnv(timeUpdateThrottleMs.flagKey, timeUpdateThrottleMs.envKey)

	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(redisHost.flagKey, redisHost.defaultValue)
	viper.SetDefault(redisPort.flagKey, redisPort.defaultValue)
	viper.SetDefault(redisPassword.flagKey, redisPassword.defaultValue)
	viper.SetDefault(transcriptTTLHours.flagKey, transcriptTTLHours.defaultValue)
	viper.SetDefault(segmentGapMs.flagKey, segmentGapMs.defaultValue)
	viper.SetDefault(transitionToleranceMs.flagKey, transitionToleranceMs.defaultValue)
	viper.SetDefault(transitionCooldownMs.flagKey, transitionCooldownMs.defaultValue)
	viper.SetDefault(timeUpdateThrottleMs.flagKey, timeUpdateThrottleMs.defaultValue)

	return &app.AppConfig{
		Host:                  viper.GetString(host.flagKey),
		Port:                  viper.GetInt(port.flagKey),
		LogLevel:              viper.GetString(logLevel.flagKey),
		RedisHost:             viper.GetString(redisHost.flagKey),
		RedisPort:             viper.GetInt(redisPort.flagKey),
		RedisPassword:         viper.GetString(redisPassword.flagKey),
		TranscriptTTLHours:    viper.GetInt(transcriptTTLHours.flagKey),
		SegmentGapMs:          viper.GetInt(segmentGapMs.flagKey),
		TransitionToleranceMs: viper.GetInt(transitionToleranceMs.flagKey),
		TransitionCooldownMs:  viper.GetInt(transitionCooldownMs.flagKey),
		TimeUpdateThrottleMs:  viper.GetInt(timeUpdateThrottleMs.flagKey),
	}
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
