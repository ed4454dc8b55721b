package params

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Feed struct {
	// Input is the command stream path; "-" reads stdin.
	Input string
}

type API struct {
	// GRPCAddr is the listen address for the query service; empty
	// disables the server.
	GRPCAddr string
}

type Kafka struct {
	Enabled    bool
	Brokers    []string
	ExecTopic  string
	DepthTopic string
}

type Journal struct {
	// Dir holds the execution outbox; empty disables journaling.
	Dir string
}

type Config struct {
	Feed    Feed
	API     API
	Kafka   Kafka
	Journal Journal
	Debug   bool
}

func Default() Config {
	return Config{
		Feed: Feed{Input: "-"},
		API:  API{GRPCAddr: ""},
		Kafka: Kafka{
			Enabled:    false,
			Brokers:    []string{"localhost:9092"},
			ExecTopic:  "lob.executions",
			DepthTopic: "lob.depth",
		},
		Journal: Journal{Dir: ""},
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("LOB_INPUT"); v != "" {
		cfg.Feed.Input = v
	}
	if v := os.Getenv("LOB_GRPC_ADDR"); v != "" {
		cfg.API.GRPCAddr = v
	}
	if v := os.Getenv("LOB_OUTBOX_DIR"); v != "" {
		cfg.Journal.Dir = v
	}
	if v := os.Getenv("LOB_KAFKA_ENABLED"); v != "" {
		cfg.Kafka.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("LOB_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("LOB_KAFKA_EXEC_TOPIC"); v != "" {
		cfg.Kafka.ExecTopic = v
	}
	if v := os.Getenv("LOB_KAFKA_DEPTH_TOPIC"); v != "" {
		cfg.Kafka.DepthTopic = v
	}
	if v := os.Getenv("LOB_DEBUG"); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}

	return cfg
}
