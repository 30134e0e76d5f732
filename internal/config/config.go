package config

import (
	"fmt"
	"os"

	"github.com/punchamoorthee/txnproc/internal/service"
)

type Config struct {
	Port         string
	Env          string
	SnapshotDB   string
	LockedPolicy service.LockedPolicy
}

func Load() (*Config, error) {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	policy, err := parseLockedPolicy(os.Getenv("LOCKED_DISPUTE_POLICY"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:         port,
		Env:          env,
		SnapshotDB:   os.Getenv("SNAPSHOT_DB_SOURCE"),
		LockedPolicy: policy,
	}, nil
}

func parseLockedPolicy(v string) (service.LockedPolicy, error) {
	switch v {
	case "", "allow":
		return service.LockedAllowDisputes, nil
	case "reject":
		return service.LockedRejectAll, nil
	}
	return 0, fmt.Errorf("LOCKED_DISPUTE_POLICY must be 'allow' or 'reject', got %q", v)
}
