package testtool

import (
	"context"
	"strconv"
	"strings"
	"time"

	"video_access_service/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupContainer start a container and return its host and first mapped port
func SetupContainer(ctx context.Context, req testcontainers.ContainerRequest) (testcontainers.Container, string, string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, "", "", err
	}

	natPort, err := nat.NewPort("tcp", strings.TrimSuffix(req.ExposedPorts[0], "/tcp"))
	if err != nil {
		return nil, "", "", err
	}

	port, err := container.MappedPort(ctx, natPort)
	if err != nil {
		return nil, "", "", err
	}

	return container, host, port.Port(), nil
}

// SetupPostgres start a throwaway postgres and return its connection setting
func SetupPostgres(ctx context.Context) (testcontainers.Container, config.DatabaseConfig, error) {
	const (
		user     = "playback"
		password = "playback"
		database = "playback_test"
	)
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
			"POSTGRES_DB":       database,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, host, port, err := SetupContainer(ctx, req)
	if err != nil {
		return nil, config.DatabaseConfig{}, err
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return container, config.DatabaseConfig{}, err
	}
	return container, config.DatabaseConfig{
		Host:          host,
		Port:          p,
		User:          user,
		Password:      password,
		Database:      database,
		RetryInterval: 1,
		RetryCount:    10,
	}, nil
}
