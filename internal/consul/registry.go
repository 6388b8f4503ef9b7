package consul

import (
	"fmt"
	"log/slog"

	consulapi "github.com/hashicorp/consul/api"
)

// ServiceName is the name the site registers under.
const ServiceName = "folio-site"

// ServiceConfig contains configuration for service registration
type ServiceConfig struct {
	ID      string
	Name    string
	Address string
	Port    int
	Tags    []string
	Check   *HealthCheck
}

// HealthCheck defines health check configuration
type HealthCheck struct {
	HTTP                           string
	Interval                       string
	Timeout                        string
	DeregisterCriticalServiceAfter string
}

// ServiceRegistrar defines the interface for service registration
type ServiceRegistrar interface {
	Register(cfg *ServiceConfig) error
	Deregister(serviceID string) error
}

// SiteService describes the site instance listening on host:port with an
// HTTP check against /health.
func SiteService(host string, port int) *ServiceConfig {
	return &ServiceConfig{
		ID:      fmt.Sprintf("%s-%s-%d", ServiceName, host, port),
		Name:    ServiceName,
		Address: host,
		Port:    port,
		Tags:    []string{"http", "site"},
		Check: &HealthCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", host, port),
			Interval:                       "10s",
			Timeout:                        "3s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

// Register registers a service with Consul
func (c *Client) Register(cfg *ServiceConfig) error {
	registration := &consulapi.AgentServiceRegistration{
		ID:      cfg.ID,
		Name:    cfg.Name,
		Address: cfg.Address,
		Port:    cfg.Port,
		Tags:    cfg.Tags,
	}

	if cfg.Check != nil {
		registration.Check = &consulapi.AgentServiceCheck{
			HTTP:                           cfg.Check.HTTP,
			Interval:                       cfg.Check.Interval,
			Timeout:                        cfg.Check.Timeout,
			DeregisterCriticalServiceAfter: cfg.Check.DeregisterCriticalServiceAfter,
		}
	}

	if err := c.api.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	slog.Info("Registered with Consul", "service_id", cfg.ID, "address", cfg.Address, "port", cfg.Port)
	return nil
}

// Deregister removes a service from Consul
func (c *Client) Deregister(serviceID string) error {
	if err := c.api.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}

	slog.Info("Deregistered from Consul", "service_id", serviceID)
	return nil
}
