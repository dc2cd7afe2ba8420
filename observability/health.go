package observability

// HealthStatus is the reported state of a backend or of the service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health describes the state of one generation backend.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// ServiceHealth aggregates per-backend health for the whole service.
// Losing a backend degrades the service while a fallback remains; the
// service is down only when every backend is down.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

// NewServiceHealth creates a ServiceHealth with no components, status up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Service: service,
		Status:  HealthStatusUp,
		Version: version,
	}
}

// AddComponent records one backend's health and recomputes the
// aggregate status.
func (sh *ServiceHealth) AddComponent(h Health) {
	sh.Components = append(sh.Components, h)

	up, down := 0, 0
	for _, c := range sh.Components {
		switch c.Status {
		case HealthStatusUp:
			up++
		case HealthStatusDown:
			down++
		}
	}
	switch {
	case down == len(sh.Components):
		sh.Status = HealthStatusDown
	case up == len(sh.Components):
		sh.Status = HealthStatusUp
	default:
		sh.Status = HealthStatusDegraded
	}
}
