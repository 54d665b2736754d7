package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/dockr/internal/service"
)

func TestLint(t *testing.T) {
	p := service.DefaultProject()
	assert.Empty(t, Lint(p))

	p.Services[0].DependsOn = []string{"db"}
	p.Services = append(p.Services, service.Service{Name: "worker", Restart: service.RestartPolicyNo})

	findings := Lint(p)
	require.Len(t, findings, 2)
	assert.Equal(t, "Services[1].Image", findings[0].Field)
	assert.Equal(t, "Services[0].DependsOn", findings[1].Field)
	assert.Contains(t, findings[1].Message, `unknown service "db"`)
}

func TestLint_Environment(t *testing.T) {
	p := service.DefaultProject()
	p.Services[0].Environment = []service.EnvVar{
		{Key: "NODE_ENV", Value: "production"},
		{Key: "MY-VAR", Value: "1"},
		{Key: "DB_PASSWORD", Value: "changeme"},
		{Key: "API_TOKEN"},
	}

	findings := Lint(p)
	require.Len(t, findings, 3)
	assert.Equal(t, "Services[0].Environment[3]", findings[0].Field)
	assert.Contains(t, findings[0].Message, "will be skipped")
	assert.Equal(t, "Services[0].Environment[1]", findings[1].Field)
	assert.Contains(t, findings[1].Message, "invalid character '-'")
	assert.Equal(t, "Services[0].Environment[2]", findings[2].Field)
	assert.Contains(t, findings[2].Message, "test/default value")
	assert.NotContains(t, findings.Error(), "changeme")
}

func TestStartOrder(t *testing.T) {
	p := service.DefaultProject()
	p.Services[0].DependsOn = []string{"api"}
	p.Services = append(p.Services,
		service.Service{Name: "api", Image: "node", DependsOn: []string{"db"}},
		service.Service{Name: "db", Image: "postgres"},
	)

	order, err := StartOrder(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"db", "api", "web"}, order)
}
