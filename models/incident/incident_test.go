package incident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionToIsForwardOnly(t *testing.T) {
	assert.True(t, IncidentStatusOpen.CanTransitionTo(IncidentStatusInvestigating))
	assert.True(t, IncidentStatusInvestigating.CanTransitionTo(IncidentStatusResolved))
	assert.True(t, IncidentStatusResolved.CanTransitionTo(IncidentStatusClosed))

	// No skipping steps
	assert.False(t, IncidentStatusOpen.CanTransitionTo(IncidentStatusResolved))
	assert.False(t, IncidentStatusOpen.CanTransitionTo(IncidentStatusClosed))

	// No going back
	assert.False(t, IncidentStatusResolved.CanTransitionTo(IncidentStatusInvestigating))
	assert.False(t, IncidentStatusClosed.CanTransitionTo(IncidentStatusOpen))

	// Terminal
	assert.False(t, IncidentStatusClosed.CanTransitionTo(IncidentStatusClosed))
}

func TestCanTransitionToRejectsUnknownStatus(t *testing.T) {
	assert.False(t, IncidentStatusOpen.CanTransitionTo("ESCALATED"))
}

func TestSeverityIsValid(t *testing.T) {
	assert.True(t, SeverityLow.IsValid())
	assert.True(t, SeverityCritical.IsValid())
	assert.False(t, IncidentSeverity("SEVERE").IsValid())
}
