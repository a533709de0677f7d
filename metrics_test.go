package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSimMetrics(t *testing.T) {

	metrics := NewSimMetrics("")
	assert.NotNil(t, metrics.Ops)
	assert.NotNil(t, metrics.Merges)

	metrics = NewSimMetrics(":9099")
	assert.NotNil(t, metrics.Ops)
	assert.NotNil(t, metrics.Merges)
}
