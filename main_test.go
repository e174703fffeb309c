package main

import (
	"context"
	"net/http"
	"testing"

	"wolves-hub/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestResources_CleanupIsIdempotent(t *testing.T) {
	resources := &Resources{
		server: &http.Server{Addr: ":0"},
		log:    logger.NewNop(),
	}

	assert.NoError(t, resources.Cleanup(context.Background()))
	assert.True(t, resources.closed)
	assert.NoError(t, resources.Cleanup(context.Background()))
}
