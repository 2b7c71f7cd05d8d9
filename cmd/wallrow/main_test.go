package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootHelpDescribesWalls(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "random walks")
	assert.Contains(t, rootCmd.Long, "separate regions")
	assert.NotContains(t, rootCmd.Long, "cells connected")
}
