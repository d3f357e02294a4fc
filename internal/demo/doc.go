// Package demo runs the capdemo scenarios against the framework packages and
// collects their output for the CLI and the /status route.
package demo
