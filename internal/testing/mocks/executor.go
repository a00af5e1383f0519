// Package mocks provides shared test doubles for stagehand packages.
package mocks

import (
	"context"
	"sync"

	"github.com/stagehand-ci/stagehand/internal/checkout"
	"github.com/stagehand-ci/stagehand/internal/execute"
	"github.com/stagehand-ci/stagehand/internal/workspace"
)

// Executor implements pipeline.Executor for testing.
// Use NewExecutor() to create instances with a fluent builder API.
type Executor struct {
	// ExecFunc is called by Execute. If nil, Execute returns (0, nil).
	ExecFunc func(ctx context.Context, spec execute.Spec) (int, error)

	mu    sync.Mutex
	specs []execute.Spec
}

// NewExecutor creates a new mock executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// WithExecFunc sets the function called by Execute.
func (m *Executor) WithExecFunc(fn func(ctx context.Context, spec execute.Spec) (int, error)) *Executor {
	m.ExecFunc = fn
	return m
}

// Execute records the spec and delegates to ExecFunc.
func (m *Executor) Execute(ctx context.Context, spec execute.Spec) (int, error) {
	m.mu.Lock()
	m.specs = append(m.specs, spec)
	m.mu.Unlock()

	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, spec)
	}
	return 0, nil
}

// ExecCount returns the number of times Execute was called.
func (m *Executor) ExecCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.specs)
}

// Specs returns a copy of the specs passed to Execute, in call order.
func (m *Executor) Specs() []execute.Spec {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]execute.Spec, len(m.specs))
	copy(result, m.specs)
	return result
}

// Stages returns the stage names passed to Execute, in call order.
func (m *Executor) Stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	stages := make([]string, 0, len(m.specs))
	for _, spec := range m.specs {
		stages = append(stages, spec.Stage)
	}
	return stages
}

// CheckoutProvider implements pipeline.CheckoutProvider for testing.
type CheckoutProvider struct {
	// CheckoutFunc is called by Checkout. If nil, Checkout returns nil.
	CheckoutFunc func(ctx context.Context, stage string, spec checkout.Spec, ws *workspace.Workspace) error

	mu    sync.Mutex
	calls []checkout.Spec
}

// NewCheckoutProvider creates a new mock checkout provider.
func NewCheckoutProvider() *CheckoutProvider {
	return &CheckoutProvider{}
}

// WithCheckoutFunc sets the function called by Checkout.
func (m *CheckoutProvider) WithCheckoutFunc(fn func(ctx context.Context, stage string, spec checkout.Spec, ws *workspace.Workspace) error) *CheckoutProvider {
	m.CheckoutFunc = fn
	return m
}

// Checkout records the spec and delegates to CheckoutFunc.
func (m *CheckoutProvider) Checkout(ctx context.Context, stage string, spec checkout.Spec, ws *workspace.Workspace) error {
	m.mu.Lock()
	m.calls = append(m.calls, spec)
	m.mu.Unlock()

	if m.CheckoutFunc != nil {
		return m.CheckoutFunc(ctx, stage, spec, ws)
	}
	return nil
}

// CheckoutCount returns the number of times Checkout was called.
func (m *CheckoutProvider) CheckoutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
