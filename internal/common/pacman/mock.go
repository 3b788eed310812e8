package pacman

import "context"

// MockRunner implements Runner for testing.
// Each method can be configured with a custom function to control behavior.
type MockRunner struct {
	ForeignPackagesFunc func(ctx context.Context) (string, error)
	IgnoredPackagesFunc func(ctx context.Context) (string, error)
	SyncListFunc        func(ctx context.Context) (string, error)
	CheckUpdatesFunc    func(ctx context.Context, sync bool) (string, error)
}

// NewMockRunner creates a new MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// ForeignPackages returns the configured foreign package listing.
func (m *MockRunner) ForeignPackages(ctx context.Context) (string, error) {
	if m.ForeignPackagesFunc != nil {
		return m.ForeignPackagesFunc(ctx)
	}
	return "", nil
}

// IgnoredPackages returns the configured ignored package listing.
func (m *MockRunner) IgnoredPackages(ctx context.Context) (string, error) {
	if m.IgnoredPackagesFunc != nil {
		return m.IgnoredPackagesFunc(ctx)
	}
	return "", nil
}

// SyncList returns the configured sync database listing.
func (m *MockRunner) SyncList(ctx context.Context) (string, error) {
	if m.SyncListFunc != nil {
		return m.SyncListFunc(ctx)
	}
	return "", nil
}

// CheckUpdates returns the configured pending update listing.
func (m *MockRunner) CheckUpdates(ctx context.Context, sync bool) (string, error) {
	if m.CheckUpdatesFunc != nil {
		return m.CheckUpdatesFunc(ctx, sync)
	}
	return "", nil
}
